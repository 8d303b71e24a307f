// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrOwnerNameRequired indicates that the owner name is empty or blank.
	ErrOwnerNameRequired = errors.New("owner name cannot be empty")
	// ErrOwnerAlreadyExists indicates that an account with the given owner name already exists.
	ErrOwnerAlreadyExists = errors.New("account with this owner name already exists")
	// ErrNegativeInitialBalance indicates that the initial balance is negative.
	ErrNegativeInitialBalance = errors.New("initial balance cannot be negative")
	// ErrInvalidAmount indicates that the amount is not a valid decimal number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeAmount indicates that the amount is zero or negative.
	ErrNegativeAmount = errors.New("amount must be positive")
	// ErrInsufficientBalance indicates that the account balance is too low for the withdrawal.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Account holds the authoritative balance for a single owner.
type Account struct {
	ID        int32     `json:"id"`
	OwnerName string    `json:"owner_name"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}
