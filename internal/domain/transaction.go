package domain

import "time"

// TransactionType classifies a balance movement.
type TransactionType string

// Transaction types. Direction is implied by the type; Amount is always positive.
const (
	TransactionTypeDeposit         TransactionType = "deposit"
	TransactionTypeWithdrawal      TransactionType = "withdrawal"
	TransactionTypeAccountCreation TransactionType = "account_creation"
)

// Transaction holds an immutable balance change record for an account.
type Transaction struct {
	ID           int64           `json:"id"`
	AccountID    int32           `json:"account_id"`
	Type         TransactionType `json:"type"`
	Amount       string          `json:"amount"`
	BalanceAfter string          `json:"balance_after"`
	CreatedAt    time.Time       `json:"timestamp"`
}

// UpdateBalanceParams contains the input parameters of the atomic balance update.
//
// Amount is the signed balance delta; TransactionAmount is the positive magnitude
// recorded on the transaction row.
type UpdateBalanceParams struct {
	AccountID         int32
	Amount            string
	TransactionType   TransactionType
	TransactionAmount string
}

// BalanceTxResult is the result of the atomic balance update.
type BalanceTxResult struct {
	Account     Account     `json:"account"`
	Transaction Transaction `json:"transaction"`
}
