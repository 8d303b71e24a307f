// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-ledger/bank-ledger/internal/domain"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, ownerName, balance string) (domain.Account, error)
	Get(ctx context.Context, id int32) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Create validates the input and creates an account for the given owner.
//
// An empty initial balance means zero. A positive initial balance is recorded
// as an account_creation transaction together with the account insert.
func (s *Service) Create(ctx context.Context, ownerName, initialBalance string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	ownerName = strings.TrimSpace(ownerName)
	if ownerName == "" {
		l.Info().Err(domain.ErrOwnerNameRequired).Send()
		return domain.Account{}, domain.ErrOwnerNameRequired
	}

	if initialBalance == "" {
		initialBalance = "0"
	}

	balance, err := decimal.NewFromString(initialBalance)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Account{}, domain.ErrInvalidAmount
	}

	if balance.IsNegative() {
		l.Info().Err(domain.ErrNegativeInitialBalance).Send()
		return domain.Account{}, domain.ErrNegativeInitialBalance
	}

	account, err := s.repo.Create(ctx, ownerName, balance.String())
	if err != nil {
		return account, err
	}

	return account, nil
}

// Get returns account for the given account ID.
func (s *Service) Get(ctx context.Context, id int32) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return account, err
	}

	return account, nil
}

// List returns all accounts in creation order.
func (s *Service) List(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}
