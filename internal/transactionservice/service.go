// Package transactionservice manages business logic layer of transactions.
package transactionservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-ledger/bank-ledger/internal/domain"
)

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	UpdateBalance(ctx context.Context, arg domain.UpdateBalanceParams) (domain.BalanceTxResult, error)
	List(ctx context.Context, accountID, limit, offset int32) ([]domain.Transaction, error)
	Count(ctx context.Context, accountID int32) (int64, error)
}

// AccountService provides the account service interface needed by the transaction service.
type AccountService interface {
	Get(ctx context.Context, id int32) (domain.Account, error)
}

// Service facilitates transaction service layer logic.
type Service struct {
	repo           Repo
	accountService AccountService
}

// New returns transaction service struct to manage transaction bussines logic.
func New(tr Repo, as AccountService) *Service {
	return &Service{
		repo:           tr,
		accountService: as,
	}
}

func validAmount(ctx context.Context, amount string) (decimal.Decimal, error) {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		l.Info().Err(err).Send()
		return decimal.Decimal{}, domain.ErrInvalidAmount
	}

	if amountDecimal.LessThanOrEqual(decimal.Zero) {
		l.Info().Err(domain.ErrNegativeAmount).Send()
		return decimal.Decimal{}, domain.ErrNegativeAmount
	}

	return amountDecimal, nil
}

// Deposit adds the amount to the account balance and records the deposit
// transaction as one atomic unit.
func (s *Service) Deposit(ctx context.Context, accountID int32, amount string) (domain.BalanceTxResult, error) {
	amountDecimal, err := validAmount(ctx, amount)
	if err != nil {
		return domain.BalanceTxResult{}, err
	}

	arg := domain.UpdateBalanceParams{
		AccountID:         accountID,
		Amount:            amountDecimal.String(),
		TransactionType:   domain.TransactionTypeDeposit,
		TransactionAmount: amountDecimal.String(),
	}

	result, err := s.repo.UpdateBalance(ctx, arg)
	if err != nil {
		return domain.BalanceTxResult{}, err
	}

	return result, nil
}

// Withdraw subtracts the amount from the account balance and records the
// withdrawal transaction as one atomic unit.
//
// The balance check here is advisory; the storage constraint is the
// authoritative guard, so concurrent withdrawals cannot overdraw even when
// both pass this check against the same stale balance.
func (s *Service) Withdraw(ctx context.Context, accountID int32, amount string) (domain.BalanceTxResult, error) {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := validAmount(ctx, amount)
	if err != nil {
		return domain.BalanceTxResult{}, err
	}

	account, err := s.accountService.Get(ctx, accountID)
	if err != nil {
		return domain.BalanceTxResult{}, err
	}

	currentBalance, err := decimal.NewFromString(account.Balance)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.BalanceTxResult{}, err
	}

	if currentBalance.LessThan(amountDecimal) {
		return domain.BalanceTxResult{}, domain.ErrInsufficientBalance
	}

	arg := domain.UpdateBalanceParams{
		AccountID:         accountID,
		Amount:            amountDecimal.Neg().String(),
		TransactionType:   domain.TransactionTypeWithdrawal,
		TransactionAmount: amountDecimal.String(),
	}

	result, err := s.repo.UpdateBalance(ctx, arg)
	if err != nil {
		return domain.BalanceTxResult{}, err
	}

	return result, nil
}

// List returns the account's transactions oldest first.
func (s *Service) List(ctx context.Context, accountID, limit, offset int32) ([]domain.Transaction, error) {
	if _, err := s.accountService.Get(ctx, accountID); err != nil {
		return nil, err
	}

	transactions, err := s.repo.List(ctx, accountID, limit, offset)
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// Count returns the total number of transactions recorded for the account.
func (s *Service) Count(ctx context.Context, accountID int32) (int64, error) {
	count, err := s.repo.Count(ctx, accountID)
	if err != nil {
		return 0, err
	}

	return count, nil
}
