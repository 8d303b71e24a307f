// Package transactionrepo manages repository layer of transactions.
package transactionrepo

import (
	"context"
	"database/sql"

	"github.com/go-ledger/bank-ledger/internal/accountrepo"
	"github.com/go-ledger/bank-ledger/internal/domain"
	"github.com/go-ledger/bank-ledger/pkg/dbpkg"
	"github.com/go-ledger/bank-ledger/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewRepoPGS returns transaction RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

// NewTxRepoPGS returns transaction RepoPGS scoped to an already open transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    transactions (account_id, type, amount, balance_after)
VALUES
    ($1, $2, $3, $4)
RETURNING id, account_id, type, amount, balance_after, created_at
`

// Create appends the transaction and then returns it.
func (r *RepoPGS) Create(ctx context.Context, accountID int32, transactionType domain.TransactionType, amount, balanceAfter string) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, accountID, transactionType, amount, balanceAfter)

	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.AccountID,
		&t.Type,
		&t.Amount,
		&t.BalanceAfter,
		&t.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transactions_account_id_fkey":
				return t, domain.ErrAccountNotFound
			case "transactions_amount_check":
				return t, domain.ErrNegativeAmount
			}
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const listTransactions = `
SELECT
	id, account_id, type, amount, balance_after, created_at
FROM transactions
WHERE account_id = $1
ORDER BY id
LIMIT $2 OFFSET $3
`

// List returns the account's transactions oldest first.
func (r *RepoPGS) List(ctx context.Context, accountID, limit, offset int32) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listTransactions, accountID, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.ID,
			&t.AccountID,
			&t.Type,
			&t.Amount,
			&t.BalanceAfter,
			&t.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const countTransactions = `
SELECT count(*) FROM transactions
WHERE account_id = $1
`

// Count returns the total number of transactions recorded for the account.
func (r *RepoPGS) Count(ctx context.Context, accountID int32) (int64, error) {
	l := zerolog.Ctx(ctx)

	var count int64

	if err := r.db.QueryRowContext(ctx, countTransactions, accountID).Scan(&count); err != nil {
		l.Error().Err(err).Send()
		return 0, errorspkg.ErrInternal
	}

	return count, nil
}

// UpdateBalance applies the signed balance change and appends the matching
// transaction within a single database transaction.
//
// The balance UPDATE takes the account row lock, so the sufficient-funds check
// and the write are one atomic step; a violation of the non-negative balance
// constraint rolls back both writes and surfaces as ErrInsufficientBalance.
func (r *RepoPGS) UpdateBalance(ctx context.Context, arg domain.UpdateBalanceParams) (domain.BalanceTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.BalanceTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	accountRepo := accountrepo.NewTxRepoPGS(tx)
	transactionRepo := NewTxRepoPGS(tx)

	result.Account, err = accountRepo.AddBalance(ctx, arg.Amount, arg.AccountID)
	if err != nil {
		return domain.BalanceTxResult{}, err
	}

	result.Transaction, err = transactionRepo.Create(ctx,
		arg.AccountID, arg.TransactionType, arg.TransactionAmount, result.Account.Balance)
	if err != nil {
		return domain.BalanceTxResult{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.BalanceTxResult{}, errorspkg.ErrInternal
	}

	return result, nil
}
