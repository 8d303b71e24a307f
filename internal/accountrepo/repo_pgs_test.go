package accountrepo_test

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-ledger/bank-ledger/db"
	"github.com/go-ledger/bank-ledger/internal/accountrepo"
	"github.com/go-ledger/bank-ledger/internal/domain"
	"github.com/go-ledger/bank-ledger/internal/transactionrepo"
	"github.com/go-ledger/bank-ledger/pkg/configpkg"
	"github.com/go-ledger/bank-ledger/pkg/dbpkg"
	"github.com/go-ledger/bank-ledger/pkg/randompkg"

	_ "github.com/lib/pq"
)

var (
	testDB              *sql.DB
	testConfig          configpkg.Config
	testRepo            *accountrepo.RepoPGS
	testTransactionRepo *transactionrepo.RepoPGS
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	testConfig = config

	testDB, err = dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		log.Fatal("cannot connect to db:", err)
	}

	if err := dbpkg.Apply(testDB, db.Schema); err != nil {
		log.Fatal("cannot apply schema:", err)
	}

	testRepo = accountrepo.NewRepoPGS(testDB)
	testTransactionRepo = transactionrepo.NewRepoPGS(testDB)

	os.Exit(m.Run())
}

func createRandomAccount(t *testing.T, balance string) domain.Account {
	t.Helper()

	account, err := testRepo.Create(context.Background(), randompkg.Owner(), balance)
	require.NoError(t, err)
	require.NotEmpty(t, account)

	require.Equal(t, balance, account.Balance)
	require.NotZero(t, account.ID)
	require.NotZero(t, account.CreatedAt)

	return account
}

func TestCreateWithZeroBalance(t *testing.T) {
	account := createRandomAccount(t, "0")

	count, err := testTransactionRepo.Count(context.Background(), account.ID)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestCreateWithInitialBalance(t *testing.T) {
	account := createRandomAccount(t, "1000")

	transactions, err := testTransactionRepo.List(context.Background(), account.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, transactions, 1)

	require.Equal(t, account.ID, transactions[0].AccountID)
	require.Equal(t, domain.TransactionTypeAccountCreation, transactions[0].Type)
	require.Equal(t, "1000", transactions[0].Amount)
	require.Equal(t, "1000", transactions[0].BalanceAfter)
	require.NotZero(t, transactions[0].CreatedAt)
}

func TestCreateDuplicateOwner(t *testing.T) {
	account := createRandomAccount(t, "0")

	duplicate, err := testRepo.Create(context.Background(), account.OwnerName, "0")
	require.EqualError(t, err, domain.ErrOwnerAlreadyExists.Error())
	require.Empty(t, duplicate)
}

func TestGet(t *testing.T) {
	account := createRandomAccount(t, randompkg.MoneyAmountBetween(100, 10_000))

	got, err := testRepo.Get(context.Background(), account.ID)
	require.NoError(t, err)

	require.Equal(t, account.ID, got.ID)
	require.Equal(t, account.OwnerName, got.OwnerName)
	require.Equal(t, account.Balance, got.Balance)
	require.WithinDuration(t, account.CreatedAt, got.CreatedAt, 0)
}

func TestGetNotFound(t *testing.T) {
	_, err := testRepo.Get(context.Background(), -1)
	require.EqualError(t, err, domain.ErrAccountNotFound.Error())
}

func TestAddBalance(t *testing.T) {
	account := createRandomAccount(t, "1000")

	got, err := testRepo.AddBalance(context.Background(), "500", account.ID)
	require.NoError(t, err)
	require.Equal(t, "1500", got.Balance)

	got, err = testRepo.AddBalance(context.Background(), "-200", account.ID)
	require.NoError(t, err)
	require.Equal(t, "1300", got.Balance)
}

func TestAddBalanceInsufficient(t *testing.T) {
	account := createRandomAccount(t, "1000")

	_, err := testRepo.AddBalance(context.Background(), "-5000", account.ID)
	require.EqualError(t, err, domain.ErrInsufficientBalance.Error())

	got, err := testRepo.Get(context.Background(), account.ID)
	require.NoError(t, err)
	require.Equal(t, "1000", got.Balance)
}

func TestAddBalanceRollback(t *testing.T) {
	account := createRandomAccount(t, "1000")

	tx := dbpkg.SetupTX(t, testConfig.DBDriver, testConfig.DBSource)
	txRepo := accountrepo.NewTxRepoPGS(tx)

	got, err := txRepo.AddBalance(context.Background(), "500", account.ID)
	require.NoError(t, err)
	require.Equal(t, "1500", got.Balance)

	// SetupTX rolls the transaction back on cleanup; the balance change must
	// not be visible outside it.
	got, err = testRepo.Get(context.Background(), account.ID)
	require.NoError(t, err)
	require.Equal(t, "1000", got.Balance)
}

func TestAddBalanceNotFound(t *testing.T) {
	_, err := testRepo.AddBalance(context.Background(), "100", -1)
	require.EqualError(t, err, domain.ErrAccountNotFound.Error())
}

func TestList(t *testing.T) {
	first := createRandomAccount(t, "1000")
	second := createRandomAccount(t, "2000")

	accounts, err := testRepo.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, accounts)

	for i := 1; i < len(accounts); i++ {
		require.Greater(t, accounts[i].ID, accounts[i-1].ID)
	}

	ids := make(map[int32]bool, len(accounts))
	for _, a := range accounts {
		ids[a.ID] = true
	}

	require.True(t, ids[first.ID])
	require.True(t, ids[second.ID])
}
