// Package mcpdelivery manages the AI-assistant tool delivery layer.
//
// It registers the banking operations as MCP tools so an assistant can drive
// the same ledger engine as the HTTP API.
package mcpdelivery

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/shopspring/decimal"

	"github.com/go-ledger/bank-ledger/internal/domain"
)

const defaultHistoryLimit = 50

// AccountService provides account service layer interface needed by the tool delivery layer.
type AccountService interface {
	Create(ctx context.Context, ownerName, initialBalance string) (domain.Account, error)
	Get(ctx context.Context, id int32) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
}

// TransactionService provides transaction service layer interface needed by the tool delivery layer.
type TransactionService interface {
	Deposit(ctx context.Context, accountID int32, amount string) (domain.BalanceTxResult, error)
	Withdraw(ctx context.Context, accountID int32, amount string) (domain.BalanceTxResult, error)
	List(ctx context.Context, accountID, limit, offset int32) ([]domain.Transaction, error)
	Count(ctx context.Context, accountID int32) (int64, error)
}

// Handler facilitates tool delivery layer logic.
type Handler struct {
	accounts     AccountService
	transactions TransactionService
}

// NewHandler returns tool handler.
func NewHandler(as AccountService, ts TransactionService) Handler {
	return Handler{
		accounts:     as,
		transactions: ts,
	}
}

// Register adds all banking tools to the MCP server.
func (h Handler) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("create_account",
		mcp.WithDescription("Create a new bank account with an owner name and optional initial balance"),
		mcp.WithString("owner_name", mcp.Required(),
			mcp.Description("The name of the account owner")),
		mcp.WithNumber("initial_balance",
			mcp.Description("Initial balance for the account (default: 0)")),
	), h.createAccount)

	s.AddTool(mcp.NewTool("deposit",
		mcp.WithDescription("Deposit funds into an existing bank account"),
		mcp.WithNumber("account_id", mcp.Required(),
			mcp.Description("The ID of the account to deposit into")),
		mcp.WithNumber("amount", mcp.Required(),
			mcp.Description("The amount to deposit (must be positive)")),
	), h.deposit)

	s.AddTool(mcp.NewTool("withdraw",
		mcp.WithDescription("Withdraw funds from an existing bank account"),
		mcp.WithNumber("account_id", mcp.Required(),
			mcp.Description("The ID of the account to withdraw from")),
		mcp.WithNumber("amount", mcp.Required(),
			mcp.Description("The amount to withdraw (must be positive)")),
	), h.withdraw)

	s.AddTool(mcp.NewTool("get_balance",
		mcp.WithDescription("Get the current balance of a bank account"),
		mcp.WithNumber("account_id", mcp.Required(),
			mcp.Description("The ID of the account to check")),
	), h.getBalance)

	s.AddTool(mcp.NewTool("get_transactions",
		mcp.WithDescription("Get the transaction history for a bank account"),
		mcp.WithNumber("account_id", mcp.Required(),
			mcp.Description("The ID of the account")),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of transactions to return (default: 50)")),
	), h.getTransactions)

	s.AddTool(mcp.NewTool("list_accounts",
		mcp.WithDescription("List all bank accounts in the system"),
	), h.listAccounts)
}

func jsonResult(v any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("Error: " + err.Error())
	}

	return mcp.NewToolResultText(string(b))
}

func errorResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError("Error: " + err.Error())
}

func (h Handler) createAccount(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ownerName, err := request.RequireString("owner_name")
	if err != nil {
		return errorResult(err), nil
	}

	initialBalance := request.GetFloat("initial_balance", 0)

	account, err := h.accounts.Create(ctx, ownerName, decimal.NewFromFloat(initialBalance).String())
	if err != nil {
		return errorResult(err), nil
	}

	return jsonResult(map[string]any{
		"success": true,
		"message": "Account created successfully",
		"account": account,
	}), nil
}

func (h Handler) deposit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accountID, amount, errRes := balanceArgs(request)
	if errRes != nil {
		return errRes, nil
	}

	result, err := h.transactions.Deposit(ctx, accountID, amount)
	if err != nil {
		return errorResult(err), nil
	}

	return jsonResult(map[string]any{
		"success":     true,
		"message":     "Deposit successful",
		"account_id":  result.Account.ID,
		"new_balance": result.Account.Balance,
	}), nil
}

func (h Handler) withdraw(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accountID, amount, errRes := balanceArgs(request)
	if errRes != nil {
		return errRes, nil
	}

	result, err := h.transactions.Withdraw(ctx, accountID, amount)
	if err != nil {
		return errorResult(err), nil
	}

	return jsonResult(map[string]any{
		"success":     true,
		"message":     "Withdrawal successful",
		"account_id":  result.Account.ID,
		"new_balance": result.Account.Balance,
	}), nil
}

func balanceArgs(request mcp.CallToolRequest) (int32, string, *mcp.CallToolResult) {
	accountID, err := request.RequireInt("account_id")
	if err != nil {
		return 0, "", errorResult(err)
	}

	amount, err := request.RequireFloat("amount")
	if err != nil {
		return 0, "", errorResult(err)
	}

	return int32(accountID), decimal.NewFromFloat(amount).String(), nil
}

func (h Handler) getBalance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accountID, err := request.RequireInt("account_id")
	if err != nil {
		return errorResult(err), nil
	}

	account, err := h.accounts.Get(ctx, int32(accountID))
	if err != nil {
		return errorResult(err), nil
	}

	return jsonResult(map[string]any{
		"success":    true,
		"account_id": account.ID,
		"owner_name": account.OwnerName,
		"balance":    account.Balance,
	}), nil
}

func (h Handler) getTransactions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accountID, err := request.RequireInt("account_id")
	if err != nil {
		return errorResult(err), nil
	}

	limit := request.GetInt("limit", defaultHistoryLimit)

	transactions, err := h.transactions.List(ctx, int32(accountID), int32(limit), 0)
	if err != nil {
		return errorResult(err), nil
	}

	totalCount, err := h.transactions.Count(ctx, int32(accountID))
	if err != nil {
		return errorResult(err), nil
	}

	return jsonResult(map[string]any{
		"success":            true,
		"account_id":         accountID,
		"total_transactions": totalCount,
		"transactions":       transactions,
	}), nil
}

func (h Handler) listAccounts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accounts, err := h.accounts.List(ctx)
	if err != nil {
		return errorResult(err), nil
	}

	return jsonResult(map[string]any{
		"success":        true,
		"total_accounts": len(accounts),
		"accounts":       accounts,
	}), nil
}
