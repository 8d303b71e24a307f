// Package transactiondelivery manages delivery layer of transactions.
package transactiondelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-ledger/bank-ledger/internal/domain"
	"github.com/go-ledger/bank-ledger/pkg/errorspkg"
	"github.com/go-ledger/bank-ledger/pkg/web"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 100
)

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Deposit(ctx context.Context, accountID int32, amount string) (domain.BalanceTxResult, error)
	Withdraw(ctx context.Context, accountID int32, amount string) (domain.BalanceTxResult, error)
	List(ctx context.Context, accountID, limit, offset int32) ([]domain.Transaction, error)
	Count(ctx context.Context, accountID int32) (int64, error)
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(ts Service) Handler {
	return Handler{service: ts}
}

func bindErrorMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		return field.Field() + web.GetErrorMsg(field)
	}

	return ""
}

type uriRequest struct {
	ID int32 `uri:"id" binding:"required,min=1"`
}

type amountRequest struct {
	Amount string `json:"amount" binding:"required"`
}

type balanceTxData struct {
	AccountID   int32              `json:"account_id"`
	NewBalance  string             `json:"new_balance"`
	Transaction domain.Transaction `json:"transaction"`
}
type balanceTxResponse struct {
	Data balanceTxData `json:"data,omitempty"`
}

// Deposit handles http request to deposit funds into account.
func (h *Handler) Deposit(gctx *gin.Context) {
	h.updateBalance(gctx, h.service.Deposit)
}

// Withdraw handles http request to withdraw funds from account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	h.updateBalance(gctx, h.service.Withdraw)
}

func (h *Handler) updateBalance(gctx *gin.Context, op func(context.Context, int32, string) (domain.BalanceTxResult, error)) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	var req amountRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	result, err := op(ctx, uri.ID, req.Amount)
	if err != nil {
		switch err {
		case domain.ErrInvalidAmount, domain.ErrNegativeAmount, domain.ErrInsufficientBalance:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := balanceTxResponse{
		Data: balanceTxData{
			AccountID:   result.Account.ID,
			NewBalance:  result.Account.Balance,
			Transaction: result.Transaction,
		},
	}

	gctx.JSON(http.StatusOK, res)
}

type listRequest struct {
	Limit  int32 `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int32 `form:"offset" binding:"omitempty,min=0"`
}

type transactionsData struct {
	AccountID    int32                `json:"account_id"`
	Transactions []domain.Transaction `json:"transactions"`
	TotalCount   int64                `json:"total_count"`
}
type transactionsResponse struct {
	Data transactionsData `json:"data,omitempty"`
}

// List handles http request to get the account's transaction history.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	if req.Limit == 0 {
		req.Limit = defaultHistoryLimit
	}

	transactions, err := h.service.List(ctx, uri.ID, req.Limit, req.Offset)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	totalCount, err := h.service.Count(ctx, uri.ID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	res := transactionsResponse{
		Data: transactionsData{
			AccountID:    uri.ID,
			Transactions: transactions,
			TotalCount:   totalCount,
		},
	}

	gctx.JSON(http.StatusOK, res)
}
