// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-ledger/bank-ledger/internal/accountdelivery"
	"github.com/go-ledger/bank-ledger/internal/accountrepo"
	"github.com/go-ledger/bank-ledger/internal/accountservice"
	"github.com/go-ledger/bank-ledger/internal/middleware"
	"github.com/go-ledger/bank-ledger/internal/transactiondelivery"
	"github.com/go-ledger/bank-ledger/internal/transactionrepo"
	"github.com/go-ledger/bank-ledger/internal/transactionservice"
	"github.com/go-ledger/bank-ledger/pkg/configpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	accountRepo := accountrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)

	accountService := accountservice.New(accountRepo)
	transactionService := transactionservice.New(transactionRepo, accountService)

	accountHandler := accountdelivery.NewHandler(accountService)
	transactionHandler := transactiondelivery.NewHandler(transactionService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.GET("/health", func(gctx *gin.Context) {
		gctx.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"timestamp": time.Now().UTC(),
		})
	})

	engine.POST("/accounts", accountHandler.Create)
	engine.GET("/accounts", accountHandler.List)
	engine.GET("/accounts/:id/balance", accountHandler.GetBalance)

	engine.POST("/accounts/:id/deposit", transactionHandler.Deposit)
	engine.POST("/accounts/:id/withdraw", transactionHandler.Withdraw)
	engine.GET("/accounts/:id/transactions", transactionHandler.List)

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
