// Package main starts the banking MCP stdio server.
package main

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/go-ledger/bank-ledger/db"
	"github.com/go-ledger/bank-ledger/internal/accountrepo"
	"github.com/go-ledger/bank-ledger/internal/accountservice"
	"github.com/go-ledger/bank-ledger/internal/mcpdelivery"
	"github.com/go-ledger/bank-ledger/internal/middleware"
	"github.com/go-ledger/bank-ledger/internal/transactionrepo"
	"github.com/go-ledger/bank-ledger/internal/transactionservice"
	"github.com/go-ledger/bank-ledger/pkg/configpkg"
	"github.com/go-ledger/bank-ledger/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)
	// Tool calls carry no request middleware, so context loggers fall back here.
	zerolog.DefaultContextLogger = &logger

	conn, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}

	if err := dbpkg.Apply(conn, db.Schema); err != nil {
		logger.Fatal().Err(err).Msg("cannot apply database schema")
	}

	accountRepo := accountrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)

	accountService := accountservice.New(accountRepo)
	transactionService := transactionservice.New(transactionRepo, accountService)

	s := server.NewMCPServer("bank-ledger", "1.0.0")
	mcpdelivery.NewHandler(accountService, transactionService).Register(s)

	logger.Info().Msg("BANK LEDGER MCP SERVER HAS STARTED")

	if err := server.ServeStdio(s); err != nil {
		logger.Fatal().Err(err).Msg("cannot serve stdio")
	}
}
