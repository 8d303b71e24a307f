// Package main starts the banking HTTP API server.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/go-ledger/bank-ledger/cmd/httpserver"
	"github.com/go-ledger/bank-ledger/db"
	"github.com/go-ledger/bank-ledger/internal/middleware"
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

	conn, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}

	if err := dbpkg.Apply(conn, db.Schema); err != nil {
		logger.Fatal().Err(err).Msg("cannot apply database schema")
	}

	server, err := httpserver.New(conn, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Msg("BANK LEDGER API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
