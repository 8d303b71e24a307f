// Package db holds the durable schema applied at startup.
package db

import _ "embed"

// Schema contains the idempotent DDL for accounts and transactions.
//
//go:embed schema.sql
var Schema string
