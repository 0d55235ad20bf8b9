package db

import (
	"database/sql"
)

// Database is the lifecycle contract for the store backing the post
// engine: Connect opens the pool and brings the schema up to date, DB
// hands out the pooled connection set, Close releases it at shutdown.
type Database interface {
	Connect() error
	Close() error
	DB() *sql.DB
}
