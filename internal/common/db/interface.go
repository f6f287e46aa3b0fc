package db

import (
	"context"
	"database/sql"
)

// Database defines the unified interface for database operations.
// This abstraction allows swapping the backing store implementation
// without changing repository code.
type Database interface {
	// Query executes a query that returns rows
	Query(ctx context.Context, query string, args ...interface{}) (Rows, error)

	// QueryRow executes a query that returns at most one row
	QueryRow(ctx context.Context, query string, args ...interface{}) Row

	// Exec executes a query that doesn't return rows
	Exec(ctx context.Context, query string, args ...interface{}) (Result, error)

	// Transaction executes a function within a database transaction.
	// The transaction is rolled back if fn returns an error.
	Transaction(ctx context.Context, fn func(tx Transaction) error) error

	// BeginTx starts a new transaction with the given options
	BeginTx(ctx context.Context, opts *TxOptions) (Transaction, error)

	// Ping verifies a connection to the database is still alive
	Ping(ctx context.Context) error

	// Close closes the database connection
	Close() error
}

// Transaction defines operations available within a database transaction
type Transaction interface {
	Query(ctx context.Context, query string, args ...interface{}) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...interface{}) Row
	Exec(ctx context.Context, query string, args ...interface{}) (Result, error)
	Commit() error
	Rollback() error
}

// Rows is the result of a query returning multiple rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Close() error
	Err() error
}

// Row is the result of a query returning at most one row
type Row interface {
	Scan(dest ...interface{}) error
}

// Scanner abstracts scanning a single row or rows cursor
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Result summarizes an executed statement
type Result interface {
	LastInsertId() (int64, error)
	RowsAffected() (int64, error)
}

// TxOptions holds transaction options
type TxOptions struct {
	Isolation sql.IsolationLevel
	ReadOnly  bool
}

// ConvertTxOptions converts TxOptions to database/sql options
func ConvertTxOptions(opts *TxOptions) *sql.TxOptions {
	if opts == nil {
		return nil
	}
	return &sql.TxOptions{
		Isolation: opts.Isolation,
		ReadOnly:  opts.ReadOnly,
	}
}
