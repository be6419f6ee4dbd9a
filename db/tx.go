package db

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxTxRetries = 3

// InTransaction runs fn inside a transaction and transparently retries it
// when Postgres aborts the transaction with a serialization failure or
// deadlock. Business errors are returned to the caller on the first attempt.
func InTransaction(gdb *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err = gdb.Transaction(fn)

		if err == nil || !isRetryable(err) {
			return err
		}
	}

	return err
}

func isRetryable(err error) bool {
	var pqErr *pq.Error

	if errors.As(err, &pqErr) {
		// serialization_failure, deadlock_detected
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}

	return false
}

// LockForUpdate adds a FOR UPDATE row lock to the query. SQLite (used by
// tests) has no row locks and rejects the clause; its writers are already
// serialized by the database itself.
func LockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}

	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
