package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicate signals a unique-constraint violation on insert.
	ErrDuplicate = errors.New("record already exists")

	// ErrDuplicateOrder signals that a payment row for the gateway order id
	// already exists. This is the guard that makes replayed payment
	// confirmations idempotent: the second insert fails instead of creating
	// a second form/payment pair.
	ErrDuplicateOrder = errors.New("payment order already consumed")
)

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
