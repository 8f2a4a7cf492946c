package postgres

//go:generate go run go.uber.org/mock/mockgen -source=./transactor.go -destination=./mocks/transactor_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	serializationFailure = "40001"
	maxSerializableTries = 3
)

type TxFunc func(ctx context.Context, tx *sqlx.Tx) error

// Transactor runs fn inside a SERIALIZABLE transaction on the write connection. A serialization
// failure is retried a few times before it is returned to the caller.
type Transactor interface {
	DoSerializable(ctx context.Context, fn TxFunc) error
}

type transactor struct {
	db *sqlx.DB
}

func NewTransactor(conn *Connection) Transactor {
	return &transactor{db: conn.Write}
}

func (t *transactor) DoSerializable(ctx context.Context, fn TxFunc) error {
	var err error

	for attempt := 1; attempt <= maxSerializableTries; attempt++ {
		err = t.run(ctx, fn)
		if err == nil || !IsSerializationFailure(err) {
			return err
		}

		log.Warn().Err(err).Int("attempt", attempt).Msg("serializable transaction aborted, retrying")
	}

	return err
}

func (t *transactor) run(ctx context.Context, fn TxFunc) (err error) {
	tx, err := t.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err == nil {
			return
		}

		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// IsSerializationFailure reports whether err is SQLSTATE 40001.
func IsSerializationFailure(err error) bool {
	return ErrorCode(err) == serializationFailure
}

// ErrorCode returns the SQLSTATE carried by err, or "" for non-postgres errors.
func ErrorCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return ""
}
