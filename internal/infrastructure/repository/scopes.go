package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	domainRepo "github.com/sangkips/yuyitos-api/internal/domain/repository"
	"github.com/sangkips/yuyitos-api/pkg/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ctxKey string

// TxKey is the context key holding the active *gorm.DB transaction
const TxKey ctxKey = "gorm_tx"

// conn returns the transaction bound to ctx, or db when there is none
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(TxKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// forUpdate is the row lock clause used by Lock* methods
func forUpdate() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

type transactor struct {
	db *gorm.DB
}

// NewTransactor creates a GORM backed transactor
func NewTransactor(db *gorm.DB) domainRepo.Transactor {
	return &transactor{db: db}
}

// WithinTransaction joins an existing transaction on ctx or opens a new one
func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(TxKey).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, TxKey, tx))
	})
}

// PostgreSQL error codes mapped to application errors
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translate maps constraint violations to conflict errors
func translate(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperror.NewConflictError(fmt.Sprintf("Duplicate value violates %s", pgErr.ConstraintName))
		case pgForeignKeyViolation:
			return apperror.NewConflictError("Record is in use and cannot be deleted or referenced")
		}
	}
	return err
}
