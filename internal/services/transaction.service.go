package services

import (
	"context"
	"registry/internal/database"
	"registry/internal/logger"

	"gorm.io/gorm"
)

type transactionKey struct{}

// TransactionService runs a function inside a database transaction carried
// through the context, so repositories pick it up transparently via
// GetTransaction. Nested Execute calls join the outer transaction.
type TransactionService struct {
	db  database.DB
	log logger.Logger
}

func NewTransactionService(db database.DB) *TransactionService {
	return &TransactionService{
		db:  db,
		log: logger.New("TransactionService"),
	}
}

func (s *TransactionService) Execute(
	ctx context.Context,
	fn func(txCtx context.Context) error,
) error {
	if _, ok := GetTransaction(ctx); ok {
		return fn(ctx)
	}

	return s.db.SQLWithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, transactionKey{}, tx))
	})
}

// GetTransaction returns the ambient transaction, if any.
func GetTransaction(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(transactionKey{}).(*gorm.DB)
	return tx, ok
}
