package postgresql

import (
	"context"

	"github.com/yahya12213/SiteManagement-sub010/internal/pkg/database"
)

// GetQuerier returns the transaction from the context when one is open,
// the pool otherwise. Used in repositories so the same methods work inside
// and outside WithTransaction.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := database.TxFromContext(ctx); ok {
		return tx
	}
	return db.Pool
}
