package service

import (
	"context"

	"github.com/stickervalley/stickervalley/internal/postgres"
)

// sqlOrderStore adapts *postgres.Store to OrderStore. The only glue
// needed is InTx, where the concrete transaction type becomes the
// OrderTx interface; everything else promotes straight through.
type sqlOrderStore struct {
	*postgres.Store
}

// NewOrderStore wraps a postgres store for use by the order service.
func NewOrderStore(store *postgres.Store) OrderStore {
	return sqlOrderStore{Store: store}
}

func (s sqlOrderStore) InTx(ctx context.Context, fn func(tx OrderTx) error) error {
	return s.Store.InTx(ctx, func(tx *postgres.Tx) error {
		return fn(tx)
	})
}
