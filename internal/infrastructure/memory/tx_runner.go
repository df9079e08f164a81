package memory

import (
	"context"

	"github.com/merchbydz/backoffice/internal/domain/repository"
)

// TxRunner ejecuta el callback directamente sobre el Store en memoria.
type TxRunner struct {
	store *repository.Store
}

func NewTxRunner(store *repository.Store) *TxRunner {
	return &TxRunner{store: store}
}

func (r *TxRunner) Run(_ context.Context, fn func(store *repository.Store) error) error {
	return fn(r.store)
}
