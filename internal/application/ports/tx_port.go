package ports

import (
	"context"

	"github.com/merchbydz/backoffice/internal/domain/repository"
)

// TxRunner ejecuta fn con un Store cuyas escrituras se confirman juntas
// (en PostgreSQL, una transacción; en memoria, sin atomicidad).
type TxRunner interface {
	Run(ctx context.Context, fn func(store *repository.Store) error) error
}
