// Package memory implementa los repositorios en memoria. Se usa con STORE_DRIVER=memory
// (desarrollo, demos) y en los tests de casos de uso y handlers.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/merchbydz/backoffice/internal/domain"
	"github.com/merchbydz/backoffice/internal/domain/entity"
	"github.com/merchbydz/backoffice/internal/domain/repository"
)

// Collection colección de registros indexada por ID. Guarda copias: los punteros
// devueltos por GetByID/List pueden modificarse sin afectar al almacén.
type Collection[E any, T interface {
	*E
	entity.Record
}] struct {
	mu    sync.RWMutex
	items map[string]*E
}

// NewCollection crea una colección vacía, p. ej. NewCollection[entity.Order]().
func NewCollection[E any, T interface {
	*E
	entity.Record
}]() *Collection[E, T] {
	return &Collection[E, T]{items: make(map[string]*E)}
}

// Upsert inserta o reemplaza por ID.
func (c *Collection[E, T]) Upsert(_ context.Context, rec T) error {
	if rec == nil || rec.GetID() == "" {
		return fmt.Errorf("%w: registro sin id", domain.ErrInvalidInput)
	}
	cp := *rec
	c.mu.Lock()
	c.items[rec.GetID()] = &cp
	c.mu.Unlock()
	return nil
}

// GetByID devuelve nil si no existe.
func (c *Collection[E, T]) GetByID(_ context.Context, id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.items[id]
	if !ok {
		var zero T
		return zero, nil
	}
	cp := *e
	return T(&cp), nil
}

// Delete borra por ID.
func (c *Collection[E, T]) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(c.items, id)
	return nil
}

// List filtra por rango (los registros sin fecha nunca se excluyen) y canal,
// ordenando por fecha descendente y luego por ID.
func (c *Collection[E, T]) List(_ context.Context, f repository.RecordFilter) ([]T, error) {
	c.mu.RLock()
	out := make([]T, 0, len(c.items))
	for _, e := range c.items {
		rec := T(e)
		if d := rec.RecordDate(); !d.IsZero() && !f.Range.Contains(d) {
			continue
		}
		if f.Channel != "" {
			if ch, ok := any(rec).(entity.Channeled); ok && ch.RecordChannel() != f.Channel {
				continue
			}
		}
		cp := *e
		out = append(out, T(&cp))
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].RecordDate(), out[j].RecordDate()
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return out[i].GetID() < out[j].GetID()
	})
	return out, nil
}

// NewStore construye un repository.Store completamente en memoria.
func NewStore() *repository.Store {
	return &repository.Store{
		Orders:           NewCollection[entity.Order](),
		Charges:          NewCollection[entity.Charge](),
		Offers:           NewCollection[entity.Offer](),
		Marketing:        NewCollection[entity.MarketingSpend](),
		Inventory:        NewCollection[entity.InventoryItem](),
		Credits:          NewCollection[entity.Credit](),
		Payouts:          NewCollection[entity.Payout](),
		SupplierPayments: NewCollection[entity.SupplierPayment](),
	}
}
