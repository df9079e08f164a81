package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/merchbydz/backoffice/internal/domain"
)

// Record contrato común de todas las colecciones planas del back-office.
// Los repositorios y casos de uso genéricos trabajan sobre punteros que lo implementan.
type Record interface {
	GetID() string
	SetID(id string)
	// RecordDate fecha usada para filtrar por rango (cero si la colección no tiene fecha).
	RecordDate() time.Time
	// Validate comprueba los invariantes del registro antes de persistirlo.
	Validate() error
}

// Channeled lo implementan los registros etiquetados con un canal de venta.
type Channeled interface {
	RecordChannel() Channel
}

// Today devuelve la fecha civil de now a medianoche UTC.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func requireNonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return fmt.Errorf("%w: %s no puede ser negativo", domain.ErrInvalidInput, field)
	}
	return nil
}
