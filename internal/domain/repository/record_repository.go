package repository

import (
	"context"

	"github.com/merchbydz/backoffice/internal/domain/entity"
	"github.com/merchbydz/backoffice/internal/domain/ledger"
)

// RecordFilter filtro de consulta por rango de fechas y, si aplica, canal.
type RecordFilter struct {
	Range   ledger.DateRange
	Channel entity.Channel // vacío = todos; se ignora en colecciones sin canal
}

// RecordRepository puerto de persistencia común a todas las colecciones planas (DIP).
// GetByID devuelve el valor cero (nil) sin error cuando el registro no existe.
// Delete devuelve domain.ErrNotFound si no había nada que borrar.
type RecordRepository[T entity.Record] interface {
	Upsert(ctx context.Context, rec T) error
	GetByID(ctx context.Context, id string) (T, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter RecordFilter) ([]T, error)
}

type (
	OrderRepository           = RecordRepository[*entity.Order]
	ChargeRepository          = RecordRepository[*entity.Charge]
	OfferRepository           = RecordRepository[*entity.Offer]
	MarketingRepository       = RecordRepository[*entity.MarketingSpend]
	InventoryRepository       = RecordRepository[*entity.InventoryItem]
	CreditRepository          = RecordRepository[*entity.Credit]
	PayoutRepository          = RecordRepository[*entity.Payout]
	SupplierPaymentRepository = RecordRepository[*entity.SupplierPayment]
)

// Store agrupa el acceso de lectura/escritura a todas las colecciones.
// Se inyecta en los casos de uso en lugar de un estado global.
type Store struct {
	Orders           OrderRepository
	Charges          ChargeRepository
	Offers           OfferRepository
	Marketing        MarketingRepository
	Inventory        InventoryRepository
	Credits          CreditRepository
	Payouts          PayoutRepository
	SupplierPayments SupplierPaymentRepository
}
