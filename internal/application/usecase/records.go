package usecase

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/merchbydz/backoffice/internal/application/ports"
	"github.com/merchbydz/backoffice/internal/domain/entity"
	"github.com/merchbydz/backoffice/internal/domain/ledger"
	"github.com/merchbydz/backoffice/internal/domain/repository"
)

type (
	ChargeUseCase          = RecordUseCase[entity.Charge, *entity.Charge]
	OfferUseCase           = RecordUseCase[entity.Offer, *entity.Offer]
	MarketingUseCase       = RecordUseCase[entity.MarketingSpend, *entity.MarketingSpend]
	InventoryUseCase       = RecordUseCase[entity.InventoryItem, *entity.InventoryItem]
	CreditUseCase          = RecordUseCase[entity.Credit, *entity.Credit]
	PayoutUseCase          = RecordUseCase[entity.Payout, *entity.Payout]
	SupplierPaymentUseCase = RecordUseCase[entity.SupplierPayment, *entity.SupplierPayment]
)

// Records casos de uso de todas las colecciones del libro.
type Records struct {
	Orders           *OrderUseCase
	Charges          *ChargeUseCase
	Offers           *OfferUseCase
	Marketing        *MarketingUseCase
	Inventory        *InventoryUseCase
	Credits          *CreditUseCase
	Payouts          *PayoutUseCase
	SupplierPayments *SupplierPaymentUseCase
}

// NewRecords cablea cada colección del Store con la caché y el logger.
func NewRecords(store *repository.Store, routing ledger.Routing, cache ports.SummaryCache, log zerolog.Logger) *Records {
	return &Records{
		Orders:           NewOrderUseCase(store.Orders, cache, log),
		Charges:          NewRecordUseCase[entity.Charge]("charges", store.Charges, entity.NewCharge, cache, log),
		Offers:           NewRecordUseCase[entity.Offer]("offers", store.Offers, entity.NewOffer, cache, log),
		Marketing:        NewRecordUseCase[entity.MarketingSpend]("marketing", store.Marketing, entity.NewMarketingSpend, cache, log),
		Inventory:        NewRecordUseCase[entity.InventoryItem]("inventory", store.Inventory, entity.NewInventoryItem, cache, log),
		Credits:          NewRecordUseCase[entity.Credit]("credits", store.Credits, entity.NewCredit, cache, log),
		Payouts:          NewRecordUseCase[entity.Payout]("payouts", store.Payouts, entity.NewPayout, cache, log),
		SupplierPayments: NewSupplierPaymentUseCase(store.SupplierPayments, routing, cache, log),
	}
}

// NewSupplierPaymentUseCase mantiene el proveedor coherente con la categoría: si deja de
// ser elegible (típicamente al cambiar la categoría) vuelve a la primera opción válida.
func NewSupplierPaymentUseCase(repo repository.SupplierPaymentRepository, routing ledger.Routing, cache ports.SummaryCache, log zerolog.Logger) *SupplierPaymentUseCase {
	uc := NewRecordUseCase[entity.SupplierPayment]("supplier-payments", repo, entity.NewSupplierPayment, cache, log)
	return uc.WithPrepare(func(p *entity.SupplierPayment) {
		prev := p.Supplier
		if routing.Normalize(p) && prev != "" {
			uc.log.Debug().Str("id", p.ID).Str("from", prev).Str("to", p.Supplier).Msg("proveedor reiniciado por categoría")
		}
	})
}

func newOrderBlank(channel entity.Channel) func(time.Time) *entity.Order {
	return func(now time.Time) *entity.Order { return entity.NewOrder(channel, now) }
}
