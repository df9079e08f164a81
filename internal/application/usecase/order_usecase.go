package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/merchbydz/backoffice/internal/application/ports"
	"github.com/merchbydz/backoffice/internal/domain"
	"github.com/merchbydz/backoffice/internal/domain/entity"
	"github.com/merchbydz/backoffice/internal/domain/repository"
)

// OrderUseCase pedidos de los tres canales más la transición de estado.
type OrderUseCase struct {
	*RecordUseCase[entity.Order, *entity.Order]
}

// NewOrderUseCase el alta sin canal crea un pedido mayorista.
func NewOrderUseCase(repo repository.OrderRepository, cache ports.SummaryCache, log zerolog.Logger) *OrderUseCase {
	return &OrderUseCase{
		RecordUseCase: NewRecordUseCase[entity.Order]("orders", repo, newOrderBlank(entity.ChannelWholesale), cache, log),
	}
}

// UpdateStatus mueve el pedido a status. El estado debe existir en el canal del pedido;
// el cambio solo afecta a los buckets de este pedido.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id, status string) (*entity.Order, error) {
	st, err := entity.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}
	o, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.Channel.Allows(st) {
		return nil, fmt.Errorf("%w: %q en canal %s", domain.ErrInvalidStatus, st, o.Channel)
	}
	prev := o.Status
	o.Status = st
	if err := uc.Update(ctx, o); err != nil {
		return nil, err
	}
	uc.log.Info().Str("id", id).Str("from", string(prev)).Str("to", string(st)).Msg("estado de pedido actualizado")
	return o, nil
}
