package entity

import (
	"fmt"
	"strings"

	"github.com/merchbydz/backoffice/internal/domain"
)

// Channel identifica uno de los tres pilares de venta.
type Channel string

const (
	ChannelWholesale Channel = "wholesale" // venta al por mayor
	ChannelRetail    Channel = "retail"    // red de revendedores (con comisión)
	ChannelMerch     Channel = "merch"     // merch directo
)

// Channels lista los canales en el orden en que se presentan en el dashboard.
var Channels = []Channel{ChannelWholesale, ChannelRetail, ChannelMerch}

// ParseChannel normaliza y valida un canal recibido como texto.
func ParseChannel(s string) (Channel, error) {
	c := Channel(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case ChannelWholesale, ChannelRetail, ChannelMerch:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidChannel, s)
}

// Label devuelve el nombre comercial del canal.
func (c Channel) Label() string {
	switch c {
	case ChannelWholesale:
		return "Vente en gros"
	case ChannelRetail:
		return "Réseau revendeurs"
	case ChannelMerch:
		return "Merch direct"
	}
	return string(c)
}

// Statuses devuelve la enumeración cerrada de estados válidos para el canal.
// El primer elemento es el estado por defecto de un pedido nuevo.
func (c Channel) Statuses() []OrderStatus {
	switch c {
	case ChannelRetail:
		return []OrderStatus{
			StatusInProduction, StatusConfirmed, StatusInDelivery,
			StatusDeliveredPending, StatusDeliveredCollected, StatusReturned,
		}
	case ChannelWholesale, ChannelMerch:
		return []OrderStatus{
			StatusInProduction, StatusInDelivery,
			StatusDeliveredPending, StatusDeliveredCollected, StatusReturned,
		}
	}
	return nil
}

// Allows indica si el estado pertenece a la enumeración del canal.
func (c Channel) Allows(s OrderStatus) bool {
	for _, st := range c.Statuses() {
		if st == s {
			return true
		}
	}
	return false
}

// DefaultStatus estado asignado a un pedido recién creado.
func (c Channel) DefaultStatus() OrderStatus {
	if st := c.Statuses(); len(st) > 0 {
		return st[0]
	}
	return StatusInProduction
}
