package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RangeQuery filtros comunes de listados y tableros (?start_date=&end_date=&channel=).
type RangeQuery struct {
	StartDate string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Channel   string `query:"channel" validate:"omitempty,oneof=wholesale retail merch"`
}

// ListResponse listado genérico de registros.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

// NewListResponse envuelve items garantizando un arreglo JSON (nunca null).
func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Count: len(items)}
}
