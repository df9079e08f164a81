package ports

import (
	"context"
	"time"
)

// SummaryCache caché de resúmenes del dashboard. Invalidate avanza la generación y
// descarta lo cacheado (se llama tras cada escritura en el libro).
//
// El llamador lee Generation antes de cargar los datos y pasa ese valor a Get y Set:
// un resultado calculado con una generación ya invalidada no se guarda.
type SummaryCache interface {
	Generation(ctx context.Context) (int64, error)
	// Get decodifica en dst y devuelve false si no hay entrada para gen.
	Get(ctx context.Context, gen int64, key string, dst any) (bool, error)
	Set(ctx context.Context, gen int64, key string, value any, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}
