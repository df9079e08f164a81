package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/merchbydz/backoffice/internal/domain"
)

// DateLayout formato de fecha aceptado en filtros e importaciones.
const DateLayout = "2006-01-02"

// DateRange rango de días inclusivo. Un extremo en cero significa "sin límite".
type DateRange struct {
	From time.Time
	To   time.Time
}

// NewDateRange normaliza ambos extremos a día civil.
func NewDateRange(from, to time.Time) DateRange {
	return DateRange{From: civilDay(from), To: civilDay(to)}
}

// Unbounded rango que contiene cualquier fecha.
func Unbounded() DateRange { return DateRange{} }

// ParseDateRange interpreta "YYYY-MM-DD"; cadena vacía = extremo abierto.
func ParseDateRange(start, end string) (DateRange, error) {
	var r DateRange
	var err error
	if s := strings.TrimSpace(start); s != "" {
		if r.From, err = time.Parse(DateLayout, s); err != nil {
			return DateRange{}, fmt.Errorf("%w: start_date %q", domain.ErrInvalidInput, start)
		}
	}
	if s := strings.TrimSpace(end); s != "" {
		if r.To, err = time.Parse(DateLayout, s); err != nil {
			return DateRange{}, fmt.Errorf("%w: end_date %q", domain.ErrInvalidInput, end)
		}
	}
	if !r.From.IsZero() && !r.To.IsZero() && r.From.After(r.To) {
		return DateRange{}, fmt.Errorf("%w: start_date posterior a end_date", domain.ErrInvalidInput)
	}
	return r, nil
}

// Contains compara por día civil; ambos extremos incluidos.
func (r DateRange) Contains(t time.Time) bool {
	day := civilDay(t)
	if !r.From.IsZero() && day.Before(civilDay(r.From)) {
		return false
	}
	if !r.To.IsZero() && day.After(civilDay(r.To)) {
		return false
	}
	return true
}

// IsUnbounded verdadero si ningún extremo está fijado.
func (r DateRange) IsUnbounded() bool { return r.From.IsZero() && r.To.IsZero() }

// SplitAfter parte el rango en [From, day] y [day+1, To].
func (r DateRange) SplitAfter(day time.Time) (DateRange, DateRange) {
	d := civilDay(day)
	return DateRange{From: r.From, To: d}, DateRange{From: d.AddDate(0, 0, 1), To: r.To}
}

// Key representación estable para claves de caché y etiquetas.
func (r DateRange) Key() string {
	return formatBound(r.From) + ".." + formatBound(r.To)
}

func formatBound(t time.Time) string {
	if t.IsZero() {
		return "*"
	}
	return t.Format(DateLayout)
}

func civilDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
