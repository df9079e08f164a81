package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/merchbydz/backoffice/internal/application/dto"
	"github.com/merchbydz/backoffice/internal/application/ports"
	"github.com/merchbydz/backoffice/internal/domain"
	"github.com/merchbydz/backoffice/internal/domain/entity"
	"github.com/merchbydz/backoffice/internal/domain/repository"
)

// MaxRows filas de datos aceptadas por archivo.
const MaxRows = 10000

// RowError fila rechazada.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string { return fmt.Sprintf("línea %d: %v", e.Row, e.Err) }

func (e RowError) Unwrap() error { return e.Err }

// CSVImporter parsea y valida un CSV por colección y guarda las filas válidas en una
// sola transacción. Las filas inválidas se devuelven como RowError.
type CSVImporter struct {
	catalog *Catalog
	tx      ports.TxRunner
	log     zerolog.Logger
}

func NewCSVImporter(catalog *Catalog, tx ports.TxRunner, log zerolog.Logger) *CSVImporter {
	return &CSVImporter{catalog: catalog, tx: tx, log: log.With().Str("component", "importer").Logger()}
}

// Collections nombres de colección aceptados.
func (im *CSVImporter) Collections() []string { return im.catalog.Names() }

// Import lee todo r, construye los registros y persiste los válidos.
func (im *CSVImporter) Import(ctx context.Context, name string, r io.Reader) (*dto.ImportResponse, error) {
	col, err := im.catalog.get(name)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("importer: leer archivo: %w", err)
	}

	recs, rejected, err := parseRecords(col, data)
	if err != nil {
		return nil, err
	}

	if len(recs) > 0 {
		err = im.tx.Run(ctx, func(store *repository.Store) error {
			for _, rec := range recs {
				if err := col.upsert(ctx, store, rec); err != nil {
					return fmt.Errorf("guardar %s: %w", rec.GetID(), err)
				}
			}
			return nil
		})
		if err != nil {
			im.log.Error().Err(err).Str("collection", name).Int("rows", len(recs)).Msg("importación abortada")
			return nil, fmt.Errorf("importer: %w", err)
		}
		col.invalidate(ctx)
	}

	resp := &dto.ImportResponse{Collection: name, Imported: len(recs), Rejected: make([]dto.RowErrorDTO, 0, len(rejected))}
	for _, re := range rejected {
		resp.Rejected = append(resp.Rejected, dto.RowErrorDTO{Row: re.Row, Message: re.Err.Error()})
	}
	im.log.Info().Str("collection", name).Int("imported", resp.Imported).Int("rejected", len(rejected)).Msg("CSV importado")
	return resp, nil
}

// parseRecords convierte cada fila en un registro validado. Errores de archivo completo
// (vacío, sin cabecera, demasiado grande) cortan; los de fila se acumulan.
func parseRecords(col collection, data []byte) ([]entity.Record, []RowError, error) {
	p, err := newParser(data)
	if err != nil {
		return nil, nil, err
	}

	known := make(map[string]column, len(col.columns))
	for _, c := range col.columns {
		known[c.name] = c
	}
	matched := false
	for _, h := range p.headers {
		if _, ok := known[h]; ok {
			matched = true
			break
		}
	}
	if !matched {
		return nil, nil, fmt.Errorf("%w: ninguna columna reconocida para %s", domain.ErrInvalidInput, col.name)
	}

	var (
		recs     []entity.Record
		rejected []RowError
		rows     int
	)
	for {
		r, err := p.next()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			rejected = append(rejected, RowError{Row: perr.Line, Err: perr.Err})
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("importer: %w", err)
		}
		if r.empty() {
			continue
		}
		if rows++; rows > MaxRows {
			return nil, nil, fmt.Errorf("%w: más de %d filas", domain.ErrInvalidInput, MaxRows)
		}

		rec, err := buildRow(col, known, r)
		if err != nil {
			rejected = append(rejected, RowError{Row: r.line, Err: err})
			continue
		}
		recs = append(recs, rec)
	}
	return recs, rejected, nil
}

func buildRow(col collection, known map[string]column, r row) (entity.Record, error) {
	fields := make(map[string]any, len(r.values))
	var id string
	for name, raw := range r.values {
		c, ok := known[name]
		if !ok || raw == "" {
			continue
		}
		if name == "id" {
			id = raw
			continue
		}
		switch c.kind {
		case kindDate:
			v, err := parseDate(raw)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			fields[name] = v
		case kindAmount:
			v, err := parseAmount(raw)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			fields[name] = v
		case kindInteger:
			v, err := parseInteger(raw)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			fields[name] = v
		default:
			fields[name] = raw
		}
	}
	return col.build(fields, id)
}
