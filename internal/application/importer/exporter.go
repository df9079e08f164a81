package importer

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/merchbydz/backoffice/internal/domain/repository"
)

// CSVExporter vuelca una colección a CSV UTF-8 (con BOM, para Excel) con las mismas
// columnas que acepta el importador, de modo que el archivo puede reimportarse.
type CSVExporter struct {
	catalog *Catalog
}

func NewCSVExporter(catalog *Catalog) *CSVExporter {
	return &CSVExporter{catalog: catalog}
}

// Collections nombres de colección exportables.
func (ex *CSVExporter) Collections() []string { return ex.catalog.Names() }

// Export escribe en w los registros del filtro.
func (ex *CSVExporter) Export(ctx context.Context, name string, f repository.RecordFilter, w io.Writer) error {
	col, err := ex.catalog.get(name)
	if err != nil {
		return err
	}
	recs, err := col.list(ctx, f)
	if err != nil {
		return err
	}

	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	header := make([]string, len(col.columns))
	for i, c := range col.columns {
		header[i] = c.name
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	line := make([]string, len(col.columns))
	for _, rec := range recs {
		payload, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("exporter: %s: %w", rec.GetID(), err)
		}
		var values map[string]any
		dec := json.NewDecoder(bytes.NewReader(payload))
		dec.UseNumber()
		if err := dec.Decode(&values); err != nil {
			return fmt.Errorf("exporter: %s: %w", rec.GetID(), err)
		}
		for i, c := range col.columns {
			line[i] = cell(c, values[c.name])
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
