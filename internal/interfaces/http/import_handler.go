package http

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/merchbydz/backoffice/internal/application/dto"
	"github.com/merchbydz/backoffice/internal/application/importer"
)

// maxUploadBytes tamaño máximo del CSV subido.
const maxUploadBytes = 8 << 20

// ImportObserver recibe el resultado de cada importación (metrics.Metrics).
type ImportObserver interface {
	ObserveImport(collection string, imported, rejected int)
}

// TransferHandler importación y exportación CSV de las colecciones.
type TransferHandler struct {
	importer *importer.CSVImporter
	exporter *importer.CSVExporter
	observer ImportObserver
}

// NewTransferHandler observer puede ser nil.
func NewTransferHandler(im *importer.CSVImporter, ex *importer.CSVExporter, observer ImportObserver) *TransferHandler {
	return &TransferHandler{importer: im, exporter: ex, observer: observer}
}

// Import godoc
// @Summary      Importar un CSV en una colección
// @Description  Acepta multipart (campo "file") o el CSV crudo como cuerpo. Coma o punto y coma,
// @Description  UTF-8 o Windows-1252. Una columna id convierte la fila en upsert.
// @Tags         transfer
// @Security     Bearer
// @Accept       text/csv
// @Produce      json
// @Param        collection  path  string  true  "orders | charges | offers | marketing | inventory | credits | payouts | supplier-payments"
// @Success      200  {object}  dto.ImportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/import/{collection} [post]
func (h *TransferHandler) Import(c *fiber.Ctx) error {
	var src io.Reader
	if fh, err := c.FormFile("file"); err == nil {
		if fh.Size > maxUploadBytes {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "TOO_LARGE", Message: "archivo demasiado grande"})
		}
		f, err := fh.Open()
		if err != nil {
			return badBody(c)
		}
		defer f.Close()
		src = f
	} else {
		body := c.Body()
		if len(body) > maxUploadBytes {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "TOO_LARGE", Message: "archivo demasiado grande"})
		}
		src = bytes.NewReader(body)
	}

	name := c.Params("collection")
	out, err := h.importer.Import(c.UserContext(), name, src)
	if err != nil {
		return writeError(c, err)
	}
	if h.observer != nil {
		h.observer.ObserveImport(name, out.Imported, len(out.Rejected))
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar una colección como CSV (UTF-8 con BOM)
// @Tags         transfer
// @Security     Bearer
// @Produce      text/csv
// @Param        collection  path   string  true   "Colección"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Router       /api/export/{collection} [get]
func (h *TransferHandler) Export(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	name := c.Params("collection")
	var buf bytes.Buffer
	if err := h.exporter.Export(c.UserContext(), name, f, &buf); err != nil {
		return writeError(c, err)
	}
	filename := fmt.Sprintf("%s_%s.csv", name, time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}

// Collections nombres aceptados por import/export.
func (h *TransferHandler) Collections(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"collections": h.importer.Collections()})
}
