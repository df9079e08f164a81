package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/merchbydz/backoffice/internal/application/dto"
	"github.com/merchbydz/backoffice/internal/application/usecase"
	"github.com/merchbydz/backoffice/internal/domain/entity"
)

// RecordHandler CRUD HTTP de una colección. P es el *Input de dto que edita T.
type RecordHandler[E any, T interface {
	*E
	entity.Record
}, P interface {
	*D
	usecase.Patch[T]
}, D any] struct {
	uc *usecase.RecordUseCase[E, T]
}

// NewRecordHandler construye el handler de la colección de uc.
func NewRecordHandler[E any, T interface {
	*E
	entity.Record
}, P interface {
	*D
	usecase.Patch[T]
}, D any](uc *usecase.RecordUseCase[E, T]) *RecordHandler[E, T, P, D] {
	return &RecordHandler[E, T, P, D]{uc: uc}
}

// Mount registra GET/POST en "/" y GET/PUT/DELETE en "/:id".
func (h *RecordHandler[E, T, P, D]) Mount(r fiber.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.GetByID)
	r.Put("/:id", h.Save)
	r.Delete("/:id", h.Delete)
}

// List godoc
// @Summary      Listar registros de una colección por rango de fechas
// @Tags         records
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        channel     query  string  false  "wholesale | retail | merch"
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/{collection} [get]
func (h *RecordHandler[E, T, P, D]) List(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	recs, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(recs))
}

// Create alta con valores por defecto; el cuerpo es opcional y se aplica sobre el registro en blanco.
// POST /api/{collection}
func (h *RecordHandler[E, T, P, D]) Create(c *fiber.Ctx) error {
	var in D
	if len(c.Body()) > 0 {
		if err := c.BodyParser(P(&in)); err != nil {
			return badBody(c)
		}
	}
	rec, err := h.uc.Add(c.UserContext(), P(&in))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// GetByID GET /api/{collection}/:id
func (h *RecordHandler[E, T, P, D]) GetByID(c *fiber.Ctx) error {
	rec, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rec)
}

// Save upsert por id: edita los campos presentes o crea el registro si no existe.
// PUT /api/{collection}/:id
func (h *RecordHandler[E, T, P, D]) Save(c *fiber.Ctx) error {
	var in D
	if err := c.BodyParser(P(&in)); err != nil {
		return badBody(c)
	}
	rec, created, err := h.uc.Save(c.UserContext(), c.Params("id"), P(&in))
	if err != nil {
		return writeError(c, err)
	}
	if created {
		return c.Status(fiber.StatusCreated).JSON(rec)
	}
	return c.JSON(rec)
}

// Delete borrado definitivo. DELETE /api/{collection}/:id
func (h *RecordHandler[E, T, P, D]) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
