package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/merchbydz/backoffice/internal/application/dto"
	"github.com/merchbydz/backoffice/internal/application/inventory"
)

// MovementHandler entradas y salidas de stock.
type MovementHandler struct {
	uc *inventory.MovementUseCase
}

func NewMovementHandler(uc *inventory.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar un movimiento de stock
// @Description  in recalcula el costo promedio ponderado, out descuenta, adjustment fija la cantidad contada.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del artículo"
// @Param        body  body  dto.MovementRequest  true  "Movimiento"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var req dto.MovementRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	res, err := h.uc.Register(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}
