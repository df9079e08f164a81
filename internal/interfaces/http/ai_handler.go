package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/merchbydz/backoffice/internal/application/dto"
	"github.com/merchbydz/backoffice/internal/application/usecase"
)

// AIHandler chat con el asistente financiero.
type AIHandler struct {
	uc *usecase.AssistantUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.AssistantUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// Chat godoc
// @Summary      Conversar con el asistente sobre las cifras del período
// @Description  El historial completo viaja en cada request; el último mensaje debe ser del usuario.
// @Description  El asistente recibe como contexto el resumen y el desglose por canal del rango.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatRequest  true  "messages, start_date, end_date"
// @Success      200   {object}  dto.ChatResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Failure      504   {object}  dto.ErrorResponse
// @Router       /api/ai/chat [post]
func (h *AIHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Chat(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
