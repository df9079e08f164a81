package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/merchbydz/backoffice/internal/application/auth"
	"github.com/merchbydz/backoffice/internal/application/dto"
)

// AuthHandler maneja login, consulta y cierre de sesión.
type AuthHandler struct {
	uc *auth.SessionUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.SessionUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Abrir sesión con la contraseña del equipo
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Login(c.UserContext(), c.IP(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Session GET /api/auth/session
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	claims := getClaims(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
	}
	return c.JSON(h.uc.Session(claims))
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims := getClaims(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
	}
	h.uc.Logout(claims)
	return c.SendStatus(fiber.StatusNoContent)
}
