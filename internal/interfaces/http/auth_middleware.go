package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/merchbydz/backoffice/internal/application/dto"
	"github.com/merchbydz/backoffice/pkg/jwt"
)

// Locals keys de la sesión en Fiber.
const (
	LocalSessionID = "session_id"
	LocalSubject   = "subject"
	localClaims    = "claims"
)

// TokenAuthenticator valida un token de sesión (auth.SessionUseCase).
type TokenAuthenticator interface {
	Authenticate(token string) (*jwt.Claims, error)
}

// AuthMiddleware valida el Bearer Token y carga la sesión en c.Locals.
func AuthMiddleware(auth TokenAuthenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := auth.Authenticate(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalSessionID, claims.SessionID)
		c.Locals(LocalSubject, claims.Subject)
		c.Locals(localClaims, claims)
		return c.Next()
	}
}

// GetSessionID devuelve el id de sesión del contexto (después del middleware de auth).
func GetSessionID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSessionID).(string)
	return s
}

func getClaims(c *fiber.Ctx) *jwt.Claims {
	cl, _ := c.Locals(localClaims).(*jwt.Claims)
	return cl
}
