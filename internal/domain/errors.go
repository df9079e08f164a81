package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("registro no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidStatus     = errors.New("estado no permitido para el canal")
	ErrInvalidChannel    = errors.New("canal de venta desconocido")
	ErrInvalidCategory   = errors.New("categoría de costo desconocida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrTooManyAttempts   = errors.New("demasiados intentos de acceso")
	ErrUnavailable       = errors.New("servicio no configurado")
	ErrInsufficientStock = errors.New("stock insuficiente")
)
