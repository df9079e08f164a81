// Package auth implementa la puerta de acceso por contraseña del back-office.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/merchbydz/backoffice/internal/application/dto"
	"github.com/merchbydz/backoffice/internal/domain"
	"github.com/merchbydz/backoffice/pkg/jwt"
)

// Subject único: el back-office tiene una sola cuenta de equipo.
const Subject = "staff"

// maxTrackedClients cota del mapa de limitadores por IP.
const maxTrackedClients = 10000

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Config contraseña del equipo: hash bcrypt o, si falta, contraseña en claro hasheada al arrancar.
type Config struct {
	PasswordHash      string
	Password          string
	AttemptsPerMinute int
	JWT               JWTConfig
}

// SessionUseCase login, consulta y cierre de sesión.
type SessionUseCase struct {
	hash   []byte
	jwtCfg JWTConfig
	log    zerolog.Logger

	perMinute int
	mu        sync.Mutex
	limiters  map[string]*rate.Limiter
	revoked   map[string]time.Time // sid → expiración del token
	now       func() time.Time
}

// NewSessionUseCase falla si no hay contraseña configurada o el hash no es bcrypt.
func NewSessionUseCase(cfg Config, log zerolog.Logger) (*SessionUseCase, error) {
	var hash []byte
	switch {
	case cfg.PasswordHash != "":
		hash = []byte(cfg.PasswordHash)
		if _, err := bcrypt.Cost(hash); err != nil {
			return nil, fmt.Errorf("auth: STAFF_PASSWORD_HASH inválido: %w", err)
		}
	case cfg.Password != "":
		h, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("auth: hashear contraseña: %w", err)
		}
		hash = h
	default:
		return nil, errors.New("auth: STAFF_PASSWORD_HASH o STAFF_PASSWORD requerido")
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("auth: JWT_SECRET requerido")
	}
	perMinute := cfg.AttemptsPerMinute
	if perMinute <= 0 {
		perMinute = 5
	}
	return &SessionUseCase{
		hash:      hash,
		jwtCfg:    cfg.JWT,
		log:       log.With().Str("component", "auth").Logger(),
		perMinute: perMinute,
		limiters:  make(map[string]*rate.Limiter),
		revoked:   make(map[string]time.Time),
		now:       time.Now,
	}, nil
}

// Login compara la contraseña y emite un token. clientIP identifica al cliente para el límite de intentos.
func (uc *SessionUseCase) Login(_ context.Context, clientIP string, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if !uc.allow(clientIP) {
		uc.log.Warn().Str("ip", clientIP).Msg("login bloqueado por límite de intentos")
		return nil, domain.ErrTooManyAttempts
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword(uc.hash, []byte(in.Password)); err != nil {
		uc.log.Info().Str("ip", clientIP).Msg("contraseña incorrecta")
		return nil, domain.ErrUnauthorized
	}

	sid := uuid.New().String()
	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, Subject, sid, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("auth: generar token: %w", err)
	}
	uc.log.Info().Str("ip", clientIP).Str("session_id", sid).Msg("sesión iniciada")
	return &dto.LoginResponse{Token: token, ExpiresAt: exp}, nil
}

// Authenticate valida el token y que la sesión no esté cerrada.
func (uc *SessionUseCase) Authenticate(token string) (*jwt.Claims, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	uc.mu.Lock()
	_, closed := uc.revoked[claims.SessionID]
	uc.mu.Unlock()
	if closed {
		return nil, fmt.Errorf("%w: sesión cerrada", domain.ErrUnauthorized)
	}
	return claims, nil
}

// Session describe la sesión de los claims ya validados.
func (uc *SessionUseCase) Session(claims *jwt.Claims) dto.SessionResponse {
	out := dto.SessionResponse{SessionID: claims.SessionID, Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out
}

// Logout invalida la sesión hasta que el token expire.
func (uc *SessionUseCase) Logout(claims *jwt.Claims) {
	exp := uc.now().Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute)
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	now := uc.now()
	for sid, until := range uc.revoked {
		if now.After(until) {
			delete(uc.revoked, sid)
		}
	}
	uc.revoked[claims.SessionID] = exp
	uc.log.Info().Str("session_id", claims.SessionID).Msg("sesión cerrada")
}

func (uc *SessionUseCase) allow(clientIP string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	l, ok := uc.limiters[clientIP]
	if !ok {
		if len(uc.limiters) >= maxTrackedClients {
			uc.limiters = make(map[string]*rate.Limiter)
		}
		l = rate.NewLimiter(rate.Every(time.Minute/time.Duration(uc.perMinute)), uc.perMinute)
		uc.limiters[clientIP] = l
	}
	return l.AllowN(uc.now(), 1)
}
