package auth

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/merchbydz/backoffice/internal/application/dto"
	"github.com/merchbydz/backoffice/internal/domain"
)

func newTestSessions(t *testing.T, perMinute int) *SessionUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("dz-merch"), bcrypt.MinCost)
	require.NoError(t, err)
	uc, err := NewSessionUseCase(Config{
		PasswordHash:      string(hash),
		AttemptsPerMinute: perMinute,
		JWT:               JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "merchbydz"},
	}, zerolog.Nop())
	require.NoError(t, err)
	return uc
}

func TestNewSessionUseCase_RequiresPassword(t *testing.T) {
	_, err := NewSessionUseCase(Config{JWT: JWTConfig{Secret: "s"}}, zerolog.Nop())
	assert.Error(t, err)

	_, err = NewSessionUseCase(Config{PasswordHash: "plain", JWT: JWTConfig{Secret: "s"}}, zerolog.Nop())
	assert.Error(t, err)

	_, err = NewSessionUseCase(Config{Password: "x"}, zerolog.Nop())
	assert.Error(t, err, "sin JWT secret")
}

func TestLogin_PlainPasswordHashedAtStartup(t *testing.T) {
	uc, err := NewSessionUseCase(Config{Password: "abc", JWT: JWTConfig{Secret: "s", ExpMinutes: 5}}, zerolog.Nop())
	require.NoError(t, err)

	out, err := uc.Login(context.Background(), "10.0.0.1", dto.LoginRequest{Password: "abc"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
}

func TestLogin_IssuesTokenThatAuthenticates(t *testing.T) {
	uc := newTestSessions(t, 5)

	out, err := uc.Login(context.Background(), "10.0.0.1", dto.LoginRequest{Password: "dz-merch"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), out.ExpiresAt, time.Minute)

	claims, err := uc.Authenticate(out.Token)
	require.NoError(t, err)
	assert.Equal(t, Subject, claims.Subject)

	sess := uc.Session(claims)
	assert.Equal(t, claims.SessionID, sess.SessionID)
	assert.NotEmpty(t, sess.SessionID)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc := newTestSessions(t, 5)

	_, err := uc.Login(context.Background(), "10.0.0.1", dto.LoginRequest{Password: "nope"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), "10.0.0.1", dto.LoginRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_RateLimitedPerIP(t *testing.T) {
	uc := newTestSessions(t, 2)
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return fixed }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := uc.Login(ctx, "1.1.1.1", dto.LoginRequest{Password: "bad"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	}
	_, err := uc.Login(ctx, "1.1.1.1", dto.LoginRequest{Password: "dz-merch"})
	assert.ErrorIs(t, err, domain.ErrTooManyAttempts)

	// Otra IP tiene su propio cupo.
	_, err = uc.Login(ctx, "2.2.2.2", dto.LoginRequest{Password: "dz-merch"})
	assert.NoError(t, err)

	// Un minuto después el cupo se repone.
	fixed = fixed.Add(time.Minute)
	_, err = uc.Login(ctx, "1.1.1.1", dto.LoginRequest{Password: "dz-merch"})
	assert.NoError(t, err)
}

func TestLogout_RevokesSession(t *testing.T) {
	uc := newTestSessions(t, 5)
	out, err := uc.Login(context.Background(), "10.0.0.1", dto.LoginRequest{Password: "dz-merch"})
	require.NoError(t, err)
	claims, err := uc.Authenticate(out.Token)
	require.NoError(t, err)

	uc.Logout(claims)

	_, err = uc.Authenticate(out.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthenticate_RejectsForeignToken(t *testing.T) {
	uc := newTestSessions(t, 5)
	_, err := uc.Authenticate("not-a-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
