package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	token, exp, err := Generate("s3cret", "staff", "sess-1", "merchbydz", 30)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), exp, 5*time.Second)

	claims, err := Parse("s3cret", "merchbydz", token)
	require.NoError(t, err)
	assert.Equal(t, "staff", claims.Subject)
	assert.Equal(t, "sess-1", claims.SessionID)
}

func TestParse_Rejects(t *testing.T) {
	token, _, err := Generate("s3cret", "staff", "sess-1", "merchbydz", 30)
	require.NoError(t, err)

	_, err = Parse("otro", "merchbydz", token)
	assert.Error(t, err, "firma incorrecta")

	_, err = Parse("s3cret", "otro-emisor", token)
	assert.Error(t, err, "emisor distinto")

	expired, _, err := Generate("s3cret", "staff", "sess-1", "merchbydz", -1)
	require.NoError(t, err)
	_, err = Parse("s3cret", "merchbydz", expired)
	assert.Error(t, err, "expirado")
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, _, err := Generate("", "staff", "sess-1", "merchbydz", 30)
	assert.Error(t, err)
}
