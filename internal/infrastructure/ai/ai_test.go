package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchbydz/backoffice/internal/application/ports"
	"github.com/merchbydz/backoffice/internal/domain"
)

var conversation = []ports.ChatMessage{
	{Role: "user", Content: "Quelle est ma position nette ?"},
	{Role: "assistant", Content: "-68 700 DA."},
	{Role: "user", Content: "Pourquoi ?"},
}

func TestAnthropic_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var req anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-test", req.Model)
		assert.Equal(t, "system prompt", req.System)
		require.Len(t, req.Messages, 3)
		assert.Equal(t, "assistant", req.Messages[1].Role)

		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"Les charges "},{"type":"text","text":"dépassent le bénéfice."}]}`))
	}))
	defer srv.Close()

	svc := NewAnthropicService("secret", "claude-test", WithBaseURL(srv.URL))
	reply, err := svc.Complete(context.Background(), "system prompt", conversation)
	require.NoError(t, err)
	assert.Equal(t, "Les charges dépassent le bénéfice.", reply)
}

func TestAnthropic_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer srv.Close()

	_, err := NewAnthropicService("bad", "m", WithBaseURL(srv.URL)).Complete(context.Background(), "", conversation)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication_error")
}

func TestAnthropic_MissingKey(t *testing.T) {
	_, err := NewAnthropicService("", "m").Complete(context.Background(), "", conversation)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestGemini_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.SystemInstruction)
		assert.Equal(t, "system prompt", req.SystemInstruction.Parts[0].Text)
		require.Len(t, req.Contents, 3)
		assert.Equal(t, "user", req.Contents[0].Role)
		assert.Equal(t, "model", req.Contents[1].Role)

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Réponse"}]}}]}`))
	}))
	defer srv.Close()

	svc := NewGeminiService("secret", "gemini-test", WithBaseURL(srv.URL+"/"))
	reply, err := svc.Complete(context.Background(), "system prompt", conversation)
	require.NoError(t, err)
	assert.Equal(t, "Réponse", reply)
}

func TestGemini_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	_, err := NewGeminiService("k", "m", WithBaseURL(srv.URL)).Complete(context.Background(), "", conversation)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vacía")
}

func TestGemini_HTTPErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewGeminiService("k", "m", WithBaseURL(srv.URL)).Complete(context.Background(), "", conversation)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestComplete_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewAnthropicService("k", "m", WithBaseURL(srv.URL)).Complete(ctx, "", conversation)
	assert.ErrorIs(t, err, context.Canceled)
}
