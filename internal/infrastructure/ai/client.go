// Package ai implementa ports.ChatCompleter contra las APIs REST de Anthropic y Gemini.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/merchbydz/backoffice/internal/application/ports"
	"github.com/merchbydz/backoffice/internal/domain"
)

// maxResponseBytes respuestas más largas se truncan antes de deserializar.
const maxResponseBytes = 256 * 1024

// Option ajusta un adaptador (URL base para tests, cliente HTTP).
type Option func(*restClient)

// WithBaseURL reemplaza la URL de la API (httptest, proxies).
func WithBaseURL(url string) Option { return func(c *restClient) { c.baseURL = url } }

// WithHTTPClient reemplaza el cliente HTTP.
func WithHTTPClient(hc *http.Client) Option { return func(c *restClient) { c.http = hc } }

type restClient struct {
	baseURL string
	http    *http.Client
}

func newRestClient(baseURL string, opts []Option) restClient {
	c := restClient{
		baseURL: baseURL,
		// Timeout de red; el caso de uso impone además un context.WithTimeout.
		http: &http.Client{Timeout: 60 * time.Second},
	}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// post envía payload como JSON y devuelve el cuerpo y el status de la respuesta.
func (c restClient) post(ctx context.Context, url string, headers map[string]string, payload any) ([]byte, int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("AI: serializar request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return nil, 0, fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("AI: leer respuesta: %w", err)
	}
	return raw, resp.StatusCode, nil
}

// Unavailable ChatCompleter usado cuando no hay API key: responde siempre ErrUnavailable.
type Unavailable struct{ Provider string }

var _ ports.ChatCompleter = Unavailable{}

func (u Unavailable) Complete(context.Context, string, []ports.ChatMessage) (string, error) {
	return "", fmt.Errorf("AI: %s sin API key: %w", u.Provider, domain.ErrUnavailable)
}
