package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/merchbydz/backoffice/internal/application/ports"
)

// Verificar en tiempo de compilación que AnthropicService implementa ChatCompleter.
var _ ports.ChatCompleter = (*AnthropicService)(nil)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
	anthropicTokens  = 1024
)

// AnthropicService adaptador sobre la API REST Messages de Anthropic (sin SDK).
type AnthropicService struct {
	apiKey string
	model  string
	client restClient
}

// NewAnthropicService model suele ser "claude-3-5-haiku-latest".
func NewAnthropicService(apiKey, model string, opts ...Option) *AnthropicService {
	return &AnthropicService{apiKey: apiKey, model: model, client: newRestClient(anthropicBaseURL, opts)}
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete concatena los bloques de texto de la respuesta.
func (s *AnthropicService) Complete(ctx context.Context, system string, messages []ports.ChatMessage) (string, error) {
	if s.apiKey == "" {
		return Unavailable{Provider: "anthropic"}.Complete(ctx, system, messages)
	}

	payload := anthropicRequest{Model: s.model, MaxTokens: anthropicTokens, System: system}
	for _, m := range messages {
		payload.Messages = append(payload.Messages, anthropicMessage{Role: m.Role, Content: m.Content})
	}

	raw, status, err := s.client.post(ctx, strings.TrimRight(s.client.baseURL, "/")+"/v1/messages", map[string]string{
		"x-api-key":         s.apiKey,
		"anthropic-version": anthropicVersion,
	}, payload)
	if err != nil {
		return "", err
	}

	var resp anthropicResponse
	jsonErr := json.Unmarshal(raw, &resp)
	if status != http.StatusOK {
		if jsonErr == nil && resp.Error != nil {
			return "", fmt.Errorf("AI: Anthropic error (%s): %s", resp.Error.Type, resp.Error.Message)
		}
		return "", fmt.Errorf("AI: Anthropic HTTP %d", status)
	}
	if jsonErr != nil {
		return "", fmt.Errorf("AI: deserializar respuesta Anthropic: %w", jsonErr)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("AI: Claude devolvió respuesta vacía")
	}
	return sb.String(), nil
}
