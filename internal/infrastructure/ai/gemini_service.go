package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/merchbydz/backoffice/internal/application/ports"
)

// Verificar en tiempo de compilación que GeminiService implementa ChatCompleter.
var _ ports.ChatCompleter = (*GeminiService)(nil)

const geminiBaseURL = "https://generativelanguage.googleapis.com"

// GeminiService adaptador sobre la API REST generateContent de Google Gemini.
type GeminiService struct {
	apiKey string
	model  string
	client restClient
}

// NewGeminiService model suele ser "gemini-1.5-flash".
func NewGeminiService(apiKey, model string, opts ...Option) *GeminiService {
	return &GeminiService{apiKey: apiKey, model: model, client: newRestClient(geminiBaseURL, opts)}
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  genConfig       `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type genConfig struct {
	Temperature     float32 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete Gemini llama "model" al rol del asistente.
func (s *GeminiService) Complete(ctx context.Context, system string, messages []ports.ChatMessage) (string, error) {
	if s.apiKey == "" {
		return Unavailable{Provider: "gemini"}.Complete(ctx, system, messages)
	}

	payload := geminiRequest{
		GenerationConfig: genConfig{Temperature: 0.3, MaxOutputTokens: 1024},
	}
	if system != "" {
		payload.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: system}}}
	}
	for _, m := range messages {
		role := "user"
		if m.Role == "assistant" {
			role = "model"
		}
		payload.Contents = append(payload.Contents, geminiContent{Role: role, Parts: []geminiPart{{Text: m.Content}}})
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(s.client.baseURL, "/"), url.PathEscape(s.model), url.QueryEscape(s.apiKey))
	raw, status, err := s.client.post(ctx, endpoint, nil, payload)
	if err != nil {
		return "", err
	}

	var resp geminiResponse
	jsonErr := json.Unmarshal(raw, &resp)
	if status != http.StatusOK {
		if jsonErr == nil && resp.Error != nil {
			return "", fmt.Errorf("AI: Gemini error %d: %s", resp.Error.Code, resp.Error.Message)
		}
		return "", fmt.Errorf("AI: Gemini HTTP %d", status)
	}
	if jsonErr != nil {
		return "", fmt.Errorf("AI: deserializar respuesta Gemini: %w", jsonErr)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}

	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
