package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/merchbydz/backoffice/internal/application/dto"
	"github.com/merchbydz/backoffice/internal/application/ports"
	"github.com/merchbydz/backoffice/internal/domain"
	"github.com/merchbydz/backoffice/internal/domain/ledger"
)

const assistantTimeout = 30 * time.Second

const assistantPrompt = `Tu es l'assistant financier de Merch By DZ, une petite marque de merchandising.
Tu réponds dans la langue de l'utilisateur, de façon concise, en t'appuyant UNIQUEMENT sur les chiffres ci-dessous.
Montants en %s. "recognized_profit" = livré et encaissé, "expected_profit" = livré non encaissé,
"loss" = coût des retours, "net_position" = reconnu + attendu + ponctuel net − pertes − charges − marketing.
Si une information n'apparaît pas dans les données, dis-le au lieu d'inventer.

Période: %s
Résumé:
%s
Par canal:
%s`

// LedgerSnapshot cifras agregadas que se le pasan al asistente como contexto.
type LedgerSnapshot interface {
	Summary(ctx context.Context, r ledger.DateRange) (dto.SummaryDTO, error)
	Channels(ctx context.Context, r ledger.DateRange) ([]dto.ChannelProfitDTO, error)
}

// AssistantUseCase chat en lenguaje natural sobre los números del libro.
// Cada llamada al LLM lleva un timeout para no bloquear los goroutines del servidor.
type AssistantUseCase struct {
	llm      ports.ChatCompleter
	snapshot LedgerSnapshot
	currency string
	log      zerolog.Logger
}

func NewAssistantUseCase(llm ports.ChatCompleter, snapshot LedgerSnapshot, currency string, log zerolog.Logger) *AssistantUseCase {
	return &AssistantUseCase{
		llm:      llm,
		snapshot: snapshot,
		currency: currency,
		log:      log.With().Str("component", "assistant").Logger(),
	}
}

// Chat valida la conversación, arma el prompt de sistema con el resumen del rango
// pedido y devuelve la respuesta del modelo.
func (uc *AssistantUseCase) Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	if uc.llm == nil {
		return nil, fmt.Errorf("asistente: %w", domain.ErrUnavailable)
	}
	if err := dto.Validate(&req); err != nil {
		return nil, err
	}
	if last := req.Messages[len(req.Messages)-1]; last.Role != "user" {
		return nil, fmt.Errorf("%w: el último mensaje debe ser del usuario", domain.ErrInvalidInput)
	}
	r, err := ledger.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	system, err := uc.systemPrompt(ctx, r)
	if err != nil {
		return nil, err
	}

	msgs := make([]ports.ChatMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		msgs = append(msgs, ports.ChatMessage{Role: m.Role, Content: strings.TrimSpace(m.Content)})
	}

	ctx, cancel := context.WithTimeout(ctx, assistantTimeout)
	defer cancel()

	reply, err := uc.llm.Complete(ctx, system, msgs)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			uc.log.Warn().Err(err).Msg("asistente sin respuesta a tiempo")
		} else {
			uc.log.Error().Err(err).Msg("llamada al asistente")
		}
		return nil, fmt.Errorf("asistente: %w", err)
	}
	return &dto.ChatResponse{Reply: strings.TrimSpace(reply)}, nil
}

func (uc *AssistantUseCase) systemPrompt(ctx context.Context, r ledger.DateRange) (string, error) {
	summary, err := uc.snapshot.Summary(ctx, r)
	if err != nil {
		return "", err
	}
	channels, err := uc.snapshot.Channels(ctx, r)
	if err != nil {
		return "", err
	}
	s, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", err
	}
	c, err := json.MarshalIndent(channels, "", "  ")
	if err != nil {
		return "", err
	}
	period := "toutes dates"
	if !r.IsUnbounded() {
		period = r.Key()
	}
	return fmt.Sprintf(assistantPrompt, uc.currency, period, s, c), nil
}
