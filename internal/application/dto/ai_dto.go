package dto

// ChatMessage turno de la conversación con el asistente.
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required,max=8000"`
}

// ChatRequest cuerpo de POST /api/ai/chat. start_date/end_date acotan el resumen
// financiero que se le da al asistente como contexto.
type ChatRequest struct {
	Messages  []ChatMessage `json:"messages" validate:"required,min=1,max=40,dive"`
	StartDate string        `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string        `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// ChatResponse respuesta del asistente.
type ChatResponse struct {
	Reply string `json:"reply"`
}
