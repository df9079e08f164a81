package ports

import "context"

// ChatMessage turno de conversación con rol "user" o "assistant".
type ChatMessage struct {
	Role    string
	Content string
}

// ChatCompleter puerto de salida hacia el proveedor de LLM (Anthropic, Gemini, mock).
// Recibe el prompt de sistema y los mensajes en orden y devuelve un único texto.
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type ChatCompleter interface {
	Complete(ctx context.Context, system string, messages []ChatMessage) (string, error)
}
