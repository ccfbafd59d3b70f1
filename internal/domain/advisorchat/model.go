package advisorchat

import (
	"time"

	"github.com/agrivision/agrivision/internal/domain/diagnosis"
	"github.com/agrivision/agrivision/internal/domain/i18n"
)

// Chat roles. The provider expects "user" and "model".
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// OfflineReply is returned whenever the provider cannot be reached. Chat
// degrades gracefully: the thread never shows a broken state.
const OfflineReply = "Sorry, I am currently offline. Please try again."

// Message is one immutable turn in an advisory conversation.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Request carries one new user message plus the prior conversation.
type Request struct {
	History  []Message
	Text     string
	Language i18n.Language
	Context  *diagnosis.Analysis
}

// Config wires runtime tuning for the chat domain.
type Config struct {
	Persona            string
	HistoryTokenBudget int
}
