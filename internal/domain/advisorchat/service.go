package advisorchat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/agrivision/agrivision/internal/infra/llm/gemini"
	"github.com/agrivision/agrivision/pkg/metrics"
)

// Service exposes the advisory chat capability.
type Service interface {
	Reply(ctx context.Context, req Request) string
}

// ProviderClient is the slice of the AI provider the chat domain needs.
type ProviderClient interface {
	GenerateContent(ctx context.Context, req gemini.GenerateContentRequest) (gemini.GenerateContentResponse, error)
}

type service struct {
	cfg    Config
	client ProviderClient
	tokens tokenCounter
	logger *slog.Logger
}

// NewService wires up the chat domain.
func NewService(cfg Config, client ProviderClient, logger *slog.Logger) Service {
	return &service{cfg: cfg, client: client, logger: logger.With("component", "advisorchat.service")}
}

// Reply answers one user message. Provider failures are swallowed and
// replaced with a fixed offline reply so the conversation thread never
// surfaces an error.
func (s *service) Reply(ctx context.Context, req Request) string {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return OfflineReply
	}

	system := s.buildSystemContext(req)
	history, usage := s.capHistory(req.History, system, text)

	contents := make([]gemini.Content, 0, len(history)+2)
	contents = append(contents, gemini.Content{Role: RoleUser, Parts: []gemini.Part{{Text: system}}})
	for _, msg := range history {
		contents = append(contents, gemini.Content{Role: msg.Role, Parts: []gemini.Part{{Text: msg.Text}}})
	}
	contents = append(contents, gemini.Content{Role: RoleUser, Parts: []gemini.Part{{Text: text}}})

	resp, err := s.client.GenerateContent(ctx, gemini.GenerateContentRequest{Contents: contents})
	if err != nil {
		s.logger.Warn("chat request failed, serving offline reply", "error", err)
		return OfflineReply
	}

	reply := resp.Text()
	if reply == "" {
		return "I'm having trouble connecting to the farm server."
	}
	if !usage.IsZero() {
		s.logger.Info("chat reply served", "promptTokens", usage.PromptTokens, "droppedTurns", usage.DroppedTurns)
	}
	return reply
}

func (s *service) buildSystemContext(req Request) string {
	system := fmt.Sprintf("%s Answer in %s language only.", s.cfg.Persona, req.Language)
	if ctx := req.Context; ctx != nil {
		health := "unhealthy"
		if ctx.IsHealthy {
			health = "healthy"
		}
		system += fmt.Sprintf(" The user is currently looking at a %s which is %s. Disease: %s. Soil: %s.",
			ctx.PlantName, health, ctx.DiseaseName, ctx.SoilTypeRecommendation)
	}
	return system
}

// capHistory drops the oldest turns until the prompt fits the token budget.
// The system context and the new message always survive.
func (s *service) capHistory(history []Message, system, newMessage string) ([]Message, metrics.TokenUsage) {
	budget := s.cfg.HistoryTokenBudget
	fixed := s.tokens.Count(system) + s.tokens.Count(newMessage)

	total := 0
	counts := make([]int, len(history))
	for i, msg := range history {
		counts[i] = s.tokens.Count(msg.Text)
		total += counts[i]
	}

	dropped := 0
	for dropped < len(history) && fixed+total > budget {
		total -= counts[dropped]
		dropped++
	}

	return history[dropped:], metrics.TokenUsage{
		PromptTokens:  fixed + total,
		DroppedTurns:  dropped,
		HistoryTokens: total,
	}
}
