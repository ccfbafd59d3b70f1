package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/agrivision/agrivision/internal/domain/i18n"
	"github.com/agrivision/agrivision/internal/infra/llm/gemini"
	apperrors "github.com/agrivision/agrivision/pkg/errors"
)

// Service exposes the feature report capability.
type Service interface {
	Generate(ctx context.Context, req Request) (Report, error)
}

// ProviderClient is the slice of the AI provider the report domain needs.
type ProviderClient interface {
	GenerateContent(ctx context.Context, req gemini.GenerateContentRequest) (gemini.GenerateContentResponse, error)
}

type service struct {
	client ProviderClient
	logger *slog.Logger
}

// NewService wires up the report domain.
func NewService(client ProviderClient, logger *slog.Logger) Service {
	return &service{client: client, logger: logger.With("component", "report.service")}
}

// Generate builds the template for the selected feature module and wraps the
// provider text as a report. Unknown feature ids fall back to the generic
// template rather than failing.
func (s *service) Generate(ctx context.Context, req Request) (Report, error) {
	prompt := buildPrompt(req)

	resp, err := s.client.GenerateContent(ctx, gemini.GenerateContentRequest{
		Contents: []gemini.Content{
			{Parts: []gemini.Part{{Text: prompt}}},
		},
	})
	if err != nil {
		return Report{}, apperrors.Wrap(apperrors.CodeReportFailed, "report generation request failed", err)
	}

	content := resp.Text()
	if content == "" {
		return Report{}, apperrors.Wrap(apperrors.CodeReportFailed, "provider returned no report text", nil)
	}

	s.logger.Info("feature report generated", "featureId", req.FeatureID, "chars", len(content))
	return Report{
		Title:   i18n.Label(req.Language, "generated_insight"),
		Content: content,
	}, nil
}

func buildPrompt(req Request) string {
	base := fmt.Sprintf("You are generating a report for a farmer in %s language. Keep the language simple, concise, and actionable. Avoid jargon.", req.Language)

	plant := orDefault(req.Context.Plant, "crops")
	soil := orDefault(req.Context.Soil, "standard")

	switch req.FeatureID {
	case "1":
		return fmt.Sprintf("%s Generate a simple 3-day weather summary and farm work plan for %s. Focus on: 1. Will it rain? 2. Is it safe to spray pesticides? 3. Key tasks to do.", base, plant)
	case "2":
		return fmt.Sprintf("%s Create a simple watering guide for %s on %s soil. Tell the farmer exactly when to water (morning/evening) and how to check if the soil needs water.", base, plant, soil)
	case "3":
		return fmt.Sprintf("%s Analyze market trends for %s. Simply state if prices are going up or down. Give 3 tips on when to sell for the best profit.", base, orDefault(req.Context.Plant, "vegetables"))
	case "4":
		return fmt.Sprintf("%s Give a rough financial estimate for a 1-acre %s farm. List simple costs (Seeds, Fertilizer, Labor) and expected income. Keep numbers round and simple.", base, orDefault(req.Context.Plant, "crop"))
	case "5":
		return fmt.Sprintf("%s Explain 'Satellite Greenness Index' simply. Pretend you are looking at a satellite map of their farm. Tell them what 'Green' means (Healthy) and what 'Yellow' means (Needs water/fertilizer).", base)
	case "6":
		return fmt.Sprintf("%s List top 3 risks for farming %s right now (e.g., Drought, Pests, Prices). For each risk, give one simple way to protect the farm.", base, plant)
	case "7":
		return fmt.Sprintf("%s Suggest 3 simple ways to stop theft on the farm. Focus on low-cost ideas like lighting, fences, or community watch.", base)
	case "8":
		return fmt.Sprintf("%s Summarize a community discussion about %s. List the top 3 most helpful tips shared by other farmers recently.", base, orDefault(req.Context.Plant, "farming"))
	default:
		return base + " Generate a simple agricultural insight."
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
