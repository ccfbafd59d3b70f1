package region

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/agrivision/agrivision/internal/infra/llm/gemini"
	apperrors "github.com/agrivision/agrivision/pkg/errors"
)

// Service exposes the land-region analysis capability.
type Service interface {
	Analyze(ctx context.Context, req Request) (Analysis, error)
}

// ProviderClient is the slice of the AI provider the region domain needs.
type ProviderClient interface {
	GenerateContent(ctx context.Context, req gemini.GenerateContentRequest) (gemini.GenerateContentResponse, error)
}

type service struct {
	client ProviderClient
	logger *slog.Logger
}

// NewService wires up the region domain.
func NewService(client ProviderClient, logger *slog.Logger) Service {
	return &service{client: client, logger: logger.With("component", "region.service")}
}

var requiredFields = []string{"soilPotential", "climateSuitability", "waterSources", "overallRating"}

func regionSchema() *gemini.Schema {
	return &gemini.Schema{
		Type: gemini.TypeObject,
		Properties: map[string]*gemini.Schema{
			"soilPotential":      {Type: gemini.TypeString},
			"climateSuitability": {Type: gemini.TypeString},
			"waterSources":       {Type: gemini.TypeString},
			"overallRating":      {Type: gemini.TypeString, Enum: validRatings},
		},
		Required: requiredFields,
	}
}

// Analyze assesses the agricultural potential of a point or selected area.
// The service is geometry-agnostic: when an area footprint is supplied the
// caller computes hectares and centroid and merges them into the result.
func (s *service) Analyze(ctx context.Context, req Request) (Analysis, error) {
	resp, err := s.client.GenerateContent(ctx, gemini.GenerateContentRequest{
		Contents: []gemini.Content{
			{Parts: []gemini.Part{{Text: buildPrompt(req)}}},
		},
		GenerationConfig: &gemini.GenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   regionSchema(),
		},
	})
	if err != nil {
		return Analysis{}, apperrors.Wrap(apperrors.CodeRegionFailed, "region analysis request failed", err)
	}

	text := resp.Text()
	if text == "" {
		return Analysis{}, apperrors.Wrap(apperrors.CodeRegionFailed, "provider returned no region analysis", nil)
	}

	analysis, err := parseAnalysis(text)
	if err != nil {
		return Analysis{}, apperrors.Wrap(apperrors.CodeRegionFailed, "provider response does not conform to the region schema", err)
	}
	s.logger.Info("region analyzed", "lat", req.Lat, "lon", req.Lon, "rating", analysis.OverallRating)
	return analysis, nil
}

func buildPrompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the agricultural potential for the coordinates %v, %v in %s language.", req.Lat, req.Lon, req.Language)
	if len(req.Area) > 0 {
		b.WriteString(" This is a selected land area for detailed agricultural analysis.")
	}
	b.WriteString(" Provide detailed analysis on: 1. Soil potential and characteristics for this specific region 2. Climate suitability for various crops 3. Water sources and irrigation potential 4. Overall agricultural rating with specific recommendations.")
	return b.String()
}

func parseAnalysis(raw string) (Analysis, error) {
	sanitized := strings.TrimSpace(raw)
	sanitized = strings.TrimPrefix(sanitized, "```json")
	sanitized = strings.TrimSuffix(sanitized, "```")
	sanitized = strings.Trim(sanitized, "`")
	sanitized = strings.TrimSpace(strings.TrimPrefix(sanitized, "json"))

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(sanitized), &fields); err != nil {
		return Analysis{}, fmt.Errorf("decode region payload: %w", err)
	}
	for _, field := range requiredFields {
		value, ok := fields[field]
		if !ok || string(value) == "null" {
			return Analysis{}, fmt.Errorf("required field %q missing", field)
		}
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(sanitized), &analysis); err != nil {
		return Analysis{}, fmt.Errorf("decode region fields: %w", err)
	}
	if !isValidRating(analysis.OverallRating) {
		return Analysis{}, fmt.Errorf("overall rating %q outside the declared enum", analysis.OverallRating)
	}
	return analysis, nil
}

func isValidRating(rating string) bool {
	for _, v := range validRatings {
		if rating == v {
			return true
		}
	}
	return false
}
