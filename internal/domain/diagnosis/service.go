package diagnosis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/agrivision/agrivision/internal/domain/i18n"
	"github.com/agrivision/agrivision/internal/infra/llm/gemini"
	apperrors "github.com/agrivision/agrivision/pkg/errors"
)

// Service exposes the plant image analysis capability.
type Service interface {
	Analyze(ctx context.Context, req Request) (Analysis, error)
}

// ProviderClient is the slice of the AI provider the diagnosis domain needs.
type ProviderClient interface {
	GenerateContent(ctx context.Context, req gemini.GenerateContentRequest) (gemini.GenerateContentResponse, error)
}

type service struct {
	cfg    Config
	client ProviderClient
	logger *slog.Logger
}

// NewService wires up the diagnosis domain.
func NewService(cfg Config, client ProviderClient, logger *slog.Logger) Service {
	return &service{cfg: cfg, client: client, logger: logger.With("component", "diagnosis.service")}
}

var dataURIPrefix = regexp.MustCompile(`^data:image/(png|jpeg|jpg|webp);base64,`)

func (s *service) Analyze(ctx context.Context, req Request) (Analysis, error) {
	imageData := dataURIPrefix.ReplaceAllString(strings.TrimSpace(req.ImageData), "")
	if imageData == "" {
		return Analysis{}, apperrors.Wrap(apperrors.CodeInvalidInput, "image data cannot be empty", nil)
	}
	mimeType := strings.TrimSpace(req.MIMEType)
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	resp, err := s.client.GenerateContent(ctx, gemini.GenerateContentRequest{
		Contents: []gemini.Content{
			{
				Parts: []gemini.Part{
					{InlineData: &gemini.Blob{MIMEType: mimeType, Data: imageData}},
					{Text: s.buildPrompt(req.Language)},
				},
			},
		},
		GenerationConfig: &gemini.GenerationConfig{
			Temperature:      s.cfg.Temperature,
			ResponseMIMEType: "application/json",
			ResponseSchema:   analysisSchema(),
		},
	})
	if err != nil {
		return Analysis{}, apperrors.Wrap(apperrors.CodeAnalysisFailed, "image analysis request failed", err)
	}

	text := resp.Text()
	if text == "" {
		return Analysis{}, apperrors.Wrap(apperrors.CodeAnalysisFailed, "provider returned no analysis text", nil)
	}

	analysis, err := parseAnalysis(text)
	if err != nil {
		return Analysis{}, apperrors.Wrap(apperrors.CodeAnalysisFailed, "provider response does not conform to the analysis schema", err)
	}
	s.logger.Info("image analyzed", "plant", analysis.PlantName, "healthy", analysis.IsHealthy, "severity", analysis.Severity)
	return analysis, nil
}

func (s *service) buildPrompt(lang i18n.Language) string {
	code := string(lang)
	return fmt.Sprintf(
		"Analyze this agricultural image in %s language. 1. Identify the plant in %s. 2. Detect diseases and specific pests (list names) in %s. 3. Treatments in %s. 4. Soil analysis in %s.",
		code, code, code, code, code)
}

// parseAnalysis enforces the declared schema on the provider response: every
// required field must be present, then numeric fields are clamped to their
// documented ranges.
func parseAnalysis(raw string) (Analysis, error) {
	sanitized := stripCodeFence(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(sanitized), &fields); err != nil {
		return Analysis{}, fmt.Errorf("decode analysis payload: %w", err)
	}
	for _, field := range requiredFields {
		value, ok := fields[field]
		if !ok || string(value) == "null" {
			return Analysis{}, fmt.Errorf("required field %q missing", field)
		}
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(sanitized), &analysis); err != nil {
		return Analysis{}, fmt.Errorf("decode analysis fields: %w", err)
	}
	if len(analysis.Treatments) == 0 && !analysis.IsHealthy {
		return Analysis{}, fmt.Errorf("unhealthy diagnosis carries no treatments")
	}

	analysis.Confidence = clamp(analysis.Confidence, 0, 1)
	analysis.Severity = clamp(analysis.Severity, 0, 100)
	return analysis, nil
}

func stripCodeFence(raw string) string {
	sanitized := strings.TrimSpace(raw)
	sanitized = strings.TrimPrefix(sanitized, "```json")
	sanitized = strings.TrimSuffix(sanitized, "```")
	sanitized = strings.Trim(sanitized, "`")
	return strings.TrimSpace(strings.TrimPrefix(sanitized, "json"))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
