package region

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agrivision/agrivision/internal/domain/i18n"
	"github.com/agrivision/agrivision/internal/infra/llm/gemini"
	apperrors "github.com/agrivision/agrivision/pkg/errors"
)

type stubProvider struct {
	response gemini.GenerateContentResponse
	err      error
	lastReq  gemini.GenerateContentRequest
}

func (s *stubProvider) GenerateContent(_ context.Context, req gemini.GenerateContentRequest) (gemini.GenerateContentResponse, error) {
	s.lastReq = req
	return s.response, s.err
}

func textResponse(text string) gemini.GenerateContentResponse {
	return gemini.GenerateContentResponse{
		Candidates: []gemini.Candidate{
			{Content: gemini.Content{Parts: []gemini.Part{{Text: text}}}},
		},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const validRegionJSON = `{
	"soilPotential": "Fertile alluvial soil",
	"climateSuitability": "Well suited for rice and wheat",
	"waterSources": "Canal irrigation available",
	"overallRating": "Good"
}`

func TestAnalyzeSuccess(t *testing.T) {
	stub := &stubProvider{response: textResponse(validRegionJSON)}
	svc := NewService(stub, testLogger())

	analysis, err := svc.Analyze(context.Background(), Request{Lat: 20.59, Lon: 78.96, Language: i18n.English})
	require.NoError(t, err)
	require.Equal(t, "Good", analysis.OverallRating)
	require.Equal(t, "Fertile alluvial soil", analysis.SoilPotential)

	require.NotNil(t, stub.lastReq.GenerationConfig)
	require.Equal(t, "application/json", stub.lastReq.GenerationConfig.ResponseMIMEType)
	require.Contains(t, stub.lastReq.Contents[0].Parts[0].Text, "20.59")
}

func TestAnalyzeAreaPromptMentionsSelection(t *testing.T) {
	stub := &stubProvider{response: textResponse(validRegionJSON)}
	svc := NewService(stub, testLogger())

	_, err := svc.Analyze(context.Background(), Request{
		Lat: 20, Lon: 78, Language: i18n.English,
		Area: []Coordinate{{Lat: 20, Lon: 78}, {Lat: 20.1, Lon: 78}, {Lat: 20.1, Lon: 78.1}},
	})
	require.NoError(t, err)
	require.Contains(t, stub.lastReq.Contents[0].Parts[0].Text, "selected land area")
}

func TestAnalyzeRejectsUnknownRating(t *testing.T) {
	stub := &stubProvider{response: textResponse(`{
		"soilPotential": "a",
		"climateSuitability": "b",
		"waterSources": "c",
		"overallRating": "Spectacular"
	}`)}
	svc := NewService(stub, testLogger())

	_, err := svc.Analyze(context.Background(), Request{Lat: 1, Lon: 1, Language: i18n.English})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeRegionFailed))
}

func TestAnalyzeMissingField(t *testing.T) {
	stub := &stubProvider{response: textResponse(`{
		"soilPotential": "a",
		"climateSuitability": "b",
		"overallRating": "Good"
	}`)}
	svc := NewService(stub, testLogger())

	_, err := svc.Analyze(context.Background(), Request{Lat: 1, Lon: 1, Language: i18n.English})
	require.Error(t, err)
	require.Contains(t, err.Error(), "waterSources")
}

func TestAnalyzeProviderFailure(t *testing.T) {
	stub := &stubProvider{err: context.DeadlineExceeded}
	svc := NewService(stub, testLogger())

	_, err := svc.Analyze(context.Background(), Request{Lat: 1, Lon: 1, Language: i18n.English})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeRegionFailed))
}
