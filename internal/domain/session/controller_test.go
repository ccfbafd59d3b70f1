package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agrivision/agrivision/internal/domain/advisorchat"
	"github.com/agrivision/agrivision/internal/domain/diagnosis"
	"github.com/agrivision/agrivision/internal/domain/region"
	"github.com/agrivision/agrivision/internal/domain/report"
	"github.com/agrivision/agrivision/internal/domain/weather"
	apperrors "github.com/agrivision/agrivision/pkg/errors"
)

type stubImageStore struct {
	puts    map[string][]byte
	deletes []string
}

func newStubImageStore() *stubImageStore {
	return &stubImageStore{puts: make(map[string][]byte)}
}

func (s *stubImageStore) Put(_ context.Context, key string, data []byte, _ string) error {
	s.puts[key] = data
	return nil
}

func (s *stubImageStore) Get(_ context.Context, key string) ([]byte, string, error) {
	data, ok := s.puts[key]
	if !ok {
		return nil, "", apperrors.Wrap(apperrors.CodeInvalidInput, "not found", nil)
	}
	return data, "image/jpeg", nil
}

func (s *stubImageStore) Delete(_ context.Context, key string) error {
	s.deletes = append(s.deletes, key)
	delete(s.puts, key)
	return nil
}

type stubDiagnosis struct {
	analysis diagnosis.Analysis
	err      error
	onCall   func()
}

func (s *stubDiagnosis) Analyze(_ context.Context, _ diagnosis.Request) (diagnosis.Analysis, error) {
	if s.onCall != nil {
		s.onCall()
	}
	return s.analysis, s.err
}

type stubChat struct {
	reply       string
	lastHistory []advisorchat.Message
	lastText    string
}

func (s *stubChat) Reply(_ context.Context, req advisorchat.Request) string {
	s.lastHistory = req.History
	s.lastText = req.Text
	return s.reply
}

type stubReports struct {
	report  report.Report
	err     error
	lastReq report.Request
}

func (s *stubReports) Generate(_ context.Context, req report.Request) (report.Report, error) {
	s.lastReq = req
	return s.report, s.err
}

type stubRegions struct {
	analysis region.Analysis
	err      error
	lastReq  region.Request
}

func (s *stubRegions) Analyze(_ context.Context, req region.Request) (region.Analysis, error) {
	s.lastReq = req
	return s.analysis, s.err
}

type stubWeather struct {
	snapshots map[string]weather.Snapshot
	failures  map[string]bool
}

func weatherKey(lat, lon float64) string {
	return fmt.Sprintf("%.4f/%.4f", lat, lon)
}

func (s *stubWeather) Snapshot(_ context.Context, lat, lon float64) (weather.Snapshot, error) {
	key := weatherKey(lat, lon)
	if s.failures[key] {
		return weather.Snapshot{}, apperrors.Wrap(apperrors.CodeWeatherUnavailable, "down", nil)
	}
	return s.snapshots[key], nil
}

func (s *stubWeather) DefaultCoordinate() (float64, float64) {
	return 20.5937, 78.9629
}

type controllerFixture struct {
	controller *Controller
	images     *stubImageStore
	diagnose   *stubDiagnosis
	chat       *stubChat
	reports    *stubReports
	regions    *stubRegions
	weather    *stubWeather
}

func newFixture() *controllerFixture {
	f := &controllerFixture{
		images:   newStubImageStore(),
		diagnose: &stubDiagnosis{},
		chat:     &stubChat{reply: "ok"},
		reports:  &stubReports{},
		regions:  &stubRegions{},
		weather:  &stubWeather{snapshots: map[string]weather.Snapshot{}, failures: map[string]bool{}},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := Config{IdleTTL: 30 * time.Minute, DefaultLat: 20.5937, DefaultLon: 78.9629}
	f.controller = NewController(cfg, NewManager(cfg.IdleTTL), f.images, f.diagnose, f.chat, f.reports, f.regions, f.weather, logger)
	return f
}

func (f *controllerFixture) newSession(t *testing.T) string {
	t.Helper()
	snap, err := f.controller.Create("en")
	require.NoError(t, err)
	return snap.ID
}

const testImage = "data:image/png;base64,aGVsbG8="

func TestControllerCreate(t *testing.T) {
	f := newFixture()
	snap, err := f.controller.Create("hi")
	require.NoError(t, err)
	require.NotEmpty(t, snap.ID)
	require.Equal(t, "hi", string(snap.Language))
	require.Equal(t, PageDashboard, snap.Page)
	require.Len(t, snap.Messages, 1)

	_, err = f.controller.Create("xx")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestControllerSetLanguageResetsChat(t *testing.T) {
	f := newFixture()
	id := f.newSession(t)

	_, err := f.controller.Chat(context.Background(), id, "hello")
	require.NoError(t, err)

	snap, err := f.controller.SetLanguage(id, "pa")
	require.NoError(t, err)
	require.Equal(t, "pa", string(snap.Language))
	require.Len(t, snap.Messages, 1)
	require.Contains(t, snap.Messages[0].Text, "ਸਤ ਸ੍ਰੀ ਅਕਾਲ")
}

func TestControllerSetPage(t *testing.T) {
	f := newFixture()
	id := f.newSession(t)

	snap, err := f.controller.SetPage(id, PageMarket)
	require.NoError(t, err)
	require.Equal(t, PageMarket, snap.Page)

	_, err = f.controller.SetPage(id, "settings")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestControllerAnalyzeImageSuccess(t *testing.T) {
	f := newFixture()
	f.diagnose.analysis = diagnosis.Analysis{PlantName: "Tomato", IsHealthy: true}
	id := f.newSession(t)

	snap, err := f.controller.AnalyzeImage(context.Background(), id, testImage, "image/png")
	require.NoError(t, err)
	require.Equal(t, AnalysisAnalyzed, snap.AnalysisPhase)
	require.NotNil(t, snap.Analysis)
	require.Equal(t, "Tomato", snap.Analysis.PlantName)
	require.Empty(t, snap.AnalysisError)

	// Raw bytes were persisted under the new key.
	require.Len(t, f.images.puts, 1)
	for _, data := range f.images.puts {
		require.Equal(t, []byte("hello"), data)
	}
}

func TestControllerAnalyzeImageFailure(t *testing.T) {
	f := newFixture()
	f.diagnose.err = apperrors.Wrap(apperrors.CodeAnalysisFailed, "boom", nil)
	id := f.newSession(t)

	snap, err := f.controller.AnalyzeImage(context.Background(), id, testImage, "image/png")
	require.NoError(t, err)
	require.Equal(t, AnalysisFailed, snap.AnalysisPhase)
	require.Nil(t, snap.Analysis)
	require.Equal(t, "Failed to analyze image. Please try again.", snap.AnalysisError)
}

func TestControllerAnalyzeImageInvalidBase64(t *testing.T) {
	f := newFixture()
	id := f.newSession(t)

	_, err := f.controller.AnalyzeImage(context.Background(), id, "!!not-base64!!", "image/png")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestControllerAnalyzeImageSupersededResultDiscarded(t *testing.T) {
	f := newFixture()
	id := f.newSession(t)

	f.diagnose.analysis = diagnosis.Analysis{PlantName: "Stale"}
	f.diagnose.onCall = func() {
		// A clear lands while the analysis is in flight.
		f.diagnose.onCall = nil
		_, err := f.controller.ClearImage(context.Background(), id)
		require.NoError(t, err)
	}

	snap, err := f.controller.AnalyzeImage(context.Background(), id, testImage, "image/png")
	require.NoError(t, err)
	require.Equal(t, AnalysisIdle, snap.AnalysisPhase)
	require.Nil(t, snap.Analysis)
}

func TestControllerImage(t *testing.T) {
	f := newFixture()
	f.diagnose.analysis = diagnosis.Analysis{PlantName: "Tomato", IsHealthy: true}
	id := f.newSession(t)

	_, _, err := f.controller.Image(context.Background(), id)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = f.controller.AnalyzeImage(context.Background(), id, testImage, "image/png")
	require.NoError(t, err)

	data, mimeType, err := f.controller.Image(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), data)
	require.Equal(t, "image/jpeg", mimeType)
}

func TestControllerClearImage(t *testing.T) {
	f := newFixture()
	f.diagnose.analysis = diagnosis.Analysis{PlantName: "Tomato", IsHealthy: true}
	id := f.newSession(t)

	_, err := f.controller.AnalyzeImage(context.Background(), id, testImage, "image/png")
	require.NoError(t, err)

	snap, err := f.controller.ClearImage(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, AnalysisIdle, snap.AnalysisPhase)
	require.Nil(t, snap.Analysis)
	require.Empty(t, snap.AnalysisError)
	require.Empty(t, snap.ImageKey)
	require.Len(t, f.images.deletes, 1)
	require.Empty(t, f.images.puts)
}

func TestControllerChatOrdering(t *testing.T) {
	f := newFixture()
	f.chat.reply = "Use neem oil."
	id := f.newSession(t)

	snap, err := f.controller.Chat(context.Background(), id, "What should I spray?")
	require.NoError(t, err)
	require.Len(t, snap.Messages, 3)
	require.Equal(t, advisorchat.RoleModel, snap.Messages[0].Role)
	require.Equal(t, advisorchat.RoleUser, snap.Messages[1].Role)
	require.Equal(t, "What should I spray?", snap.Messages[1].Text)
	require.Equal(t, advisorchat.RoleModel, snap.Messages[2].Role)
	require.Equal(t, "Use neem oil.", snap.Messages[2].Text)

	// The history handed to the advisor excludes the new message.
	require.Len(t, f.chat.lastHistory, 1)
	require.Equal(t, "What should I spray?", f.chat.lastText)
}

func TestControllerChatBlankMessage(t *testing.T) {
	f := newFixture()
	id := f.newSession(t)

	_, err := f.controller.Chat(context.Background(), id, "   ")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestControllerGenerateReportSuccess(t *testing.T) {
	f := newFixture()
	f.diagnose.analysis = diagnosis.Analysis{PlantName: "Tomato", IsHealthy: true, SoilTypeRecommendation: "Loamy"}
	f.reports.report = report.Report{Title: "Generated Insight", Content: "Water in the morning."}
	id := f.newSession(t)

	_, err := f.controller.AnalyzeImage(context.Background(), id, testImage, "image/png")
	require.NoError(t, err)

	snap, err := f.controller.GenerateReport(context.Background(), id, "2")
	require.NoError(t, err)
	require.Equal(t, ModalReady, snap.ReportPhase)
	require.Equal(t, "2", snap.SelectedFeature)
	require.NotNil(t, snap.Report)
	require.Equal(t, "Water in the morning.", snap.Report.Content)

	// Diagnosis facts flow into the report context.
	require.Equal(t, "Tomato", f.reports.lastReq.Context.Plant)
	require.Equal(t, "Loamy", f.reports.lastReq.Context.Soil)
}

func TestControllerGenerateReportFailure(t *testing.T) {
	f := newFixture()
	f.reports.err = apperrors.Wrap(apperrors.CodeReportFailed, "boom", nil)
	id := f.newSession(t)

	snap, err := f.controller.GenerateReport(context.Background(), id, "1")
	require.NoError(t, err)
	require.Equal(t, ModalFailed, snap.ReportPhase)
	require.Nil(t, snap.Report)
	require.Equal(t, "Unable to generate report at this time. Please try again.", snap.ReportError)
}

func TestControllerCloseReport(t *testing.T) {
	f := newFixture()
	f.reports.report = report.Report{Content: "ok"}
	id := f.newSession(t)

	_, err := f.controller.GenerateReport(context.Background(), id, "1")
	require.NoError(t, err)

	snap, err := f.controller.CloseReport(id)
	require.NoError(t, err)
	require.Equal(t, ModalClosed, snap.ReportPhase)
	require.Empty(t, snap.SelectedFeature)
	require.Nil(t, snap.Report)
}

func TestControllerExportReport(t *testing.T) {
	f := newFixture()
	f.reports.report = report.Report{Title: "Generated Insight", Content: "Water early."}
	id := f.newSession(t)

	// Nothing ready yet.
	_, err := f.controller.ExportReport(id, "json")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = f.controller.GenerateReport(context.Background(), id, "2")
	require.NoError(t, err)

	exported, err := f.controller.ExportReport(id, "json")
	require.NoError(t, err)
	require.Equal(t, "AgriVision_feat_water.json", exported.Filename)
	require.Equal(t, "application/json", exported.ContentType)
	require.Contains(t, string(exported.Data), "Water early.")

	doc, err := f.controller.ExportReport(id, "document")
	require.NoError(t, err)
	require.Equal(t, "AgriVision_2.txt", doc.Filename)
	require.Contains(t, string(doc.Data), report.Brand)

	_, err = f.controller.ExportReport(id, "pdf")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestControllerAnalyzeRegionWithArea(t *testing.T) {
	f := newFixture()
	f.regions.analysis = region.Analysis{
		SoilPotential:      "Fertile",
		ClimateSuitability: "Good",
		WaterSources:       "Canal",
		OverallRating:      "Good",
	}
	id := f.newSession(t)

	lat, lon := 20.0, 78.0
	area := []region.Coordinate{
		{Lat: 20, Lon: 78},
		{Lat: 20, Lon: 78.01},
		{Lat: 20.01, Lon: 78.01},
		{Lat: 20.01, Lon: 78},
	}
	snap, err := f.controller.AnalyzeRegion(context.Background(), id, RegionRequest{Lat: &lat, Lon: &lon, Area: area})
	require.NoError(t, err)
	require.Equal(t, RegionReady, snap.RegionPhase)
	require.NotNil(t, snap.Region)
	require.NotEmpty(t, snap.Region.AreaSize)
	require.Contains(t, snap.Region.AreaSize, "hectares")
	require.Equal(t, "20.0050, 78.0050", snap.Region.Coordinates)
}

func TestControllerAnalyzeRegionDeniedUsesDefault(t *testing.T) {
	f := newFixture()
	f.regions.analysis = region.Analysis{OverallRating: "Average"}
	id := f.newSession(t)

	snap, err := f.controller.AnalyzeRegion(context.Background(), id, RegionRequest{Denied: true})
	require.NoError(t, err)
	require.Equal(t, RegionReady, snap.RegionPhase)
	require.Equal(t, 20.5937, f.regions.lastReq.Lat)
	require.Equal(t, 78.9629, f.regions.lastReq.Lon)
}

func TestControllerAnalyzeRegionFailure(t *testing.T) {
	f := newFixture()
	f.regions.err = apperrors.Wrap(apperrors.CodeRegionFailed, "boom", nil)
	id := f.newSession(t)

	lat, lon := 10.0, 10.0
	snap, err := f.controller.AnalyzeRegion(context.Background(), id, RegionRequest{Lat: &lat, Lon: &lon})
	require.NoError(t, err)
	require.Equal(t, RegionFailed, snap.RegionPhase)
	require.NotEmpty(t, snap.RegionError)
}

func TestControllerAnalyzeRegionRejectsBadCoordinates(t *testing.T) {
	f := newFixture()
	id := f.newSession(t)

	lat, lon := 120.0, 78.0
	_, err := f.controller.AnalyzeRegion(context.Background(), id, RegionRequest{Lat: &lat, Lon: &lon})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = f.controller.AnalyzeRegion(context.Background(), id, RegionRequest{Lat: &lat})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestControllerWeatherFallsBackToDefault(t *testing.T) {
	f := newFixture()
	f.weather.failures[weatherKey(10, 10)] = true
	f.weather.snapshots[weatherKey(20.5937, 78.9629)] = weather.Snapshot{Temperature: 28}

	lat, lon := 10.0, 10.0
	snap, err := f.controller.WeatherSnapshot(context.Background(), &lat, &lon, false)
	require.NoError(t, err)
	require.Equal(t, 28.0, snap.Temperature)
}

func TestControllerWeatherDenied(t *testing.T) {
	f := newFixture()
	f.weather.snapshots[weatherKey(20.5937, 78.9629)] = weather.Snapshot{Temperature: 31}

	snap, err := f.controller.WeatherSnapshot(context.Background(), nil, nil, true)
	require.NoError(t, err)
	require.Equal(t, 31.0, snap.Temperature)
}

func TestControllerWeatherBothFail(t *testing.T) {
	f := newFixture()
	f.weather.failures[weatherKey(10, 10)] = true
	f.weather.failures[weatherKey(20.5937, 78.9629)] = true

	lat, lon := 10.0, 10.0
	_, err := f.controller.WeatherSnapshot(context.Background(), &lat, &lon, false)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeWeatherUnavailable))
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	f := newFixture()
	f.diagnose.analysis = diagnosis.Analysis{PlantName: "Tomato", IsHealthy: true}
	id := f.newSession(t)

	snap, err := f.controller.AnalyzeImage(context.Background(), id, testImage, "image/png")
	require.NoError(t, err)

	snap.Analysis.PlantName = "tampered"
	snap.Messages[0].Text = "tampered"

	fresh, err := f.controller.Get(id)
	require.NoError(t, err)
	require.Equal(t, "Tomato", fresh.Analysis.PlantName)
	require.NotEqual(t, "tampered", fresh.Messages[0].Text)
}
