package session

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agrivision/agrivision/internal/domain/advisorchat"
	"github.com/agrivision/agrivision/internal/domain/diagnosis"
	"github.com/agrivision/agrivision/internal/domain/i18n"
	"github.com/agrivision/agrivision/internal/domain/region"
	"github.com/agrivision/agrivision/internal/domain/report"
	"github.com/agrivision/agrivision/internal/domain/weather"
	apperrors "github.com/agrivision/agrivision/pkg/errors"
	"github.com/agrivision/agrivision/pkg/util"
)

// Placeholder shown inside the report modal when generation fails; the retry
// affordance is the user clicking the feature again.
const reportUnavailable = "Unable to generate report at this time. Please try again."

// Shown inline in place of analysis results when diagnosis fails.
const analysisUnavailable = "Failed to analyze image. Please try again."

// Controller sequences calls to the AI and weather clients and owns every
// write to session state. Each operation owns its own slice of state and
// writes it back atomically; a superseded operation's completion is discarded
// by sequence number rather than cancelled.
type Controller struct {
	cfg      Config
	sessions *Manager
	images   ImageStore
	diagnose diagnosis.Service
	chat     ChatService
	reports  ReportService
	regions  RegionService
	weather  weather.Service
	logger   *slog.Logger
	now      func() time.Time
}

// ChatService produces one advisory reply.
type ChatService interface {
	Reply(ctx context.Context, req advisorchat.Request) string
}

// ReportService generates one feature report.
type ReportService interface {
	Generate(ctx context.Context, req report.Request) (report.Report, error)
}

// RegionService assesses one coordinate or area.
type RegionService interface {
	Analyze(ctx context.Context, req region.Request) (region.Analysis, error)
}

// NewController wires up the application state controller.
func NewController(cfg Config, sessions *Manager, images ImageStore, diagnose diagnosis.Service, chat ChatService, reports ReportService, regions RegionService, weatherSvc weather.Service, logger *slog.Logger) *Controller {
	return &Controller{
		cfg:      cfg,
		sessions: sessions,
		images:   images,
		diagnose: diagnose,
		chat:     chat,
		reports:  reports,
		regions:  regions,
		weather:  weatherSvc,
		logger:   logger.With("component", "session.controller"),
		now:      util.NowUTC,
	}
}

// Create opens a session for the requested language.
func (c *Controller) Create(langCode string) (Snapshot, error) {
	lang, err := i18n.Parse(langCode)
	if err != nil {
		return Snapshot{}, err
	}
	sess := c.sessions.Create(lang)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshotLocked(), nil
}

// Get returns the current immutable view of a session.
func (c *Controller) Get(id string) (Snapshot, error) {
	sess, err := c.sessions.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshotLocked(), nil
}

// SetLanguage switches the session language. The chat thread restarts with
// the new language's greeting, matching the source behavior.
func (c *Controller) SetLanguage(id, langCode string) (Snapshot, error) {
	lang, err := i18n.Parse(langCode)
	if err != nil {
		return Snapshot{}, err
	}
	sess, err := c.sessions.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.language = lang
	sess.messages = []advisorchat.Message{{
		ID:        uuid.NewString(),
		Role:      advisorchat.RoleModel,
		Text:      i18n.Greeting(lang),
		Timestamp: c.now(),
	}}
	return sess.snapshotLocked(), nil
}

// SetPage switches the visible page.
func (c *Controller) SetPage(id, page string) (Snapshot, error) {
	switch page {
	case PageDashboard, PageMarket, PageCommunity:
	default:
		return Snapshot{}, apperrors.Wrap(apperrors.CodeInvalidInput, "unknown page: "+page, nil)
	}
	sess, err := c.sessions.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.page = page
	return sess.snapshotLocked(), nil
}

// AnalyzeImage runs the image diagnosis state machine. A new upload
// supersedes any in-flight analysis: the stale completion is discarded when
// its sequence number no longer matches.
func (c *Controller) AnalyzeImage(ctx context.Context, id, imageData, mimeType string) (Snapshot, error) {
	raw, cleanData, err := decodeImage(imageData)
	if err != nil {
		return Snapshot{}, err
	}
	sess, err := c.sessions.Get(id)
	if err != nil {
		return Snapshot{}, err
	}

	sess.mu.Lock()
	sess.analysisSeq++
	seq := sess.analysisSeq
	sess.analysisPhase = AnalysisAnalyzing
	sess.analysis = nil
	sess.analysisErr = ""
	oldKey := sess.imageKey
	key := fmt.Sprintf("%s/%s", sess.id, uuid.NewString())
	sess.imageKey = key
	lang := sess.language
	sess.mu.Unlock()

	if oldKey != "" {
		if delErr := c.images.Delete(ctx, oldKey); delErr != nil {
			c.logger.Warn("stale image delete failed", "key", oldKey, "error", delErr)
		}
	}
	if putErr := c.images.Put(ctx, key, raw, mimeType); putErr != nil {
		c.logger.Warn("image store write failed", "key", key, "error", putErr)
	}

	result, analyzeErr := c.diagnose.Analyze(ctx, diagnosis.Request{
		ImageData: cleanData,
		MIMEType:  mimeType,
		Language:  lang,
	})

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.analysisSeq != seq {
		// A newer upload superseded this one; drop the stale result.
		c.logger.Info("stale analysis discarded", "session", id, "seq", seq)
		return sess.snapshotLocked(), nil
	}
	if analyzeErr != nil {
		sess.analysisPhase = AnalysisFailed
		sess.analysisErr = analysisUnavailable
		c.logger.Warn("image analysis failed", "session", id, "error", analyzeErr)
	} else {
		sess.analysisPhase = AnalysisAnalyzed
		sess.analysis = &result
	}
	return sess.snapshotLocked(), nil
}

// Image returns the stored upload for the session.
func (c *Controller) Image(ctx context.Context, id string) ([]byte, string, error) {
	sess, err := c.sessions.Get(id)
	if err != nil {
		return nil, "", err
	}
	sess.mu.Lock()
	key := sess.imageKey
	sess.mu.Unlock()
	if key == "" {
		return nil, "", apperrors.Wrap(apperrors.CodeInvalidInput, "no image uploaded", nil)
	}
	data, mimeType, err := c.images.Get(ctx, key)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.CodeInvalidInput, "uploaded image unavailable", err)
	}
	return data, mimeType, nil
}

// ClearImage resets image, analysis, and error state to their initial empty
// values in one transition.
func (c *Controller) ClearImage(ctx context.Context, id string) (Snapshot, error) {
	sess, err := c.sessions.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	sess.mu.Lock()
	sess.analysisSeq++ // invalidates any in-flight analysis
	oldKey := sess.imageKey
	sess.imageKey = ""
	sess.analysis = nil
	sess.analysisErr = ""
	sess.analysisPhase = AnalysisIdle
	snap := sess.snapshotLocked()
	sess.mu.Unlock()

	if oldKey != "" {
		if delErr := c.images.Delete(ctx, oldKey); delErr != nil {
			c.logger.Warn("image delete failed", "key", oldKey, "error", delErr)
		}
	}
	return snap, nil
}

// Chat appends the user message, asks the advisor, and appends the reply.
// The chat sub-state never blocks image analysis and never surfaces provider
// errors; the advisor service degrades to a fixed offline reply.
func (c *Controller) Chat(ctx context.Context, id, text string) (Snapshot, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Snapshot{}, apperrors.Wrap(apperrors.CodeInvalidInput, "message text cannot be empty", nil)
	}
	sess, err := c.sessions.Get(id)
	if err != nil {
		return Snapshot{}, err
	}

	sess.mu.Lock()
	history := make([]advisorchat.Message, len(sess.messages))
	copy(history, sess.messages)
	sess.messages = append(sess.messages, advisorchat.Message{
		ID:        uuid.NewString(),
		Role:      advisorchat.RoleUser,
		Text:      text,
		Timestamp: c.now(),
	})
	lang := sess.language
	analysis := sess.analysis
	sess.mu.Unlock()

	reply := c.chat.Reply(ctx, advisorchat.Request{
		History:  history,
		Text:     text,
		Language: lang,
		Context:  analysis,
	})

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.messages = append(sess.messages, advisorchat.Message{
		ID:        uuid.NewString(),
		Role:      advisorchat.RoleModel,
		Text:      reply,
		Timestamp: c.now(),
	})
	return sess.snapshotLocked(), nil
}

// GenerateReport runs the feature-report modal state machine. Failures stay
// inside the modal as placeholder text; retry is the user re-clicking.
func (c *Controller) GenerateReport(ctx context.Context, id, featureID string) (Snapshot, error) {
	feature, ok := report.FeatureByID(featureID)
	if !ok {
		// Unknown ids still generate via the generic template.
		feature = report.Feature{ID: featureID, Name: "generated_insight"}
	}
	sess, err := c.sessions.Get(id)
	if err != nil {
		return Snapshot{}, err
	}

	sess.mu.Lock()
	sess.reportSeq++
	seq := sess.reportSeq
	sess.selectedFeature = feature.ID
	sess.reportPhase = ModalLoading
	sess.report = nil
	sess.reportErr = ""
	lang := sess.language
	reqCtx := report.Context{Location: "Current Location"}
	if sess.analysis != nil {
		reqCtx.Plant = sess.analysis.PlantName
		reqCtx.Soil = sess.analysis.SoilTypeRecommendation
	}
	sess.mu.Unlock()

	rep, genErr := c.reports.Generate(ctx, report.Request{
		FeatureID: feature.ID,
		Context:   reqCtx,
		Language:  lang,
	})

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.reportSeq != seq {
		return sess.snapshotLocked(), nil
	}
	if genErr != nil {
		sess.reportPhase = ModalFailed
		sess.reportErr = reportUnavailable
		c.logger.Warn("feature report failed", "session", id, "featureId", feature.ID, "error", genErr)
	} else {
		sess.reportPhase = ModalReady
		sess.report = &rep
	}
	return sess.snapshotLocked(), nil
}

// CloseReport dismisses the modal.
func (c *Controller) CloseReport(id string) (Snapshot, error) {
	sess, err := c.sessions.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.reportSeq++ // invalidates any in-flight generation
	sess.selectedFeature = ""
	sess.reportPhase = ModalClosed
	sess.report = nil
	sess.reportErr = ""
	return sess.snapshotLocked(), nil
}

// ExportedReport is a rendered export plus transport metadata.
type ExportedReport struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportReport serializes the current ready report.
func (c *Controller) ExportReport(id, format string) (ExportedReport, error) {
	sess, err := c.sessions.Get(id)
	if err != nil {
		return ExportedReport{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.reportPhase != ModalReady || sess.report == nil {
		return ExportedReport{}, apperrors.Wrap(apperrors.CodeInvalidInput, "no report is ready to export", nil)
	}

	feature, _ := report.FeatureByID(sess.selectedFeature)
	now := c.now()
	switch format {
	case "json":
		data, exportErr := report.ExportJSON(*sess.report, now)
		if exportErr != nil {
			return ExportedReport{}, apperrors.Wrap(apperrors.CodeReportFailed, "report export failed", exportErr)
		}
		return ExportedReport{
			Filename:    fmt.Sprintf("AgriVision_%s.json", strings.ReplaceAll(feature.Name, " ", "_")),
			ContentType: "application/json",
			Data:        data,
		}, nil
	case "document":
		return ExportedReport{
			Filename:    fmt.Sprintf("AgriVision_%s.txt", sess.selectedFeature),
			ContentType: "text/plain; charset=utf-8",
			Data:        report.ExportDocument(*sess.report, sess.selectedFeature, now),
		}, nil
	default:
		return ExportedReport{}, apperrors.Wrap(apperrors.CodeInvalidInput, "unknown export format: "+format, nil)
	}
}

// RegionRequest carries the user intent for a land assessment. Denied marks
// a refused or unsupported geolocation request; the default coordinate is
// used in that case.
type RegionRequest struct {
	Lat    *float64
	Lon    *float64
	Area   []region.Coordinate
	Denied bool
}

// AnalyzeRegion runs the region sub-state machine. When an area footprint is
// supplied, hectares and centroid are computed here and merged into the
// result; the region service itself stays geometry-agnostic.
func (c *Controller) AnalyzeRegion(ctx context.Context, id string, req RegionRequest) (Snapshot, error) {
	lat, lon, err := c.resolveCoordinate(req)
	if err != nil {
		return Snapshot{}, err
	}
	sess, err := c.sessions.Get(id)
	if err != nil {
		return Snapshot{}, err
	}

	sess.mu.Lock()
	sess.regionSeq++
	seq := sess.regionSeq
	sess.regionPhase = RegionLoading
	sess.region = nil
	sess.regionErr = ""
	lang := sess.language
	sess.mu.Unlock()

	result, analyzeErr := c.regions.Analyze(ctx, region.Request{
		Lat:      lat,
		Lon:      lon,
		Language: lang,
		Area:     req.Area,
	})

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.regionSeq != seq {
		return sess.snapshotLocked(), nil
	}
	if analyzeErr != nil {
		sess.regionPhase = RegionFailed
		sess.regionErr = "Region analysis unavailable. Please try again."
		c.logger.Warn("region analysis failed", "session", id, "error", analyzeErr)
	} else {
		if len(req.Area) >= 3 {
			result.AreaSize = fmt.Sprintf("%.2f hectares", region.AreaHectares(req.Area))
			centroid := region.Centroid(req.Area)
			result.Coordinates = fmt.Sprintf("%.4f, %.4f", centroid.Lat, centroid.Lon)
		}
		sess.regionPhase = RegionReady
		sess.region = &result
	}
	return sess.snapshotLocked(), nil
}

// WeatherSnapshot serves current conditions. Errors with the user coordinate
// fall back silently to the default coordinate; only a failure there too is
// surfaced.
func (c *Controller) WeatherSnapshot(ctx context.Context, lat, lon *float64, denied bool) (weather.Snapshot, error) {
	defLat, defLon := c.weather.DefaultCoordinate()
	if denied || lat == nil || lon == nil {
		return c.weather.Snapshot(ctx, defLat, defLon)
	}
	snap, err := c.weather.Snapshot(ctx, *lat, *lon)
	if err == nil {
		return snap, nil
	}
	c.logger.Warn("weather fetch failed, falling back to default coordinate", "lat", *lat, "lon", *lon, "error", err)
	return c.weather.Snapshot(ctx, defLat, defLon)
}

func (c *Controller) resolveCoordinate(req RegionRequest) (float64, float64, error) {
	if req.Denied || req.Lat == nil || req.Lon == nil {
		if !req.Denied && (req.Lat != nil || req.Lon != nil) {
			return 0, 0, apperrors.Wrap(apperrors.CodeInvalidInput, "latitude and longitude must both be set", nil)
		}
		return c.cfg.DefaultLat, c.cfg.DefaultLon, nil
	}
	if *req.Lat < -90 || *req.Lat > 90 || *req.Lon < -180 || *req.Lon > 180 {
		return 0, 0, apperrors.Wrap(apperrors.CodeInvalidInput, "coordinate out of range", nil)
	}
	return *req.Lat, *req.Lon, nil
}

// decodeImage strips an optional data-URI prefix and base64-decodes the
// payload, returning both raw bytes (for storage) and the clean base64 text
// (for the provider call).
func decodeImage(imageData string) ([]byte, string, error) {
	clean := strings.TrimSpace(imageData)
	if idx := strings.Index(clean, ";base64,"); idx >= 0 && strings.HasPrefix(clean, "data:image/") {
		clean = clean[idx+len(";base64,"):]
	}
	if clean == "" {
		return nil, "", apperrors.Wrap(apperrors.CodeInvalidInput, "image data cannot be empty", nil)
	}
	raw, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.CodeInvalidInput, "image data is not valid base64", err)
	}
	return raw, clean, nil
}
