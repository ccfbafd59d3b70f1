package session

import (
	"context"
	"sync"
	"time"

	"github.com/agrivision/agrivision/internal/domain/advisorchat"
	"github.com/agrivision/agrivision/internal/domain/diagnosis"
	"github.com/agrivision/agrivision/internal/domain/i18n"
	"github.com/agrivision/agrivision/internal/domain/region"
	"github.com/agrivision/agrivision/internal/domain/report"
)

// AnalysisPhase tracks the image diagnosis state machine:
// Idle -> Analyzing -> {Analyzed, Failed}, re-entrant on a new upload.
type AnalysisPhase string

const (
	AnalysisIdle      AnalysisPhase = "idle"
	AnalysisAnalyzing AnalysisPhase = "analyzing"
	AnalysisAnalyzed  AnalysisPhase = "analyzed"
	AnalysisFailed    AnalysisPhase = "failed"
)

// ModalPhase tracks the feature-report modal:
// Closed -> Loading -> {Ready, Failed} -> Closed.
type ModalPhase string

const (
	ModalClosed  ModalPhase = "closed"
	ModalLoading ModalPhase = "loading"
	ModalReady   ModalPhase = "ready"
	ModalFailed  ModalPhase = "failed"
)

// RegionPhase tracks the land-region analysis sub-state.
type RegionPhase string

const (
	RegionIdle    RegionPhase = "idle"
	RegionLoading RegionPhase = "loading"
	RegionReady   RegionPhase = "ready"
	RegionFailed  RegionPhase = "failed"
)

// Pages the single-page UI can show.
const (
	PageDashboard = "dashboard"
	PageMarket    = "market"
	PageCommunity = "community"
)

// ImageStore persists the uploaded image for the session lifetime.
type ImageStore interface {
	Put(ctx context.Context, key string, data []byte, mimeType string) error
	Get(ctx context.Context, key string) ([]byte, string, error)
	Delete(ctx context.Context, key string) error
}

// Session owns all mutable UI state for one page session. Fields are written
// only under the mutex and only by the controller; presentation layers see
// immutable snapshots.
type Session struct {
	mu       sync.Mutex
	id       string
	language i18n.Language
	page     string
	lastSeen time.Time

	imageKey      string
	analysis      *diagnosis.Analysis
	analysisErr   string
	analysisPhase AnalysisPhase
	analysisSeq   uint64

	messages []advisorchat.Message

	selectedFeature string
	report          *report.Report
	reportErr       string
	reportPhase     ModalPhase
	reportSeq       uint64

	region      *region.Analysis
	regionErr   string
	regionPhase RegionPhase
	regionSeq   uint64
}

// Snapshot is the immutable view handed to presentation layers.
type Snapshot struct {
	ID            string              `json:"id"`
	Language      i18n.Language       `json:"language"`
	Page          string              `json:"page"`
	AnalysisPhase AnalysisPhase       `json:"analysisPhase"`
	ImageKey      string              `json:"imageKey,omitempty"`
	Analysis      *diagnosis.Analysis `json:"analysis,omitempty"`
	AnalysisError string              `json:"analysisError,omitempty"`

	Messages []advisorchat.Message `json:"messages"`

	SelectedFeature string         `json:"selectedFeature,omitempty"`
	ReportPhase     ModalPhase     `json:"reportPhase"`
	Report          *report.Report `json:"report,omitempty"`
	ReportError     string         `json:"reportError,omitempty"`

	RegionPhase RegionPhase      `json:"regionPhase"`
	Region      *region.Analysis `json:"region,omitempty"`
	RegionError string           `json:"regionError,omitempty"`
}

// snapshotLocked copies the session state. Callers hold s.mu.
func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:              s.id,
		Language:        s.language,
		Page:            s.page,
		AnalysisPhase:   s.analysisPhase,
		ImageKey:        s.imageKey,
		AnalysisError:   s.analysisErr,
		SelectedFeature: s.selectedFeature,
		ReportPhase:     s.reportPhase,
		ReportError:     s.reportErr,
		RegionPhase:     s.regionPhase,
		RegionError:     s.regionErr,
	}
	if s.analysis != nil {
		analysis := *s.analysis
		snap.Analysis = &analysis
	}
	if s.report != nil {
		rep := *s.report
		snap.Report = &rep
	}
	if s.region != nil {
		reg := *s.region
		snap.Region = &reg
	}
	snap.Messages = make([]advisorchat.Message, len(s.messages))
	copy(snap.Messages, s.messages)
	return snap
}

// Config wires runtime tuning for the session domain.
type Config struct {
	IdleTTL    time.Duration
	DefaultLat float64
	DefaultLon float64
}
