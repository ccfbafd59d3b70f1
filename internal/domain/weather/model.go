package weather

import (
	"context"
	"time"
)

// Alert types emitted by the threshold rules.
const (
	AlertHeat    = "heat"
	AlertFreeze  = "freeze"
	AlertDrought = "drought"
	AlertFlood   = "flood"
	AlertNone    = "none"
)

// Alert severity levels.
const (
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"
)

// Observation is the raw current-conditions reading fetched from upstream.
type Observation struct {
	Temperature   float64
	Humidity      float64
	Precipitation float64
	Code          int
	IsDay         bool
	ObservedAt    time.Time
}

// Alert is one derived warning entry.
type Alert struct {
	Type    string `json:"type"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Snapshot is the typed point-in-time weather view served to clients.
// Alerts is never empty: a sentinel "none" entry stands in when no rule fires.
type Snapshot struct {
	Temperature   float64 `json:"temp"`
	Humidity      float64 `json:"humidity"`
	Precipitation float64 `json:"precipitation"`
	ConditionCode int     `json:"conditionCode"`
	Condition     string  `json:"condition"`
	IsDay         bool    `json:"isDay"`
	Alerts        []Alert `json:"alerts"`
}

// ForecastClient fetches current conditions for a coordinate.
type ForecastClient interface {
	Current(ctx context.Context, lat, lon float64) (Observation, error)
}

// SnapshotCache holds recently derived snapshots keyed by coordinate.
type SnapshotCache interface {
	Get(ctx context.Context, key string) (Snapshot, bool)
	Set(ctx context.Context, key string, snap Snapshot, ttl time.Duration)
}

// Config wires runtime dependencies for the weather domain.
type Config struct {
	CacheTTL   time.Duration
	DefaultLat float64
	DefaultLon float64
}
