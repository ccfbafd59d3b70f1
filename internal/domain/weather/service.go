package weather

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "github.com/agrivision/agrivision/pkg/errors"
)

// Service exposes weather snapshot capabilities.
type Service interface {
	Snapshot(ctx context.Context, lat, lon float64) (Snapshot, error)
	DefaultCoordinate() (lat, lon float64)
}

type service struct {
	cfg    Config
	client ForecastClient
	cache  SnapshotCache
	logger *slog.Logger
}

// NewService wires up the weather domain.
func NewService(cfg Config, client ForecastClient, cache SnapshotCache, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		client: client,
		cache:  cache,
		logger: logger.With("component", "weather.service"),
	}
}

// Snapshot returns current conditions plus derived alerts for a coordinate.
func (s *service) Snapshot(ctx context.Context, lat, lon float64) (Snapshot, error) {
	key := cacheKey(lat, lon)
	if snap, ok := s.cache.Get(ctx, key); ok {
		return snap, nil
	}

	obs, err := s.client.Current(ctx, lat, lon)
	if err != nil {
		return Snapshot{}, apperrors.Wrap(apperrors.CodeWeatherUnavailable, "failed to fetch weather data", err)
	}

	snap := Snapshot{
		Temperature:   obs.Temperature,
		Humidity:      obs.Humidity,
		Precipitation: obs.Precipitation,
		ConditionCode: obs.Code,
		Condition:     DescribeCondition(obs.Code),
		IsDay:         obs.IsDay,
		Alerts:        deriveAlerts(obs),
	}

	s.cache.Set(ctx, key, snap, s.cfg.CacheTTL)
	s.logger.Info("weather snapshot fetched", "lat", lat, "lon", lon, "code", obs.Code, "alerts", len(snap.Alerts))
	return snap, nil
}

// DefaultCoordinate is the fallback location used when geolocation is denied
// or a user-supplied coordinate cannot be served.
func (s *service) DefaultCoordinate() (float64, float64) {
	return s.cfg.DefaultLat, s.cfg.DefaultLon
}

// deriveAlerts applies the fixed thresholds. Within the temperature category
// the first matching rule wins; independent categories are all evaluated.
func deriveAlerts(obs Observation) []Alert {
	var alerts []Alert

	switch {
	case obs.Temperature > 35:
		alerts = append(alerts, Alert{Type: AlertHeat, Level: LevelHigh, Message: "Extreme heat detected. Irrigation required."})
	case obs.Temperature > 30:
		alerts = append(alerts, Alert{Type: AlertHeat, Level: LevelMedium, Message: "High temperature. Monitor crops."})
	case obs.Temperature < 0:
		alerts = append(alerts, Alert{Type: AlertFreeze, Level: LevelHigh, Message: "Freeze warning. Protect sensitive crops."})
	}

	if obs.Humidity < 30 && obs.Precipitation == 0 {
		alerts = append(alerts, Alert{Type: AlertDrought, Level: LevelMedium, Message: "Low humidity. Drought risk increasing."})
	}

	if obs.Precipitation > 10 {
		alerts = append(alerts, Alert{Type: AlertFlood, Level: LevelMedium, Message: "Heavy rain detected. Check drainage."})
	}

	if len(alerts) == 0 {
		alerts = append(alerts, Alert{Type: AlertNone, Level: LevelLow, Message: "Weather conditions are stable."})
	}
	return alerts
}

// cacheKey rounds coordinates so nearby lookups share a snapshot.
func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("wx:%.2f:%.2f", lat, lon)
}
