// Package config loads the waypoint daemon configuration from the
// environment. All values are read once at startup and static for the
// life of the process.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pairlane/waypoint/internal/gate"
)

type Config struct {
	DatabaseURL string // WAYPOINT_DATABASE_URL (required)
	HTTPAddr    string // WAYPOINT_HTTP_ADDR (default ":8080")
	NATSURL     string // WAYPOINT_NATS_URL (optional, empty = no events)
	AuthToken   string // WAYPOINT_AUTH_TOKEN (optional, empty = auth disabled)

	// Collaborator endpoints
	AgentURL    string // WAYPOINT_AGENT_URL (device agent, default "http://127.0.0.1:7700")
	GeocoderURL string // WAYPOINT_GEOCODER_URL (reverse geocoding endpoint; empty = geocoding disabled)
	ProbeURL    string // WAYPOINT_PROBE_URL (connectivity probe, default "https://connectivitycheck.gstatic.com/generate_204")

	// Gate policy (see internal/gate for defaults)
	Gate gate.Config

	// Export settings
	ExportInterval   time.Duration // WAYPOINT_EXPORT_INTERVAL (default 0 = disabled)
	ExportS3Bucket   string        // WAYPOINT_EXPORT_S3_BUCKET (enables S3 when set)
	ExportS3Endpoint string        // WAYPOINT_EXPORT_S3_ENDPOINT (custom endpoint for MinIO)
	ExportS3Region   string        // WAYPOINT_EXPORT_S3_REGION (default "us-east-1")
	ExportS3Key      string        // WAYPOINT_EXPORT_S3_KEY (default "waypoint/updates.jsonl")
	ExportFile       string        // WAYPOINT_EXPORT_FILE (enables file export when set)

	// Retention is how long update history is kept; 0 = keep forever.
	Retention time.Duration // WAYPOINT_RETENTION
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:      os.Getenv("WAYPOINT_DATABASE_URL"),
		HTTPAddr:         envOrDefault("WAYPOINT_HTTP_ADDR", ":8080"),
		NATSURL:          os.Getenv("WAYPOINT_NATS_URL"),
		AuthToken:        os.Getenv("WAYPOINT_AUTH_TOKEN"),
		AgentURL:         envOrDefault("WAYPOINT_AGENT_URL", "http://127.0.0.1:7700"),
		GeocoderURL:      os.Getenv("WAYPOINT_GEOCODER_URL"),
		ProbeURL:         envOrDefault("WAYPOINT_PROBE_URL", "https://connectivitycheck.gstatic.com/generate_204"),
		ExportS3Bucket:   os.Getenv("WAYPOINT_EXPORT_S3_BUCKET"),
		ExportS3Endpoint: os.Getenv("WAYPOINT_EXPORT_S3_ENDPOINT"),
		ExportS3Region:   envOrDefault("WAYPOINT_EXPORT_S3_REGION", "us-east-1"),
		ExportS3Key:      envOrDefault("WAYPOINT_EXPORT_S3_KEY", "waypoint/updates.jsonl"),
		ExportFile:       os.Getenv("WAYPOINT_EXPORT_FILE"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("WAYPOINT_DATABASE_URL is required")
	}

	g := gate.DefaultConfig()
	var err error
	if g.MinUpdateInterval, err = envDuration("WAYPOINT_MIN_UPDATE_INTERVAL", g.MinUpdateInterval); err != nil {
		return nil, err
	}
	if g.MinAppStateUpdateInterval, err = envDuration("WAYPOINT_MIN_APP_STATE_INTERVAL", g.MinAppStateUpdateInterval); err != nil {
		return nil, err
	}
	if g.InitialDelay, err = envDuration("WAYPOINT_INITIAL_DELAY", g.InitialDelay); err != nil {
		return nil, err
	}
	if g.AppStateDelay, err = envDuration("WAYPOINT_APP_STATE_DELAY", g.AppStateDelay); err != nil {
		return nil, err
	}
	if g.NetworkTTL, err = envDuration("WAYPOINT_NETWORK_TTL", g.NetworkTTL); err != nil {
		return nil, err
	}
	if g.GeocodeTTL, err = envDuration("WAYPOINT_GEOCODE_TTL", g.GeocodeTTL); err != nil {
		return nil, err
	}
	if g.AutoStart, err = envBool("WAYPOINT_AUTO_START", g.AutoStart); err != nil {
		return nil, err
	}
	if g.AppStateTriggers, err = envBool("WAYPOINT_APP_STATE_TRIGGERS", g.AppStateTriggers); err != nil {
		return nil, err
	}
	g.AccuracyHint = envOrDefault("WAYPOINT_ACCURACY_HINT", g.AccuracyHint)
	c.Gate = g

	if c.ExportInterval, err = envDuration("WAYPOINT_EXPORT_INTERVAL", 0); err != nil {
		return nil, err
	}
	if c.Retention, err = envDuration("WAYPOINT_RETENTION", 0); err != nil {
		return nil, err
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
