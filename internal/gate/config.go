package gate

import "time"

// Defaults for the gate's timing policy. All values are overridable at
// construction and static for the life of a session.
const (
	DefaultMinUpdateInterval         = 30 * time.Minute
	DefaultMinAppStateUpdateInterval = 15 * time.Minute
	DefaultInitialDelay              = 3 * time.Second
	DefaultAppStateDelay             = 5 * time.Second
	DefaultCacheTTL                  = 5 * time.Minute
	DefaultGeocodePrecision          = 4 // decimal places, ~11 m
	DefaultAccuracyHint              = "balanced"
)

// Config holds the gate's timing and feature-flag surface.
type Config struct {
	// MinUpdateInterval is the minimum time between accepted updates for
	// initial and manual triggers.
	MinUpdateInterval time.Duration

	// MinAppStateUpdateInterval is the minimum time between accepted
	// updates triggered by app-foreground transitions.
	MinAppStateUpdateInterval time.Duration

	// InitialDelay is how long after OnAppStart the first evaluation runs.
	InitialDelay time.Duration

	// AppStateDelay is the debounce window for foreground transitions.
	AppStateDelay time.Duration

	// AutoStart enables the delayed evaluation scheduled by OnAppStart.
	AutoStart bool

	// AppStateTriggers enables evaluations scheduled by OnAppForeground.
	AppStateTriggers bool

	// NetworkTTL and GeocodeTTL bound how long cached connectivity and
	// reverse-geocode results are reused.
	NetworkTTL time.Duration
	GeocodeTTL time.Duration

	// GeocodePrecision is the number of coordinate decimal places used for
	// the geocode cache key.
	GeocodePrecision int

	// AccuracyHint is passed through to the device provider on every fix
	// request ("balanced", "high", "low").
	AccuracyHint string
}

// DefaultConfig returns the documented default policy with both trigger
// paths enabled.
func DefaultConfig() Config {
	return Config{
		MinUpdateInterval:         DefaultMinUpdateInterval,
		MinAppStateUpdateInterval: DefaultMinAppStateUpdateInterval,
		InitialDelay:              DefaultInitialDelay,
		AppStateDelay:             DefaultAppStateDelay,
		AutoStart:                 true,
		AppStateTriggers:          true,
		NetworkTTL:                DefaultCacheTTL,
		GeocodeTTL:                DefaultCacheTTL,
		GeocodePrecision:          DefaultGeocodePrecision,
		AccuracyHint:              DefaultAccuracyHint,
	}
}

// withDefaults fills zero-valued durations and precision so a partially
// populated Config behaves sensibly. The boolean flags are taken as given.
func (c Config) withDefaults() Config {
	if c.MinUpdateInterval == 0 {
		c.MinUpdateInterval = DefaultMinUpdateInterval
	}
	if c.MinAppStateUpdateInterval == 0 {
		c.MinAppStateUpdateInterval = DefaultMinAppStateUpdateInterval
	}
	if c.InitialDelay == 0 {
		c.InitialDelay = DefaultInitialDelay
	}
	if c.AppStateDelay == 0 {
		c.AppStateDelay = DefaultAppStateDelay
	}
	if c.NetworkTTL == 0 {
		c.NetworkTTL = DefaultCacheTTL
	}
	if c.GeocodeTTL == 0 {
		c.GeocodeTTL = DefaultCacheTTL
	}
	if c.GeocodePrecision == 0 {
		c.GeocodePrecision = DefaultGeocodePrecision
	}
	if c.AccuracyHint == "" {
		c.AccuracyHint = DefaultAccuracyHint
	}
	return c
}
