// Package gate implements the single authority that decides if and when a
// location refresh is allowed.
//
// The gate receives trigger signals (app start, app-foreground transitions,
// manual requests), debounces and throttles them, requests a fix from the
// device-location collaborator, and emits at most one location update per
// accepted decision cycle to the backend sync collaborator. Connectivity
// checks and reverse-geocode lookups are memoized in TTL caches to avoid
// redundant calls within a burst of triggers.
package gate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pairlane/waypoint/internal/cache"
	"github.com/pairlane/waypoint/internal/idgen"
	"github.com/pairlane/waypoint/internal/model"
)

// Provider requests a location fix from the device, with the gate's
// configured accuracy hint. Fallible and cancellable; cancellation is
// treated identically to failure.
type Provider interface {
	RequestFix(ctx context.Context, accuracyHint string) (model.Fix, error)
}

// Connectivity reports whether the network is reachable. A check failure
// counts as unreachable.
type Connectivity interface {
	Reachable(ctx context.Context) (bool, error)
}

// Geocoder resolves coordinates to a human-readable place description.
type Geocoder interface {
	Describe(ctx context.Context, lat, lon float64) (string, error)
}

// Sink receives emitted location updates. Delivery is fire-and-forget from
// the gate's perspective; errors are logged, not surfaced to the trigger.
type Sink interface {
	Publish(ctx context.Context, update *model.LocationUpdate) error
}

// Deps bundles the gate's collaborators. Clock and Logger may be nil, in
// which case the system clock and slog.Default() are used.
type Deps struct {
	Clock        Clock
	Provider     Provider
	Connectivity Connectivity
	Geocoder     Geocoder
	Sink         Sink
	Logger       *slog.Logger
}

// connectivity cache holds a single entry.
const networkKey = "network"

// Gate owns all location-trigger decisions for one app session. State is
// created cold at session start and discarded at session end; nothing is
// persisted across restarts.
type Gate struct {
	cfg    Config
	clock  Clock
	logger *slog.Logger

	provider     Provider
	connectivity Connectivity
	geocoder     Geocoder
	sink         Sink

	network *cache.Cache[string, bool]
	geocode *cache.Cache[string, string]

	mu             sync.Mutex
	lastUpdateAt   time.Time // last accepted update, any trigger
	lastAppStateAt time.Time // last accepted update from an app-state trigger
	pending        Timer     // at most one scheduled evaluation
	pendingSeq     uint64    // invalidates callbacks of replaced timers
	inFlight       bool      // a device fix request is outstanding
}

// New creates a gate with the given policy and collaborators.
func New(cfg Config, deps Deps) *Gate {
	cfg = cfg.withDefaults()
	if deps.Clock == nil {
		deps.Clock = RealClock()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Gate{
		cfg:          cfg,
		clock:        deps.Clock,
		logger:       deps.Logger,
		provider:     deps.Provider,
		connectivity: deps.Connectivity,
		geocoder:     deps.Geocoder,
		sink:         deps.Sink,
		network:      cache.NewWithClock[string, bool](cfg.NetworkTTL, deps.Clock.Now),
		geocode:      cache.NewWithClock[string, string](cfg.GeocodeTTL, deps.Clock.Now),
	}
}

// OnAppStart schedules a delayed evaluation after the initial delay. It has
// no immediate side effect. Disabled sessions (AutoStart=false) ignore it.
func (g *Gate) OnAppStart() {
	if !g.cfg.AutoStart {
		g.logger.Debug("gate: auto-start disabled, ignoring app start")
		return
	}
	g.schedule(model.TriggerInitial, g.cfg.InitialDelay)
}

// OnAppForeground schedules a delayed evaluation after the app-state
// debounce window. A prior pending timer is cancelled and replaced, so only
// the latest foreground transition wins.
func (g *Gate) OnAppForeground() {
	if !g.cfg.AppStateTriggers {
		g.logger.Debug("gate: app-state triggers disabled, ignoring foreground")
		return
	}
	g.schedule(model.TriggerAppState, g.cfg.AppStateDelay)
}

// OnManualRequest bypasses delay and debounce entirely: it cancels any
// pending timer and evaluates immediately, regardless of feature flags.
// On acceptance it returns the emitted update.
func (g *Gate) OnManualRequest(ctx context.Context) (*model.LocationUpdate, error) {
	g.mu.Lock()
	g.cancelPendingLocked()
	g.mu.Unlock()
	return g.evaluate(ctx, model.TriggerManual)
}

// schedule arms the single pending timer, cancelling any prior one.
func (g *Gate) schedule(trigger model.Trigger, delay time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.cancelPendingLocked()
	g.pendingSeq++
	seq := g.pendingSeq
	g.pending = g.clock.AfterFunc(delay, func() { g.firePending(seq, trigger) })
	g.logger.Debug("gate: evaluation scheduled", "trigger", trigger, "delay", delay)
}

// firePending runs a scheduled evaluation, unless the timer was replaced or
// cancelled after its callback had already started (AfterFunc callbacks can
// race with Stop).
func (g *Gate) firePending(seq uint64, trigger model.Trigger) {
	g.mu.Lock()
	if seq != g.pendingSeq {
		g.mu.Unlock()
		return
	}
	g.pending = nil
	g.mu.Unlock()

	if _, err := g.evaluate(context.Background(), trigger); err != nil {
		g.logger.Info("gate: scheduled evaluation skipped",
			"trigger", trigger, "reason", err)
	}
}

// cancelPendingLocked stops the pending timer and invalidates any callback
// of it that may already be running.
func (g *Gate) cancelPendingLocked() {
	if g.pending != nil {
		g.pending.Stop()
		g.pending = nil
	}
	g.pendingSeq++
}

// evaluate runs one decision cycle: throttle check, device fix request,
// then fix handling. Rejection is an expected outcome, reported via the
// sentinel errors in this package.
func (g *Gate) evaluate(ctx context.Context, trigger model.Trigger) (*model.LocationUpdate, error) {
	g.mu.Lock()
	now := g.clock.Now()

	// Throttle. The boundary is inclusive: an update at exactly the
	// configured interval is accepted.
	if trigger == model.TriggerAppState {
		if !g.lastAppStateAt.IsZero() && now.Sub(g.lastAppStateAt) < g.cfg.MinAppStateUpdateInterval {
			g.mu.Unlock()
			return nil, ErrThrottled
		}
	} else {
		if !g.lastUpdateAt.IsZero() && now.Sub(g.lastUpdateAt) < g.cfg.MinUpdateInterval {
			g.mu.Unlock()
			return nil, ErrThrottled
		}
	}

	// At most one outstanding device request; concurrent triggers drop.
	if g.inFlight {
		g.mu.Unlock()
		return nil, ErrRequestInFlight
	}
	g.inFlight = true
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.inFlight = false
		g.mu.Unlock()
	}()

	fix, err := g.provider.RequestFix(ctx, g.cfg.AccuracyHint)
	if err != nil {
		// No timestamp mutation: the next allowed trigger retries instead
		// of being blocked by a phantom success.
		return nil, fmt.Errorf("request fix: %w", err)
	}

	return g.onFixReceived(ctx, fix, trigger)
}

// onFixReceived handles a received fix: connectivity check (cached), reverse
// geocode (cached, degrades to empty place on failure), emission, and
// timestamp updates.
func (g *Gate) onFixReceived(ctx context.Context, fix model.Fix, trigger model.Trigger) (*model.LocationUpdate, error) {
	reachable, ok := g.network.Get(networkKey)
	if !ok {
		r, err := g.connectivity.Reachable(ctx)
		if err != nil {
			g.logger.Warn("gate: connectivity check failed", "error", err)
			r = false
		}
		g.network.Put(networkKey, r)
		reachable = r
	}
	if !reachable {
		return nil, ErrNetworkUnreachable
	}

	key := model.GeocodeKey(fix.Latitude, fix.Longitude, g.cfg.GeocodePrecision)
	place, ok := g.geocode.Get(key)
	if !ok {
		p, err := g.geocoder.Describe(ctx, fix.Latitude, fix.Longitude)
		if err != nil {
			// Degrade gracefully: emit without a place description.
			g.logger.Warn("gate: reverse geocode failed", "error", err)
			place = ""
		} else {
			place = p
			g.geocode.Put(key, p)
		}
	}

	id, err := idgen.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate update id: %w", err)
	}

	update := &model.LocationUpdate{
		ID:         id,
		Latitude:   fix.Latitude,
		Longitude:  fix.Longitude,
		Place:      place,
		Trigger:    trigger,
		CapturedAt: fix.CapturedAt,
		EmittedAt:  g.clock.Now().UTC(),
	}

	if err := g.sink.Publish(ctx, update); err != nil {
		// Fire-and-forget: delivery guarantees belong to the sink.
		g.logger.Warn("gate: publish failed", "update_id", update.ID, "error", err)
	}

	g.mu.Lock()
	now := g.clock.Now()
	g.lastUpdateAt = now
	if trigger == model.TriggerAppState {
		g.lastAppStateAt = now
	}
	g.mu.Unlock()

	g.logger.Info("gate: location update emitted",
		"update_id", update.ID, "trigger", trigger, "place", place != "")
	return update, nil
}

// Snapshot is a point-in-time view of the gate's state for the status API.
type Snapshot struct {
	LastUpdateAt         *time.Time `json:"last_update_at,omitempty"`
	LastAppStateUpdateAt *time.Time `json:"last_app_state_update_at,omitempty"`
	TimerPending         bool       `json:"timer_pending"`
	RequestInFlight      bool       `json:"request_in_flight"`
}

// Snapshot returns the gate's current state.
func (g *Gate) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	var s Snapshot
	if !g.lastUpdateAt.IsZero() {
		t := g.lastUpdateAt
		s.LastUpdateAt = &t
	}
	if !g.lastAppStateAt.IsZero() {
		t := g.lastAppStateAt
		s.LastAppStateUpdateAt = &t
	}
	s.TimerPending = g.pending != nil
	s.RequestInFlight = g.inFlight
	return s
}

// Stop cancels any pending scheduled evaluation. An in-flight fix request
// is owned by its caller's context and is not interrupted here.
func (g *Gate) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cancelPendingLocked()
}
