package gate

import "errors"

// Sentinel outcomes of an evaluation cycle. None of them are fatal to the
// gate; state is preserved so the next natural trigger retries.
var (
	// ErrThrottled means too little time has elapsed since the last
	// accepted update. Expected, logged at most.
	ErrThrottled = errors.New("gate: throttled")

	// ErrRequestInFlight means a device fix request is already outstanding;
	// the new trigger is dropped rather than queued.
	ErrRequestInFlight = errors.New("gate: fix request already in flight")

	// ErrNetworkUnreachable means the connectivity check failed or reported
	// no network; the emission is skipped for this cycle.
	ErrNetworkUnreachable = errors.New("gate: network unreachable")
)
