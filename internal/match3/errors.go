package match3

import "errors"

var (
	// ErrInvalidConfig is wrapped by every configuration validation error.
	ErrInvalidConfig = errors.New("match3: invalid config")

	// ErrGenerationExhausted is returned when no playable board was found
	// within the configured number of attempts.
	ErrGenerationExhausted = errors.New("match3: no playable board found")

	// ErrCascadeLimit is returned when a single turn's cascade did not
	// settle within the configured number of passes.
	ErrCascadeLimit = errors.New("match3: cascade did not settle")

	// ErrStalled is returned by SubmitMove after a failed reshuffle or
	// cascade until the engine is Reset.
	ErrStalled = errors.New("match3: engine stalled, reset required")
)
