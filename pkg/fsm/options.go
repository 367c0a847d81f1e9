package fsm

import "log/slog"

// Option configures a StateMachine during construction.
type Option func(*StateMachine)

// WithLogger routes the machine's debug records to l. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(sm *StateMachine) {
		if l != nil {
			sm.logger = l
		}
	}
}

// CheckOption tunes a single enablement query.
type CheckOption func(*checkConfig)

type checkConfig struct {
	dispatchTest bool
}

func defaultCheckConfig() checkConfig {
	return checkConfig{dispatchTest: true}
}

// WithoutTestDispatch limits an enablement query to structural eligibility:
// test listeners are not consulted and cannot veto.
func WithoutTestDispatch() CheckOption {
	return func(c *checkConfig) {
		c.dispatchTest = false
	}
}
