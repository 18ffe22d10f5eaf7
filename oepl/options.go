package oepl

import (
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultPartRetryLimit = 3
	DefaultStepTimeout    = 20 * time.Second
)

type config struct {
	partRetryLimit int
	stepTimeout    time.Duration
	logger         log.FieldLogger
}

func defaultConfig() config {
	return config{
		partRetryLimit: DefaultPartRetryLimit,
		stepTimeout:    DefaultStepTimeout,
		logger:         log.StandardLogger(),
	}
}

// Option configures an Engine.
type Option func(*config)

// WithPartRetryLimit caps how often the same part is transmitted before the
// transfer fails with *PartRetryExceededError. The device firmware never
// stops rejecting on its own, so an uncapped loop could retransmit forever.
func WithPartRetryLimit(limit int) Option {
	return func(c *config) {
		if limit > 0 {
			c.partRetryLimit = limit
		}
	}
}

// WithStepTimeout sets the deadline for each await-notification step. A
// silent device aborts the operation with *TimeoutError instead of hanging.
func WithStepTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.stepTimeout = d
		}
	}
}

// WithLogger routes the engine's progress and debug output.
func WithLogger(logger log.FieldLogger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
