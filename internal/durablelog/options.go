package durablelog

import (
	"log/slog"
	"time"
)

// Option describes the function signature which all log options need to implement.
type Option func(l *Log)

// WithClientID overwrites the randomly generated client id the log uses for the write lock. Empty ids are ignored.
func WithClientID(clientID string) Option {
	return func(l *Log) {
		if clientID != "" {
			l.clientID = clientID
		}
	}
}

// WithWriteConcurrency overwrites the default number of appends which can be in flight at the same time.
func WithWriteConcurrency(writeConcurrency int) Option {
	return func(l *Log) {
		l.writeConcurrency = max(writeConcurrency, 1)
	}
}

// WithDelayPolicyNone overwrites the default delay policy with delay policy none.
func WithDelayPolicyNone() Option {
	return func(l *Log) {
		l.delayPolicy = NewDelayPolicyNone()
	}
}

// WithDelayPolicyFixed overwrites the default delay policy with delay policy fixed.
func WithDelayPolicyFixed(delay time.Duration) Option {
	return func(l *Log) {
		l.delayPolicy = NewDelayPolicyFixed(delay)
	}
}

// WithDelayPolicyRandom overwrites the default delay policy with delay policy random.
func WithDelayPolicyRandom(minDelay time.Duration, maxDelay time.Duration) Option {
	return func(l *Log) {
		l.delayPolicy = NewDelayPolicyRandom(minDelay, maxDelay)
	}
}

// WithDelayPolicy overwrites the default delay policy with the given one.
func WithDelayPolicy(delayPolicy DelayPolicy) Option {
	return func(l *Log) {
		if delayPolicy != nil {
			l.delayPolicy = delayPolicy
		}
	}
}

// WithLogger overwrites the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Log) {
		if logger != nil {
			l.logger = logger
		}
	}
}
