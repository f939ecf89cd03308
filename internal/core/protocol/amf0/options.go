// If you are AI: This file defines codec options (depth limit, length policy, logger).

package amf0

import (
	"fmt"

	"go.uber.org/zap"
)

// LengthPolicy decides how declared header and message lengths are checked.
type LengthPolicy int

const (
	// LengthAdvisory flags and logs mismatches but keeps decoding.
	LengthAdvisory LengthPolicy = iota
	// LengthStrict fails with KindHeaderLengthMismatch on any mismatch and
	// rejects trailing bytes after the last message.
	LengthStrict
)

// String returns the configuration name of the policy.
func (p LengthPolicy) String() string {
	switch p {
	case LengthAdvisory:
		return "advisory"
	case LengthStrict:
		return "strict"
	default:
		return fmt.Sprintf("LengthPolicy(%d)", int(p))
	}
}

// ParseLengthPolicy maps a configuration name to a policy.
func ParseLengthPolicy(s string) (LengthPolicy, error) {
	switch s {
	case "", "advisory":
		return LengthAdvisory, nil
	case "strict":
		return LengthStrict, nil
	default:
		return 0, fmt.Errorf("unknown length policy %q", s)
	}
}

type options struct {
	maxDepth     int
	lengthPolicy LengthPolicy
	logger       *zap.Logger
}

// Option configures a Decoder or an Encoder.
type Option func(*options)

// WithMaxDepth sets the maximum value nesting depth. Values below 1 keep the default.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

// WithLengthPolicy sets how declared lengths are validated.
func WithLengthPolicy(p LengthPolicy) Option {
	return func(o *options) {
		o.lengthPolicy = p
	}
}

// WithLogger sets the logger used for warnings and debug output.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// buildOptions applies opts over the defaults.
func buildOptions(opts []Option) options {
	o := options{
		maxDepth:     DefaultMaxDepth,
		lengthPolicy: LengthAdvisory,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
