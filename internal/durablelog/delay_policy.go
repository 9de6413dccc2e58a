package durablelog

import (
	"errors"
	"math/rand/v2"
	"time"
)

// ErrDelayPolicyUnsupported is returned when parsing an unknown delay policy name.
var ErrDelayPolicyUnsupported = errors.New("unsupported post-commit delay policy")

// DelayPolicyType describes how long an append waits after it was committed before its result is completed. This
// allows simulating the latency of a durable storage layer.
type DelayPolicyType int

const (
	DelayPolicyTypeNone DelayPolicyType = iota
	DelayPolicyTypeFixed
	DelayPolicyTypeRandom
)

// String returns a string representation of the delay policy type.
func (d DelayPolicyType) String() string {
	switch d {
	case DelayPolicyTypeNone:
		return "none"
	case DelayPolicyTypeFixed:
		return "fixed"
	case DelayPolicyTypeRandom:
		return "random"
	default:
		return "unknown"
	}
}

// ParseDelayPolicyType returns the delay policy type matching the given string representation.
func ParseDelayPolicyType(value string) (DelayPolicyType, error) {
	for _, delayPolicyType := range DelayPolicyTypes {
		if delayPolicyType.String() == value {
			return delayPolicyType, nil
		}
	}
	return 0, ErrDelayPolicyUnsupported
}

// DelayPolicyTypes provides a list of supported delay policies. Helpful for writing tests and benchmarks which iterate
// over all possibilities.
var DelayPolicyTypes = []DelayPolicyType{
	DelayPolicyTypeNone,
	DelayPolicyTypeFixed,
	DelayPolicyTypeRandom,
}

// DefaultDelayPolicy is the delay policy type used when nothing else is configured.
const DefaultDelayPolicy = DelayPolicyTypeNone

// DelayPolicy is the interface every delay policy needs to implement. NextDelay is called once per committed append
// and may be called from multiple Go routines concurrently.
type DelayPolicy interface {
	NextDelay() time.Duration
}

// DelayPolicyNone completes appends right after they were committed.
type DelayPolicyNone struct{}

// DelayPolicyNone implements DelayPolicy.
var _ DelayPolicy = (*DelayPolicyNone)(nil)

// NewDelayPolicyNone creates a delay policy without any delay.
func NewDelayPolicyNone() *DelayPolicyNone {
	return &DelayPolicyNone{}
}

// NextDelay implements DelayPolicy.
func (d *DelayPolicyNone) NextDelay() time.Duration {
	return 0
}

// String returns the name of the delay policy.
func (d *DelayPolicyNone) String() string {
	return "none"
}

// DelayPolicyFixed delays every append by the same duration.
type DelayPolicyFixed struct {
	delay time.Duration
}

// DelayPolicyFixed implements DelayPolicy.
var _ DelayPolicy = (*DelayPolicyFixed)(nil)

// NewDelayPolicyFixed creates a delay policy which always returns the given delay. Negative delays are treated as
// zero.
func NewDelayPolicyFixed(delay time.Duration) *DelayPolicyFixed {
	return &DelayPolicyFixed{
		delay: max(delay, 0),
	}
}

// NextDelay implements DelayPolicy.
func (d *DelayPolicyFixed) NextDelay() time.Duration {
	return d.delay
}

// String returns the name of the delay policy.
func (d *DelayPolicyFixed) String() string {
	return "fixed"
}

// DelayPolicyRandom delays every append by a uniformly distributed duration in [minDelay, maxDelay).
type DelayPolicyRandom struct {
	minDelay time.Duration
	maxDelay time.Duration
}

// DelayPolicyRandom implements DelayPolicy.
var _ DelayPolicy = (*DelayPolicyRandom)(nil)

// NewDelayPolicyRandom creates a delay policy returning random delays between minDelay and maxDelay. Negative delays
// are treated as zero and maxDelay is raised to minDelay if it is smaller.
func NewDelayPolicyRandom(minDelay time.Duration, maxDelay time.Duration) *DelayPolicyRandom {
	minDelay = max(minDelay, 0)
	return &DelayPolicyRandom{
		minDelay: minDelay,
		maxDelay: max(maxDelay, minDelay),
	}
}

// NextDelay implements DelayPolicy.
func (d *DelayPolicyRandom) NextDelay() time.Duration {
	if d.maxDelay == d.minDelay {
		return d.minDelay
	}
	return d.minDelay + rand.N(d.maxDelay-d.minDelay) //nolint:gosec // No cryptographic use.
}

// String returns the name of the delay policy.
func (d *DelayPolicyRandom) String() string {
	return "random"
}
