package downloader

import (
	"math/rand"
	"time"
)

// Delay bounds for normal operation. The jitter keeps the request cadence
// from looking automated to the target servers.
const (
	DefaultMinDelay = 35 * time.Second
	DefaultMaxDelay = 621 * time.Second
)

// DelayPolicy decides how long to wait before each request.
type DelayPolicy interface {
	NextDelay() time.Duration
}

// UniformRandomDelay picks a uniformly random whole-second delay in
// [Min, Max], both bounds inclusive.
type UniformRandomDelay struct {
	Min time.Duration
	Max time.Duration
}

// NextDelay returns the next randomized pause.
func (p UniformRandomDelay) NextDelay() time.Duration {
	minSec := int64(p.Min / time.Second)
	maxSec := int64(p.Max / time.Second)
	if maxSec <= minSec {
		return p.Min
	}
	return time.Duration(minSec+rand.Int63n(maxSec-minSec+1)) * time.Second
}

// NoDelay disables pacing entirely; used by --no-sleep and tests.
type NoDelay struct{}

// NextDelay always returns zero.
func (NoDelay) NextDelay() time.Duration {
	return 0
}
