// Package system provides a real clock implementation.
package system

import "time"

// Clock implements archive.Clock using time.Now.
type Clock struct{}

// New creates a new Clock.
func New() *Clock {
	return &Clock{}
}

// Now returns the current local time. The archive filename is derived from
// local wall-clock time, so no UTC conversion happens here.
func (Clock) Now() time.Time {
	return time.Now()
}
