// Package clock adapts the time package to ports.Clock.
package clock

import (
	"time"

	"github.com/felixgeelhaar/sanaguide/internal/ports"
)

// Real is the wall clock.
type Real struct{}

// New returns the wall clock.
func New() Real {
	return Real{}
}

// Now implements ports.Clock.
func (Real) Now() time.Time {
	return time.Now()
}

// AfterFunc implements ports.Clock.
func (Real) AfterFunc(d time.Duration, f func()) ports.Timer {
	return time.AfterFunc(d, f)
}

var _ ports.Clock = Real{}
