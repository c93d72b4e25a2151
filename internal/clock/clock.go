// Package clock abstracts wall-clock time so freshness stamps and
// signed-URL expiries are testable.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
