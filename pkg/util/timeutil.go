package util

import "time"

// Clock reports the current time. Services keep one so tests can pin it.
type Clock func() time.Time

// NowUTC is the production Clock.
func NowUTC() time.Time {
	return time.Now().UTC()
}
