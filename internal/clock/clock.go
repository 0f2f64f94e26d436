package clock

import "time"

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }

// Expired reports whether deadline is set and not after Now.
func Expired(deadline time.Time) bool {
	return !deadline.IsZero() && !Now().Before(deadline)
}
