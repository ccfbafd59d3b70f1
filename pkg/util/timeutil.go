package util

import "time"

// NowUTC normalizes the wall clock so session bookkeeping and report export
// dates agree regardless of server timezone.
func NowUTC() time.Time {
	return time.Now().UTC()
}
