package summary

import "time"

const cacheKeyPrefix = "summary:daily:"

// CacheKey returns the Redis key holding the cached tallies for a calendar
// day. Exported so the directory and ledger can invalidate it on writes.
func CacheKey(day time.Time) string {
	return cacheKeyPrefix + day.Format("2006-01-02")
}
