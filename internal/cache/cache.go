// Package cache memoizes category resolution during a population run.
// Workers resolve the same handful of category names for every record;
// the cache keeps repeated lookups off the hot path and is safe for
// concurrent use.
package cache

// Cache defines the interface for a resolution cache. Entries live for
// the duration of one run.
type Cache interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Clear()
}
