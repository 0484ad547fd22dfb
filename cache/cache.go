// Package cache provides translated-text cache implementations.
//
// Keys are produced by lingopack.CacheKey: text hash plus the resolved
// source/target pair.
package cache

// TranslationCache is the interface for caching translated text.
type TranslationCache interface {
	// Get retrieves a cached translation. Returns empty string and false if
	// not found or expired.
	Get(key string) (string, bool)

	// Set stores a translation in the cache.
	Set(key string, value string) error
}
