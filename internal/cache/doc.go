// Package cache provides a file-based cache with TTL expiration for fetched
// lists.
//
// Each entry is a JSON file in the cache directory (~/.quizadmin/cache by
// default) holding the raw response body plus creation and expiry times.
// Keys are built per screen, e.g. "score" or "subtopic/<topic id>", and are
// sanitized into file names. The cache is off unless enabled in config or
// with --cache-ttl; every mutation through the console invalidates the key
// of the list it touched.
package cache
