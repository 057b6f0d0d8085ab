// Package cache provides the bounded LRU cache behind the per-job lookup
// tables: device font requests keyed by face and transform, and transform
// decompositions keyed by matrix.
//
//	c := cache.New[string, int](100)
//	c.Set("key", 42)
//	v, ok := c.Get("key")
//
// Entries are only ever added or replaced, never mutated in place, so a
// value returned by Get may be shared between readers.
package cache
