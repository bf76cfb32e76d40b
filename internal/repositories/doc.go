// Package repositories implements SQLite persistence for the client's local state.
//
// Key Implementations:
//   - [LocalStorage] : a key/value table mirroring the browser's per-origin storage (token, user, userProfile)
//   - [CacheRepository] : the last fetched JSON copy of events, places and profiles
//
// Sequence numbers provide stable, human-readable ordering for cache entries independent of UUIDs and timestamps.
// [NextSequence] atomically increments per-table counters kept in dedicated sequence tables.
package repositories
