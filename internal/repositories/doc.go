// Package repositories implements SQLite persistence for cached provider payloads.
//
//   - [CacheRepository] : [models.Repository] for [models.CacheEntry] with (kind, key) lookups
//   - [CacheAdapter] : the lookup/store interface the provider sources consume
//
// Sequence numbers provide stable, human-readable ordering independent of UUIDs and creation
// timestamps. [NextSequence] atomically increments per-table counters kept in sequence tables.
package repositories
