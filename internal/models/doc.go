// Package models defines domain entities and persistence interfaces for the stratos replay viewer.
//
// The package contains two categories of types:
//
// 1. Match data: immutable values loaded once from the data provider
//   - [Sample] : One tracked position inside a freeze frame
//   - [Event] : Tagged variant over [Pass], [Shot] and [Other] match actions
//   - [Match] : Fixture metadata used to pick the replayed match
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [CacheEntry] : Raw provider payloads cached to avoid refetching open data
//
// All persistent entities implement the [Model] interface providing ID generation, timestamps and validation.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
