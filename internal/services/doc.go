// Package services fetches match data from a StatsBomb-style open-data provider.
//
// # Sources
//
// A [Source] returns raw payloads by provider path ("matches/43/106.json", "events/3869151.json",
// "three-sixty/3869151.json"):
//   - [HTTPSource] : GETs paths below a base URL through a token-bucket rate limiter
//   - [DirSource] : reads paths from a local checkout of the open-data repository
//   - [CachedSource] : serves payloads from a [Cache] and fills it on a miss
//
// # Provider
//
// [StatsBomb] implements [Provider] on top of any [Source]. Tracking frames come from 360 freeze
// frames, flattened to one [models.Sample] per freeze-frame entry keyed by the event id.
// Matches without 360 data report [shared.ErrTrackingUnavailable].
//
// # Preprocessing
//
// [NormalizeEvents] projects raw event rows into the [models.Pass], [models.Shot] and
// [models.Other] variants, splitting "location" and "pass.end_location" into points. Malformed
// coordinates become nil points so the overlay can skip them.
//
// # Error Handling
//
//   - [shared.ErrNotFound] : the path does not exist at the source
//   - [shared.ErrAPIRequest] : transport failure or unexpected status
//   - [shared.ErrMalformedPayload] : the payload is not the expected JSON shape
//   - [shared.ErrTrackingUnavailable] : no 360 data for the match
package services
