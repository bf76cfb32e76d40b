// Package models defines the platform resources exchanged with the events API and the persistence interfaces used by the local cache.
//
// The package contains two categories of types:
//
// 1. API resources, decoded from and encoded to the platform's JSON:
//   - [User], [UserProfile] : accounts, the signed-in profile and public profiles
//   - [Event], [Ticket], [Merch], [Media] : events and their nested sub-resources
//   - [Place] : venues with address and category data
//   - [Activity] : entries in the signed-in user's activity feed
//
// 2. Persistent entities implementing [Model]:
//   - [CachedResource] : the last fetched JSON copy of an event, place or profile
//
// Field names follow the API exactly (mixed snake_case and camelCase), so the
// JSON tags are the source of truth, not the Go names.
package models
