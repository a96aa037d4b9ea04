// Package snapshot persists each household's last-known-authoritative
// inventory in Postgres so a restarted service can answer reads before its
// first refresh.
//
// The cache is a copy, never a source of truth: a household's rows are
// replaced wholesale on every Save and nothing here talks to the item API.
package snapshot
