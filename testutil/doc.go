// Package testutil provides deterministic helpers for tests: a seeded,
// thread-safe random source and generators for similarity relations.
package testutil
