// Package mocks provides centralized mock implementations for testing.
//
// Each mock implements one of the application's store or auth interfaces
// with an in-memory default behavior, plus per-method function fields that
// tests can set to override behavior for a single case. Defining them here
// rather than inline keeps mock semantics consistent across test packages.
package mocks
