// Package store defines the persistence contracts for the application's
// entities, the query value objects shared by every store, and the
// transaction helper that gives each request a single unit of work.
package store
