// Package store defines the persistence contracts for users and cards.
//
// Implementations classify driver failures into the sentinel errors declared
// in errors.go so that callers never need to inspect driver-specific errors.
// The PostgreSQL implementation lives in internal/platform/postgres.
package store
