// Package sqlite provides a SQLite-based implementation of driven.MechanismStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. A snapshot is one mechanisms row plus its ordered species
// and reactions rows; reaction terms are stored as JSON.
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.kpptag/data/mechanisms.db
package sqlite
