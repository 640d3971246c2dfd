// Package database manages the SQLite connection and schema migrations.
//
// Migrations are embedded via the migrations package and applied in
// version order on startup. SQLite is configured for a single writer
// with WAL mode for concurrent reads.
package database
