// Package database manages the relational storage connection.
//
// It wraps GORM connection setup for the supported drivers (MySQL for
// production deployments, SQLite for local runs and tests) and applies
// conservative pool and timeout settings.
//
// The ingestion job acquires a single connection handle at run start and
// holds it for the run's entire duration; Close releases the pool on every
// exit path.
package database
