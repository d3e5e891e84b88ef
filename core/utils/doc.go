// Package utils provides common utility functions for registry-ingest.
// It includes permissive type conversion helpers used when decoding
// untrusted source JSON, where every field access must degrade to a
// well-defined default instead of failing.
package utils
