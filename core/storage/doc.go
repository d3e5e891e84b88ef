// Package storage provides the object storage client used for raw page
// archival.
//
// The ingestion job can optionally write every fetched page body to a
// bucket, exactly as the source returned it, so that a failed or disputed
// run can be replayed and diagnosed offline. The Client interface abstracts
// the Minio SDK so tests can substitute a mock (see the mocks subpackage).
package storage
