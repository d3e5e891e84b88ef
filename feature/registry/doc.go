// Package registry implements the company-registry ingestion job.
//
// The job pulls a paginated dataset of company registrations from a remote
// JSON API and reconciles it into the companies table so that repeated runs
// converge to the same state: each record is fingerprinted over its tracked
// fields, and a row is only written when the fingerprint differs from what
// is already persisted. Every invocation is recorded in the ingest_runs
// table with aggregate insert/update/unchanged counts.
//
// # Reconciliation modes
//
// Two modes are supported, selected via source.mode:
//
//   - identity (default): rows are keyed by registration number. New keys
//     insert, changed fingerprints update in place, matching fingerprints
//     are a no-op that leaves fetched_at untouched.
//   - checksum: for sources without a stable identity field. Rows are keyed
//     by fingerprint alone: unseen fingerprints insert, seen ones are
//     skipped. This mode cannot update a row in place and cannot tell
//     "unchanged" apart from "duplicate content under another identity";
//     use it only when the source offers no reliable registration number.
//
// # Failure model
//
// A transport or database error aborts the whole run; there is no per-page
// retry. The run record always reaches a terminal state (ok or error)
// before the process exits, so an external supervisor can simply re-invoke
// the job after a backoff.
package registry
