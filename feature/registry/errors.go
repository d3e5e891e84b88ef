package registry

import "fmt"

// TransportError indicates a page fetch failed: the endpoint was
// unreachable, timed out, returned a non-success status, or sent a body
// that could not be decoded. It aborts the run; individual pages are never
// retried.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StorageError indicates provisioning, an upsert, or run bookkeeping
// failed. It aborts the run.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// MalformedPageError indicates a response parsed as JSON but is missing the
// expected results collection. Unlike the other error kinds it is not
// fatal: the fetcher degrades the page to an empty one and the run
// continues.
type MalformedPageError struct {
	Page   int
	Reason string
}

func (e *MalformedPageError) Error() string {
	return fmt.Sprintf("malformed page %d: %s", e.Page, e.Reason)
}
