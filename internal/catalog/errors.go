package catalog

import "errors"

var (
	// ErrNoEndpoint means the client was built without an API URL.
	ErrNoEndpoint = errors.New("catalog: no API endpoint configured")

	// ErrFetchFailed wraps the last transport error after retries ran out.
	ErrFetchFailed = errors.New("catalog: fetch failed")

	// ErrBadDocument means the endpoint returned something that is not a
	// catalog document.
	ErrBadDocument = errors.New("catalog: malformed document")
)
