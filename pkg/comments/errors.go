package comments

import "errors"

var (
	// ErrKeyFetcherMissing is returned when comments are enabled but no
	// FrontendKeyFetcher was configured.
	ErrKeyFetcherMissing = errors.New("comments: frontend key fetcher not configured")
	// ErrEmptyKey is returned when the fetcher succeeds with a blank key.
	ErrEmptyKey = errors.New("comments: frontend key is empty")
)
