package search

import "errors"

var (
	// ErrUnknownProvider is returned when a requested provider name is not
	// registered.
	ErrUnknownProvider = errors.New("unknown search provider")

	// ErrRateLimited is returned by a provider page request when the
	// source signals rate limiting. The provider retries with backoff
	// before surfacing it.
	ErrRateLimited = errors.New("provider rate limited")

	// ErrProviderRequest is returned when a provider request fails for
	// any non-rate-limit reason.
	ErrProviderRequest = errors.New("provider request failed")
)
