package fetch

import "errors"

var (
	// ErrNotFound is returned when the target page responds with a status
	// indicating the content does not exist (404, 410). Not retryable.
	ErrNotFound = errors.New("page not found")

	// ErrUnavailable is returned when the target page could not be fetched
	// for a transient reason: connection failure, timeout, or a 5xx or
	// rate-limit status. Retryable up to the configured attempt budget.
	ErrUnavailable = errors.New("page unavailable")

	// ErrInvalidProxyAddress is returned when the SOCKS5 proxy address is
	// not in "host:port" format.
	ErrInvalidProxyAddress = errors.New("invalid proxy address: must be in host:port format")

	// ErrInvalidURL is returned when the candidate URL cannot be parsed or
	// uses a non-HTTP scheme.
	ErrInvalidURL = errors.New("invalid candidate URL")
)
