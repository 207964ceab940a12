// Package fetch retrieves candidate pages for matching.
//
// The Fetcher wraps an HTTP client with retry, per-attempt timeouts,
// bounded body reads, and user-agent rotation. Failures are classified
// into two sentinel errors so callers can distinguish a page that does
// not exist (ErrNotFound) from one that could not be reached right now
// (ErrUnavailable); the scanner falls back to snippet-only matching in
// either case rather than failing the scan.
//
// Fetches can optionally be routed through a SOCKS5 proxy so that a scan
// does not reveal the operator's address to the pages it inspects.
package fetch
