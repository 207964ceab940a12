package scan

import "errors"

var (
	// ErrNilProfile is returned when Scan receives a nil profile.
	ErrNilProfile = errors.New("identity profile is nil")

	// ErrNoProviders is returned when the effective options select no
	// registered providers at all.
	ErrNoProviders = errors.New("no search providers selected")
)
