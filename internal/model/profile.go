package model

import (
	"errors"
	"sort"
	"strings"
)

// Identity attribute names recognized in a Profile.
// Only these four attributes participate in query planning and matching;
// unknown keys are carried through but otherwise ignored.
const (
	// AttributeName is the person's full name.
	AttributeName = "name"

	// AttributeEmail is the person's email address.
	AttributeEmail = "email"

	// AttributePhone is the person's phone number, in any common format.
	AttributePhone = "phone"

	// AttributeAddress is the person's physical address.
	AttributeAddress = "address"
)

// KnownAttributes lists the recognized attribute names in a fixed order.
// The order matters for deterministic iteration (query planning, summaries).
var KnownAttributes = []string{
	AttributeName,
	AttributeEmail,
	AttributePhone,
	AttributeAddress,
}

// ErrEmptyProfile is returned when a profile contains no non-empty identity
// attribute. A scan is rejected with this error before any network activity.
var ErrEmptyProfile = errors.New("identity profile is empty: at least one of name, email, phone, or address is required")

// Profile is the caller-supplied identity being searched for.
// It maps attribute names to their values and is treated as immutable for
// the duration of a scan.
//
// Design decision: We use a map rather than a struct with four fields
// because matching and summary code iterates attributes generically, and
// the report contract echoes the profile back as a JSON object keyed by
// attribute name.
type Profile map[string]string

// Get returns the trimmed value of the given attribute, or the empty string
// if the attribute is absent.
func (p Profile) Get(attribute string) string {
	return strings.TrimSpace(p[attribute])
}

// Has reports whether the attribute is present with a non-empty value.
func (p Profile) Has(attribute string) bool {
	return p.Get(attribute) != ""
}

// Validate checks that at least one known attribute is present and non-empty.
// It returns ErrEmptyProfile otherwise.
func (p Profile) Validate() error {
	for _, attr := range KnownAttributes {
		if p.Has(attr) {
			return nil
		}
	}
	return ErrEmptyProfile
}

// Attributes returns the known attributes present in the profile, in the
// fixed KnownAttributes order.
func (p Profile) Attributes() []string {
	attrs := make([]string, 0, len(KnownAttributes))
	for _, attr := range KnownAttributes {
		if p.Has(attr) {
			attrs = append(attrs, attr)
		}
	}
	return attrs
}

// Clone returns a copy of the profile. Callers that need to hold a profile
// beyond the scope of a request should clone it to preserve immutability.
func (p Profile) Clone() Profile {
	clone := make(Profile, len(p))
	for k, v := range p {
		clone[k] = v
	}
	return clone
}

// Fingerprint returns a stable string representation of the profile used
// for scan-id derivation. Keys are sorted so that equal profiles always
// produce equal fingerprints.
func (p Profile) Fingerprint() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(p[k])
		b.WriteString(";")
	}
	return b.String()
}
