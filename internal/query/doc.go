// Package query plans the ordered, deduplicated search queries derived
// from an identity profile.
package query
