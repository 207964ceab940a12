// Package config holds the immutable configuration for exposurescan.
//
// All tunables (timeouts, delays, retry caps, worker limits, user-agent
// pool, domain token lists) live in a single Config value created once and
// passed into every component constructor. Nothing in this package is
// process-wide mutable state; scans never share configuration implicitly.
package config
