// Package search discovers candidate pages that may mention an identity.
//
// A Provider wraps one external source (a search engine scraped over
// HTML, or a platform queried over its JSON API) behind a uniform search
// capability. The Registry holds the configured providers in registration
// order, and the Aggregator fans a query out to all of them concurrently,
// isolating per-provider failures and merging the outputs into one
// deduplicated candidate list.
//
// Engine providers page through results with a fixed inter-page delay and
// back off exponentially when an engine signals rate limiting; a page
// that stays rate limited past the retry cap is abandoned and the results
// gathered so far are kept.
package search
