// Package match finds a person's identity attributes inside page content.
//
// The Matcher normalizes HTML into a plain-text corpus, then checks each
// present profile attribute against it using attribute-specific rules:
// names and addresses support token-level partial matches, emails compare
// extracted address tokens, phones compare digit sequences. Each match
// carries a confidence, a match type, and a short context excerpt.
//
// Independently of attribute matching, the corpus is scanned for generic
// sensitive patterns (SSN, credit card, IP address, date). Those are
// reported as a separate side channel and never influence attribute
// confidence.
//
// A snippet-only fallback covers candidates whose page could not be
// fetched: it matches against the provider's title and snippet with fixed
// reduced confidences.
package match
