// Package main provides the entry point for the exposurescan CLI.
//
// exposurescan searches the open web for exposed personal information.
// Given an identity (name, email, phone, address), it plans search
// queries, collects candidate pages from search engines and platforms,
// and scores each page by how much of the identity it exposes.
//
// Usage:
//
//	exposurescan scan --name "John Smith" --email john@example.com
//	exposurescan scan -c myprofile.yaml
//
// See --help for all available options.
package main

// main is the entry point for exposurescan.
func main() {
	Execute()
}
