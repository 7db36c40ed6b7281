// Package main provides the entry point for the SalesQueen CLI.
//
// SalesQueen helps a web agency find a prospect, price a website for them,
// lay out the landing page and share the result.
//
// Usage:
//
//	salesqueen find "Pune" --industry bakery --claim 1
//	salesqueen estimate --type business --feature cms --timeline rush
//	salesqueen design add hero
//	salesqueen project show --format markdown
//
// See --help for all available options.
package main

func main() {
	Execute()
}
