// Package main provides the entry point for the seoaudit CLI.
//
// seoaudit audits the titles and meta descriptions of a site crawl export
// for duplicated content, and reports the phrases most often repeated
// across page types.
//
// Usage:
//
//	seoaudit analyze crawl.csv
//	seoaudit analyze --format markdown -o report.md crawl.csv
//
// See --help for all available options.
package main

// main is the entry point for seoaudit.
func main() {
	Execute()
}
