// Package main provides the entry point for the obsreport CLI.
//
// obsreport renders the results of observable lookups (domains, IPs, URLs,
// hashes, emails) gathered from many external sites. It supports a colored
// human-readable report, a defanged variant that is safe to paste into
// tickets, JSON lines, and a one-line-per-site summary.
//
// Usage:
//
//	obsreport render -i results.yaml
//	obsreport render -i results.yaml -f D -o report.txt
//
// See --help for all available options.
package main

// main is the entry point for obsreport.
func main() {
	Execute()
}
