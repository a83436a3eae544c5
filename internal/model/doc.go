// Package model defines the result data consumed by the report renderers.
//
// This package contains the following main types:
//   - TargetRow: One observable submitted for enrichment and its site outcomes
//   - SiteOutcome: One site's response, in exactly one of three states
//   - ResultItem: One finding returned by a site
//   - Field: One named value inside a finding
//
// Design decision: We separate models into their own package so that the
// input loader, the renderers, and the history store can share the types
// without import cycles. The tree is built upstream and is never mutated
// by the renderers.
package model
