// Package input loads materialised lookup results from YAML or JSON files.
//
// The site-query engine that produces these results runs elsewhere; this
// package only turns its saved output into model.TargetRow values. Because
// YAML is a superset of JSON, a single decoder handles both encodings.
//
// A result file is a list of targets:
//
//	- target: example.com
//	  observable_type: fqdn
//	  observable_type_detected: fqdn
//	  outcomes:
//	    - site: Passive DNS
//	      error: connection refused
//	    - site: Blocklist
//	    - site: Whois
//	      results:
//	        - pretty_name: Registrar
//	          values:
//	            - {name: registrar, value: Example Inc}
//
// An outcome with an error key is a failed site; one with results is a
// successful lookup; anything else is an empty answer.
//
// Files may be UTF-8 or UTF-16 with a byte order mark. Loader decodes
// several files concurrently and returns their rows in path order.
package input
