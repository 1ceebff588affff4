// Package export renders populated result sets into the response formats
// the list endpoints support: JSON passthrough, tab-separated values, and a
// downloadable PDF table.
package export

import "strings"

// Supported response media types.
const (
	MIMEJSON = "application/json"
	MIMETSV  = "text/tab-separated-values"
	MIMEPDF  = "application/pdf"
)

// Negotiate picks the response format. A contentType query override wins
// over the Accept header; anything unrecognized falls back to JSON so plain
// API clients never have to negotiate at all.
func Negotiate(override, accept string) string {
	switch strings.ToLower(strings.TrimSpace(override)) {
	case "json", MIMEJSON:
		return MIMEJSON
	case "csv", "tsv", MIMETSV:
		return MIMETSV
	case "pdf", MIMEPDF:
		return MIMEPDF
	}
	switch {
	case strings.Contains(accept, MIMEPDF):
		return MIMEPDF
	case strings.Contains(accept, MIMETSV):
		return MIMETSV
	default:
		return MIMEJSON
	}
}
