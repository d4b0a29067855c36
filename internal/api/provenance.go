package api

import (
	"strings"

	"shopsync/internal/shopify"
)

const storefrontMarker = "shopscope"

// FromStorefront reports whether the order event originated in our own
// storefront flow. The check is a case-insensitive substring match over
// the vendor's source fields; it is heuristic and known to be fuzzy,
// which is why non-matching events are skipped with a 200 rather than
// rejected.
func FromStorefront(o *shopify.Order) bool {
	fields := []string{
		o.SourceName,
		o.SourceIdentifier,
		o.LandingSite,
		o.ReferringSite,
	}
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), storefrontMarker) {
			return true
		}
	}
	return false
}
