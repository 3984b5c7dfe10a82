// internal/search/fallback.go
package search

import (
	"regexp"
	"strings"

	"github.com/remoteestate/backend/internal/models"
)

var propertyTypeFilterRe = regexp.MustCompile(`property_type:"([^"]+)"|propertyType:"([^"]+)"`)

// PropertyTypeFilter extracts the property-type facet from an Algolia-style
// filter expression. Returns "" when the expression carries no such facet.
func PropertyTypeFilter(filters string) string {
	m := propertyTypeFilterRe.FindStringSubmatch(filters)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return m[1]
	}
	return m[2]
}

// FilterListings is the degraded-mode substring search used when the search
// collaborator is unconfigured or failing. It matches the query against
// title, description and location, then applies the property-type facet.
func FilterListings(listings []models.Listing, query, filters string) []models.Listing {
	lowerQuery := strings.ToLower(query)
	propertyType := PropertyTypeFilter(filters)

	results := make([]models.Listing, 0, len(listings))
	for _, listing := range listings {
		searchableText := strings.ToLower(listing.Title + " " + listing.Description + " " + listing.Location)
		if lowerQuery != "" && !strings.Contains(searchableText, lowerQuery) {
			continue
		}
		if propertyType != "" && listing.PropertyType != propertyType {
			continue
		}
		results = append(results, listing)
	}

	return results
}
