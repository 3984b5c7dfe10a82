// internal/handlers/search.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/remoteestate/backend/internal/config"
	"github.com/remoteestate/backend/internal/services"
	"github.com/remoteestate/backend/internal/utils"
)

type SearchHandler struct {
	listingService *services.ListingService
	algolia        config.AlgoliaConfig
}

func NewSearchHandler(listingService *services.ListingService, algolia config.AlgoliaConfig) *SearchHandler {
	return &SearchHandler{
		listingService: listingService,
		algolia:        algolia,
	}
}

// GET /search?q=...&filters=...
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	filters := c.Query("filters")

	result, err := h.listingService.SearchListings(query, filters)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"listings": result.Listings,
		"nbHits":   result.NbHits,
		"fallback": result.Fallback,
	})
}

// GET /algolia-config
// Hands the frontend the public search credentials. The admin key never
// leaves the server.
func (h *SearchHandler) AlgoliaConfig(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"enabled":      h.algolia.Enabled(),
		"appId":        h.algolia.AppID,
		"searchApiKey": h.algolia.SearchAPIKey,
		"indexName":    h.algolia.IndexName,
	})
}
