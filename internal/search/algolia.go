// internal/search/algolia.go
package search

import (
	"fmt"

	"github.com/algolia/algoliasearch-client-go/v3/algolia/opt"
	"github.com/algolia/algoliasearch-client-go/v3/algolia/search"

	"github.com/remoteestate/backend/internal/config"
)

type algoliaIndex struct {
	index *search.Index
}

// NewAlgoliaIndex builds the Algolia-backed port and pushes the index
// settings the listing search relies on. Returns an error when the
// collaborator rejects the settings call, so a misconfigured key is caught
// at startup rather than on the first write.
func NewAlgoliaIndex(cfg config.AlgoliaConfig) (Index, error) {
	client := search.NewClient(cfg.AppID, cfg.AdminAPIKey)
	index := client.InitIndex(cfg.IndexName)

	_, err := index.SetSettings(search.Settings{
		SearchableAttributes: opt.SearchableAttributes(
			"title",
			"description",
			"location",
			"property_type",
		),
		AttributesForFaceting: opt.AttributesForFaceting(
			"property_type",
			"currency",
			"status",
		),
		CustomRanking: opt.CustomRanking(
			"desc(created_at)",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to configure search index: %w", err)
	}

	return &algoliaIndex{index: index}, nil
}

func (a *algoliaIndex) SaveDocument(doc Document) error {
	if _, ok := doc["objectID"]; !ok {
		return fmt.Errorf("document is missing objectID")
	}
	_, err := a.index.SaveObject(doc)
	return err
}

func (a *algoliaIndex) DeleteDocument(objectID string) error {
	_, err := a.index.DeleteObject(objectID)
	return err
}

func (a *algoliaIndex) Search(query, filters string) ([]Document, int, error) {
	opts := []interface{}{opt.HitsPerPage(100)}
	if filters != "" {
		opts = append(opts, opt.Filters(filters))
	}

	res, err := a.index.Search(query, opts...)
	if err != nil {
		return nil, 0, err
	}

	hits := make([]Document, 0, len(res.Hits))
	for _, hit := range res.Hits {
		hits = append(hits, Document(hit))
	}

	return hits, int(res.NbHits), nil
}
