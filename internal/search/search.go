// internal/search/search.go
package search

// Package search wraps the external search collaborator behind a small port.
// The concrete index is chosen once at startup: when Algolia credentials are
// configured an Algolia-backed index is injected, otherwise the port stays
// nil and callers fall back to filtering the record store directly.

// Document is a listing flattened for indexing.
type Document map[string]interface{}

// Index is the capability port for the search collaborator.
type Index interface {
	// SaveDocument upserts a listing document. Callers treat failures as
	// non-fatal: indexing is best-effort and must never fail a write.
	SaveDocument(doc Document) error

	// DeleteDocument removes a listing from the index.
	DeleteDocument(objectID string) error

	// Search runs a full-text query with an optional Algolia-style filter
	// expression and returns raw hits.
	Search(query, filters string) ([]Document, int, error)
}
