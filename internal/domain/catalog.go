package domain

import (
	"context"
	"time"
)

// Catalog is a named, owned collection of columns and rows.
// Columns defines the canonical field set for every row's Data map,
// but stored rows may carry extra keys (columns removed later) or miss
// keys (columns added later) — the mapper levels this out on load.
type Catalog struct {
	ID          string    `json:"id"` // 24-hex document id
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Owner       string    `json:"owner"`
	Columns     []string  `json:"columns"` // order-significant
	Rows        []Row     `json:"rows"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// LegacyRows holds the pre-migration flat representation. Only
	// populated when a stored catalog predates the row model; consumed
	// once by the migrator and never written back.
	LegacyRows []map[string]string `json:"legacyRows,omitempty"`
}

// Row is one record within a catalog.
//
// A row carries two identities. ID is internal, regenerated freely, and
// never leaves the process. OriginalID is the storage correlation key:
// it must be carried forward unchanged on every re-save, or the row is
// written as a new document on the next replace (duplicate risk). Only
// brand-new rows get a fresh OriginalID.
type Row struct {
	ID         string            `json:"id"`
	OriginalID string            `json:"originalId"`
	Data       map[string]string `json:"data"`
	Files      RowFiles          `json:"files"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// RowFiles holds the file associations of a row: one primary slot per
// category plus a parallel list of additional files per category.
// A list entry does not have to relate to its primary slot.
type RowFiles struct {
	Image           string   `json:"image"`
	Images          []string `json:"images"`
	Document        string   `json:"document"`
	Documents       []string `json:"documents"`
	Multimedia      string   `json:"multimedia"`
	MultimediaFiles []string `json:"multimediaFiles"`
}

// NewRow creates an empty row with fresh identities and current timestamps.
func NewRow(internalID, originalID string) Row {
	now := time.Now()
	return Row{
		ID:         internalID,
		OriginalID: originalID,
		Data:       map[string]string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// CatalogStore is the persistence contract for catalogs.
type CatalogStore interface {
	// List returns the catalogs visible to owner. Admin callers see
	// every catalog; everyone else sees only their own.
	List(ctx context.Context, owner string, admin bool) ([]Catalog, error)

	// Create writes a new, empty catalog and returns it.
	Create(ctx context.Context, name, description, owner string, columns []string) (*Catalog, error)

	// Replace writes name, description, columns and the full rows array
	// of the catalog. This is the only write path for row mutations:
	// last writer wins, no merge.
	Replace(ctx context.Context, c *Catalog) error

	// Delete removes the catalog document. Hard delete; objects the
	// rows referenced in the object store are not cleaned up.
	Delete(ctx context.Context, id string) error
}
