package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"catalogo/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Catalog service — business logic over the catalog store
// ─────────────────────────────────────────────────────────────

// CatalogService loads, mutates and saves catalogs. Row mutations are a
// full-snapshot affair: every add/edit/delete/reorder re-serializes the
// whole rows array through one Replace call.
type CatalogService struct {
	store    domain.CatalogStore
	demoRows bool // inject sample rows into empty catalogs (display only)
	emitter  EventEmitter
}

func NewCatalogService(store domain.CatalogStore, demoRows bool, emitter EventEmitter) *CatalogService {
	return &CatalogService{store: store, demoRows: demoRows, emitter: emitter}
}

// List returns the catalogs visible to owner, with legacy rows migrated
// into the row model. Migration happens in memory on load; the migrated
// rows reach storage only when the caller saves.
func (s *CatalogService) List(ctx context.Context, owner string, admin bool) ([]domain.Catalog, error) {
	catalogs, err := s.store.List(ctx, owner, admin)
	if err != nil {
		return nil, err
	}

	for i := range catalogs {
		s.fillRows(&catalogs[i])
	}
	return catalogs, nil
}

// fillRows applies legacy migration and, when demo mode is on, the
// sample-row placeholder for completely empty catalogs.
func (s *CatalogService) fillRows(c *domain.Catalog) {
	if len(c.Rows) > 0 {
		return
	}
	if len(c.LegacyRows) > 0 {
		log.Printf("[CATALOG] %s: migrating %d legacy rows", c.ID, len(c.LegacyRows))
		c.Rows = MigrateLegacyRows(c)
		return
	}
	if s.demoRows && len(c.Columns) > 0 {
		c.Rows = SampleRows(c.Columns)
	}
}

// Create makes a new empty catalog owned by owner.
func (s *CatalogService) Create(ctx context.Context, name, description, owner string, columns []string) (*domain.Catalog, error) {
	if name == "" {
		return nil, fmt.Errorf("catalog name is required")
	}

	c, err := s.store.Create(ctx, name, description, owner, columns)
	if err != nil {
		return nil, err
	}
	s.emitter.Emit(ctx, "catalog:created", c.ID)
	return c, nil
}

// SaveRows replaces the catalog's full rows array. Rows that already
// have an original identity keep it untouched; only rows without one
// (brand new) are assigned a fresh identity. Regenerating an existing
// identity would make the row a new document on the next write.
func (s *CatalogService) SaveRows(ctx context.Context, c *domain.Catalog, rows []domain.Row) error {
	for i := range rows {
		if rows[i].OriginalID == "" {
			rows[i].OriginalID = uuid.New().String()
		}
	}
	c.Rows = rows
	c.LegacyRows = nil // consumed by migration, never written back

	if err := s.store.Replace(ctx, c); err != nil {
		return err
	}
	s.emitter.Emit(ctx, "catalog:saved", c.ID)
	return nil
}

// Rename updates the catalog's name and description.
func (s *CatalogService) Rename(ctx context.Context, c *domain.Catalog, name, description string) error {
	c.Name = name
	c.Description = description
	if err := s.store.Replace(ctx, c); err != nil {
		return err
	}
	s.emitter.Emit(ctx, "catalog:saved", c.ID)
	return nil
}

// Delete removes the catalog. Files its rows referenced stay in the
// object store.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.emitter.Emit(ctx, "catalog:deleted", id)
	return nil
}
