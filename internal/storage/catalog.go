package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"catalogo/internal/domain"
)

// CatalogStore implements domain.CatalogStore on a document collection.
type CatalogStore struct {
	coll Collection
}

func NewCatalogStore(coll Collection) *CatalogStore {
	return &CatalogStore{coll: coll}
}

// List returns the catalogs visible to owner. Catalogs that fail to
// decode are logged and omitted; the call still succeeds with the rest.
func (s *CatalogStore) List(ctx context.Context, owner string, admin bool) ([]domain.Catalog, error) {
	filter := bson.M{}
	if !admin {
		filter = bson.M{"$or": []bson.M{
			{"Owner": owner},
			{"CreatedBy": owner},
		}}
	}

	docs, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list catalogs: %w", err)
	}

	var catalogs []domain.Catalog
	for _, doc := range docs {
		c, err := decodeCatalogDoc(doc)
		if err != nil {
			log.Printf("[CATALOG] skipping undecodable catalog: %v", err)
			continue
		}
		// The decoded Owner already folds in the CreatedBy fallback;
		// enforce it here so no fallback path widens access.
		if !admin && c.Owner != owner {
			continue
		}
		catalogs = append(catalogs, *c)
	}
	return catalogs, nil
}

// Create writes a new catalog with no rows and returns it as constructed
// from the inputs (not re-read from the store).
func (s *CatalogStore) Create(ctx context.Context, name, description, owner string, columns []string) (*domain.Catalog, error) {
	now := time.Now()
	oid := bson.NewObjectID()

	c := &domain.Catalog{
		ID:          oid.Hex(),
		Name:        name,
		Description: description,
		Owner:       owner,
		Columns:     append([]string(nil), columns...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.coll.InsertOne(ctx, encodeCatalogDoc(c, oid)); err != nil {
		return nil, fmt.Errorf("create catalog: %w", err)
	}
	return c, nil
}

// Replace writes name, description, columns and the full rows array.
// This is the only write path for row mutations: callers re-serialize
// the entire rows snapshot on every row-level change, and concurrent
// replaces follow last-writer-wins.
func (s *CatalogStore) Replace(ctx context.Context, c *domain.Catalog) error {
	oid, err := bson.ObjectIDFromHex(c.ID)
	if err != nil {
		return fmt.Errorf("%w: catalog id %q", domain.ErrInvalidReference, c.ID)
	}

	c.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"Name":        c.Name,
		"Description": c.Description,
		"Headers":     toBsonStrings(c.Columns),
		"Rows":        encodeRows(c.Rows),
		"UpdatedAt":   c.UpdatedAt,
	}}

	if _, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, update); err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}
	return nil
}

// Delete removes the catalog document. Hard delete: no tombstone, and
// objects the rows referenced stay in the object store.
func (s *CatalogStore) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: catalog id %q", domain.ErrInvalidReference, id)
	}

	deleted, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete catalog: %w", err)
	}
	if deleted == 0 {
		return fmt.Errorf("%w: catalog %s", domain.ErrNotFound, id)
	}
	return nil
}
