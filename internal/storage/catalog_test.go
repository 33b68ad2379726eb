package storage

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"

	"catalogo/internal/domain"
)

func TestCatalogStoreCreateAndList(t *testing.T) {
	coll := NewMemCollection()
	store := NewCatalogStore(coll)
	ctx := context.Background()

	c, err := store.Create(ctx, "Stamps", "desc", "u1", []string{"Country", "Year"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(c.ID) != 24 {
		t.Errorf("id = %q, want 24-hex", c.ID)
	}
	if len(c.Rows) != 0 {
		t.Errorf("new catalog has rows: %v", c.Rows)
	}

	catalogs, err := store.List(ctx, "u1", false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(catalogs) != 1 || catalogs[0].Name != "Stamps" {
		t.Fatalf("list = %+v", catalogs)
	}
	if got := catalogs[0].Columns; len(got) != 2 || got[0] != "Country" {
		t.Errorf("columns = %v", got)
	}
}

func TestCatalogStoreListFiltersByOwner(t *testing.T) {
	coll := NewMemCollection()
	store := NewCatalogStore(coll)
	ctx := context.Background()

	if _, err := store.Create(ctx, "Mine", "", "u1", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Create(ctx, "Theirs", "", "u2", nil); err != nil {
		t.Fatal(err)
	}

	catalogs, err := store.List(ctx, "u1", false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, c := range catalogs {
		if c.Owner != "u1" {
			t.Errorf("non-admin list leaked catalog owned by %q", c.Owner)
		}
	}
	if len(catalogs) != 1 {
		t.Errorf("list = %d catalogs, want 1", len(catalogs))
	}

	all, err := store.List(ctx, "u1", true)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("admin list = %d catalogs, want 2", len(all))
	}
}

func TestCatalogStoreListSkipsUndecodable(t *testing.T) {
	coll := NewMemCollection()
	store := NewCatalogStore(coll)
	ctx := context.Background()

	if _, err := store.Create(ctx, "Good", "", "u1", nil); err != nil {
		t.Fatal(err)
	}
	// a document without a valid id cannot be decoded
	coll.InsertOne(ctx, bson.M{"Name": "Broken", "Owner": "u1"})

	catalogs, err := store.List(ctx, "u1", false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(catalogs) != 1 || catalogs[0].Name != "Good" {
		t.Errorf("list = %+v, want only the decodable catalog", catalogs)
	}
}

func TestCatalogStoreReplaceLastWriterWins(t *testing.T) {
	coll := NewMemCollection()
	store := NewCatalogStore(coll)
	ctx := context.Background()

	c, err := store.Create(ctx, "Stamps", "", "u1", []string{"Name"})
	if err != nil {
		t.Fatal(err)
	}

	first := []domain.Row{{OriginalID: "row-a", Data: map[string]string{"Name": "A"}}}
	second := []domain.Row{
		{OriginalID: "row-b", Data: map[string]string{"Name": "B"}},
		{OriginalID: "row-c", Data: map[string]string{"Name": "C"}},
	}

	c.Rows = first
	if err := store.Replace(ctx, c); err != nil {
		t.Fatalf("first replace: %v", err)
	}
	c.Rows = second
	if err := store.Replace(ctx, c); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	catalogs, err := store.List(ctx, "u1", false)
	if err != nil {
		t.Fatal(err)
	}
	rows := catalogs[0].Rows
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2 (no merge with first write)", len(rows))
	}
	if rows[0].OriginalID != "row-b" || rows[1].OriginalID != "row-c" {
		t.Errorf("rows = %+v, want the second snapshot only", rows)
	}
}

func TestCatalogStoreReplaceBadID(t *testing.T) {
	store := NewCatalogStore(NewMemCollection())
	err := store.Replace(context.Background(), &domain.Catalog{ID: "nope"})
	if !errors.Is(err, domain.ErrInvalidReference) {
		t.Errorf("err = %v, want ErrInvalidReference", err)
	}
}

func TestCatalogStoreDelete(t *testing.T) {
	coll := NewMemCollection()
	store := NewCatalogStore(coll)
	ctx := context.Background()

	c, err := store.Create(ctx, "Stamps", "", "u1", nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Delete(ctx, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, c.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestCatalogStoreSurfacesStoreErrors(t *testing.T) {
	coll := NewMemCollection()
	coll.Err = errors.New("boom")
	store := NewCatalogStore(coll)
	ctx := context.Background()

	if _, err := store.List(ctx, "u1", false); err == nil {
		t.Error("list: want error")
	}
	if _, err := store.Create(ctx, "X", "", "u1", nil); err == nil {
		t.Error("create: want error")
	}
}
