package service_test

import (
	"testing"

	"catalogo/internal/domain"
	"catalogo/internal/service"
)

func TestMigrateLegacyRows(t *testing.T) {
	c := &domain.Catalog{
		Columns: []string{"Country", "Year"},
		LegacyRows: []map[string]string{
			{"Country": "PT", "Year": "1950"},
			{"Country": "ES", "Extra": "kept"},
		},
	}

	rows := service.MigrateLegacyRows(c)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	// flat maps copied verbatim, extra keys included
	if rows[0].Data["Country"] != "PT" || rows[0].Data["Year"] != "1950" {
		t.Errorf("row 0 data = %v", rows[0].Data)
	}
	if rows[1].Data["Extra"] != "kept" {
		t.Errorf("row 1 data = %v", rows[1].Data)
	}

	for i, r := range rows {
		if r.ID == "" || r.OriginalID == "" {
			t.Errorf("row %d missing identities: %+v", i, r)
		}
		if r.CreatedAt.IsZero() || r.UpdatedAt.IsZero() {
			t.Errorf("row %d missing timestamps", i)
		}
		if r.Files.Image != "" || len(r.Files.Images) != 0 {
			t.Errorf("row %d files not empty: %+v", i, r.Files)
		}
	}

	if rows[0].OriginalID == rows[1].OriginalID {
		t.Error("migrated rows share an original identity")
	}

	// the catalog itself is untouched
	if len(c.Rows) != 0 || len(c.LegacyRows) != 2 {
		t.Errorf("catalog mutated: %+v", c)
	}
}

func TestSampleRows(t *testing.T) {
	rows := service.SampleRows([]string{"A", "B", "C"})
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want one per column", len(rows))
	}
	for i, r := range rows {
		for _, col := range []string{"A", "B", "C"} {
			if r.Data[col] == "" {
				t.Errorf("row %d missing value for %q", i, col)
			}
		}
	}
	// labelled with an index, so rows differ
	if rows[0].Data["A"] == rows[1].Data["A"] {
		t.Errorf("sample rows not index-labelled: %v vs %v", rows[0].Data, rows[1].Data)
	}
}
