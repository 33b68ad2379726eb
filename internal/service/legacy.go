package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"

	"catalogo/internal/domain"
)

// MigrateLegacyRows converts a catalog's pre-row-model flat maps into
// rows. Each flat map is copied verbatim into Data; identities and
// timestamps are fresh. The catalog itself is not modified.
func MigrateLegacyRows(c *domain.Catalog) []domain.Row {
	rows := make([]domain.Row, 0, len(c.LegacyRows))
	now := time.Now()

	for _, flat := range c.LegacyRows {
		row := domain.NewRow(bson.NewObjectID().Hex(), uuid.New().String())
		row.CreatedAt = now
		row.UpdatedAt = now
		for k, v := range flat {
			row.Data[k] = v
		}
		rows = append(rows, row)
	}
	return rows
}

// SampleRows generates deterministic placeholder rows, one per column,
// for the empty-catalog demo state. Display-only: nothing here is meant
// to reach storage, which is why the service gates it behind an explicit
// demo flag instead of producing samples unconditionally.
func SampleRows(columns []string) []domain.Row {
	rows := make([]domain.Row, 0, len(columns))
	now := time.Now()

	for i := range columns {
		row := domain.NewRow(bson.NewObjectID().Hex(), uuid.New().String())
		row.CreatedAt = now
		row.UpdatedAt = now
		for _, col := range columns {
			row.Data[col] = fmt.Sprintf("%s %d", col, i+1)
		}
		rows = append(rows, row)
	}
	return rows
}
