package storage

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"

	"catalogo/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Document mapper — Catalog ⇄ stored document
//
// Field names are part of the persisted contract and must stay stable
// for interop with existing data. Several of them (Fecha, DocumentoUrl,
// ImagenUrl, Miniatura) are legacy fields carried from earlier versions:
// they are read leniently but never required.
// ─────────────────────────────────────────────────────────────

// encodeCatalogDoc builds the full stored document for a catalog.
func encodeCatalogDoc(c *domain.Catalog, oid bson.ObjectID) bson.M {
	return bson.M{
		"_id":         oid,
		"Name":        c.Name,
		"Description": c.Description,
		"Category":    "", // reserved
		"Owner":       c.Owner,
		"CreatedBy":   c.Owner,
		"Headers":     toBsonStrings(c.Columns),
		"Rows":        encodeRows(c.Rows),
		"Fecha":       c.CreatedAt,
		"CreatedAt":   c.CreatedAt,
		"UpdatedAt":   c.UpdatedAt,
	}
}

// encodeRows serializes the full rows array. Every row-level change goes
// through this: there is no per-row update on the wire.
func encodeRows(rows []domain.Row) bson.A {
	out := bson.A{}
	for _, r := range rows {
		out = append(out, encodeRowDoc(r))
	}
	return out
}

// encodeRowDoc writes one row document. The stored "id" is the row's
// original identity; a row that never got one (brand new) is assigned a
// fresh lowercase UUID here, which then must be carried forward on every
// later save.
func encodeRowDoc(r domain.Row) bson.M {
	id := r.OriginalID
	if id == "" {
		id = uuid.New().String()
	}

	data := bson.M{}
	for k, v := range r.Data {
		data[k] = v
	}

	return bson.M{
		"id":   id,
		"Data": data,
		"Files": bson.M{
			"Image":           r.Files.Image,
			"Images":          toBsonStrings(r.Files.Images),
			"Document":        r.Files.Document,
			"Documents":       toBsonStrings(r.Files.Documents),
			"Multimedia":      r.Files.Multimedia,
			"MultimediaFiles": toBsonStrings(r.Files.MultimediaFiles),
			"AdditionalFiles": bson.A{}, // reserved, always written empty
		},
		"CreatedAt": r.CreatedAt,
		"UpdatedAt": r.UpdatedAt,
	}
}

// decodeCatalogDoc decodes a stored catalog document.
//
// A missing or malformed id is fatal for the catalog. Everything else is
// lenient: missing Name becomes "unnamed", missing Headers an empty
// column list, and each malformed row is logged and dropped rather than
// failing the whole catalog.
func decodeCatalogDoc(doc bson.M) (*domain.Catalog, error) {
	id, err := decodeDocID(doc["_id"])
	if err != nil {
		return nil, fmt.Errorf("%w: catalog id: %v", domain.ErrDecode, err)
	}

	c := &domain.Catalog{
		ID:          id,
		Name:        asString(doc["Name"]),
		Description: asString(doc["Description"]),
		Columns:     asStrings(doc["Headers"]),
		CreatedAt:   asTime(doc["CreatedAt"], asTime(doc["Fecha"], time.Time{})),
		UpdatedAt:   asTime(doc["UpdatedAt"], time.Time{}),
	}
	if c.Name == "" {
		c.Name = "unnamed"
	}

	// Owner preferred, CreatedBy as fallback for older documents.
	c.Owner = asString(doc["Owner"])
	if c.Owner == "" {
		c.Owner = asString(doc["CreatedBy"])
	}

	rawRows, _ := doc["Rows"].(bson.A)
	for i, raw := range rawRows {
		rowDoc, ok := asDoc(raw)
		if !ok {
			log.Printf("[CATALOG] %s: row %d is not a document, dropped", id, i)
			continue
		}

		// Entries without a Data sub-document are the pre-row-model flat
		// representation: collect them for the migrator instead.
		if _, hasData := asDoc(rowDoc["Data"]); !hasData {
			if flat := asFlatMap(rowDoc); len(flat) > 0 {
				c.LegacyRows = append(c.LegacyRows, flat)
			} else {
				log.Printf("[CATALOG] %s: row %d has no data, dropped", id, i)
			}
			continue
		}

		row, err := decodeRowDoc(rowDoc, c.Columns)
		if err != nil {
			log.Printf("[CATALOG] %s: row %d dropped: %v", id, i, err)
			continue
		}
		c.Rows = append(c.Rows, row)
	}

	return c, nil
}

// decodeRowDoc decodes one row document. Data is pre-populated with an
// empty string for every current column before the stored sub-fields are
// overlaid, so rows that predate a column still expose it.
func decodeRowDoc(doc bson.M, columns []string) (domain.Row, error) {
	dataDoc, ok := asDoc(doc["Data"])
	if !ok {
		return domain.Row{}, fmt.Errorf("missing Data")
	}

	row := domain.Row{
		ID:         bson.NewObjectID().Hex(),
		OriginalID: asString(doc["id"]),
		Data:       make(map[string]string, len(columns)),
		CreatedAt:  asTime(doc["CreatedAt"], time.Time{}),
		UpdatedAt:  asTime(doc["UpdatedAt"], time.Time{}),
	}
	for _, col := range columns {
		row.Data[col] = ""
	}
	for k, v := range dataDoc {
		row.Data[k] = asString(v)
	}

	if filesDoc, ok := asDoc(doc["Files"]); ok {
		row.Files = domain.RowFiles{
			Image:           asString(filesDoc["Image"]),
			Images:          asStrings(filesDoc["Images"]),
			Document:        asString(filesDoc["Document"]),
			Documents:       asStrings(filesDoc["Documents"]),
			Multimedia:      asString(filesDoc["Multimedia"]),
			MultimediaFiles: asStrings(filesDoc["MultimediaFiles"]),
		}
	}

	return row, nil
}

// decodeDocID accepts an ObjectID or its hex string form.
func decodeDocID(v any) (string, error) {
	switch id := v.(type) {
	case bson.ObjectID:
		return id.Hex(), nil
	case string:
		oid, err := bson.ObjectIDFromHex(id)
		if err != nil {
			return "", fmt.Errorf("invalid id %q", id)
		}
		return oid.Hex(), nil
	default:
		return "", fmt.Errorf("missing or invalid id (%T)", v)
	}
}

// ── lenient bson accessors ─────────────────────────────────

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprintf("%v", s)
	}
}

func asStrings(v any) []string {
	var out []string
	switch arr := v.(type) {
	case bson.A:
		for _, item := range arr {
			out = append(out, asString(item))
		}
	case []string:
		out = append(out, arr...)
	case []any:
		for _, item := range arr {
			out = append(out, asString(item))
		}
	}
	return out
}

func asTime(v any, fallback time.Time) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case bson.DateTime:
		return t.Time()
	default:
		return fallback
	}
}

// asDoc accepts the sub-document shapes the driver may hand back.
func asDoc(v any) (bson.M, bool) {
	switch doc := v.(type) {
	case bson.M:
		return doc, true
	case map[string]any:
		return bson.M(doc), true
	case bson.D:
		m := make(bson.M, len(doc))
		for _, elem := range doc {
			m[elem.Key] = elem.Value
		}
		return m, true
	default:
		return nil, false
	}
}

// asFlatMap renders a document's scalar fields as a flat string map,
// the legacy row shape.
func asFlatMap(doc bson.M) map[string]string {
	flat := make(map[string]string, len(doc))
	for k, v := range doc {
		switch v.(type) {
		case bson.M, bson.D, bson.A, map[string]any, []any:
			// legacy rows are flat; nested values mean this is not one
			return nil
		}
		flat[k] = asString(v)
	}
	return flat
}

func toBsonStrings(items []string) bson.A {
	out := bson.A{}
	for _, s := range items {
		out = append(out, s)
	}
	return out
}
