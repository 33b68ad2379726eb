package storage

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"catalogo/internal/domain"
)

// MemCollection is an in-memory Collection for tests. It understands the
// filter subset the stores use: field equality, $or, and $lt on times.
type MemCollection struct {
	mu   sync.Mutex
	docs []bson.M

	// Err, when set, is returned by every operation. Lets tests exercise
	// the stores' failure paths.
	Err error
}

func NewMemCollection() *MemCollection {
	return &MemCollection{}
}

// Docs returns a snapshot of the stored documents.
func (m *MemCollection) Docs() []bson.M {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]bson.M, len(m.docs))
	copy(out, m.docs)
	return out
}

func (m *MemCollection) Find(_ context.Context, filter bson.M) ([]bson.M, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	var out []bson.M
	for _, doc := range m.docs {
		if matchFilter(doc, filter) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (m *MemCollection) FindOne(_ context.Context, filter bson.M) (bson.M, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	for _, doc := range m.docs {
		if matchFilter(doc, filter) {
			return doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MemCollection) InsertOne(_ context.Context, doc bson.M) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}

	m.docs = append(m.docs, doc)
	if oid, ok := doc["_id"].(bson.ObjectID); ok {
		return oid.Hex(), nil
	}
	return asString(doc["_id"]), nil
}

func (m *MemCollection) UpdateOne(_ context.Context, filter, update bson.M) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}

	for _, doc := range m.docs {
		if !matchFilter(doc, filter) {
			continue
		}
		if set, ok := update["$set"].(bson.M); ok {
			for k, v := range set {
				doc[k] = v
			}
		}
		return 1, nil
	}
	return 0, nil
}

func (m *MemCollection) DeleteOne(_ context.Context, filter bson.M) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}

	for i, doc := range m.docs {
		if matchFilter(doc, filter) {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *MemCollection) DeleteMany(_ context.Context, filter bson.M) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}

	var kept []bson.M
	var deleted int64
	for _, doc := range m.docs {
		if matchFilter(doc, filter) {
			deleted++
			continue
		}
		kept = append(kept, doc)
	}
	m.docs = kept
	return deleted, nil
}

func matchFilter(doc, filter bson.M) bool {
	for key, want := range filter {
		if key == "$or" {
			if !matchOr(doc, want) {
				return false
			}
			continue
		}
		if cond, ok := want.(bson.M); ok {
			if !matchCond(doc[key], cond) {
				return false
			}
			continue
		}
		if doc[key] != want {
			return false
		}
	}
	return true
}

func matchOr(doc bson.M, want any) bool {
	branches, ok := want.([]bson.M)
	if !ok {
		return false
	}
	for _, branch := range branches {
		if matchFilter(doc, branch) {
			return true
		}
	}
	return false
}

func matchCond(have any, cond bson.M) bool {
	for op, arg := range cond {
		switch op {
		case "$lt":
			haveT, ok1 := have.(time.Time)
			argT, ok2 := arg.(time.Time)
			if !ok1 || !ok2 || !haveT.Before(argT) {
				return false
			}
		default:
			return false
		}
	}
	return true
}
