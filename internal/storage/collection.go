package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"catalogo/internal/domain"
)

// Collection abstracts a document-database collection. Stores consume
// this instead of *mongo.Collection so they can be exercised against the
// in-memory fake in tests.
type Collection interface {
	// Find returns all documents matching filter.
	Find(ctx context.Context, filter bson.M) ([]bson.M, error)

	// FindOne returns the first document matching filter, or
	// domain.ErrNotFound if none matches.
	FindOne(ctx context.Context, filter bson.M) (bson.M, error)

	// InsertOne writes doc and returns its id rendered as a string.
	InsertOne(ctx context.Context, doc bson.M) (string, error)

	// UpdateOne applies update to the first document matching filter and
	// returns the modified count.
	UpdateOne(ctx context.Context, filter, update bson.M) (int64, error)

	// DeleteOne removes the first document matching filter and returns
	// the deleted count.
	DeleteOne(ctx context.Context, filter bson.M) (int64, error)

	// DeleteMany removes every document matching filter and returns the
	// deleted count.
	DeleteMany(ctx context.Context, filter bson.M) (int64, error)
}

// mongoCollection adapts *mongo.Collection to Collection.
type mongoCollection struct {
	coll *mongo.Collection
}

func (m *mongoCollection) Find(ctx context.Context, filter bson.M) ([]bson.M, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cursor, err := m.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return docs, nil
}

func (m *mongoCollection) FindOne(ctx context.Context, filter bson.M) (bson.M, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var doc bson.M
	err := m.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("findOne: %w", err)
	}
	return doc, nil
}

func (m *mongoCollection) InsertOne(ctx context.Context, doc bson.M) (string, error) {
	res, err := m.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insertOne: %w", err)
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprintf("%v", res.InsertedID), nil
}

func (m *mongoCollection) UpdateOne(ctx context.Context, filter, update bson.M) (int64, error) {
	res, err := m.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("updateOne: %w", err)
	}
	return res.ModifiedCount, nil
}

func (m *mongoCollection) DeleteOne(ctx context.Context, filter bson.M) (int64, error) {
	res, err := m.coll.DeleteOne(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("deleteOne: %w", err)
	}
	return res.DeletedCount, nil
}

func (m *mongoCollection) DeleteMany(ctx context.Context, filter bson.M) (int64, error) {
	res, err := m.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("deleteMany: %w", err)
	}
	return res.DeletedCount, nil
}
