package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chatbet/base-models/models"
	"github.com/chatbet/base-models/repositories"
)

// configurationsCollection holds every tenant configuration record; the
// PK/SK pair identifies the record kind within a tenant.
const configurationsCollection = "configurations"

// store wraps the shared collection with key-addressed document access.
type store struct {
	collection *mongo.Collection
}

func newStore(db *mongo.Database) store {
	return store{collection: db.Collection(configurationsCollection)}
}

func keyFilter(pk, sk string) bson.M {
	return bson.M{"PK": pk, "SK": sk}
}

func (s store) getDocument(ctx context.Context, pk, sk string) (models.Document, error) {
	var raw bson.M
	err := s.collection.FindOne(ctx, keyFilter(pk, sk)).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return plainDocument(raw), nil
}

func (s store) upsertDocument(ctx context.Context, pk, sk string, doc models.Document) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.collection.ReplaceOne(ctx, keyFilter(pk, sk), doc, opts)
	return err
}

func (s store) deleteDocument(ctx context.Context, pk, sk string) error {
	res, err := s.collection.DeleteOne(ctx, keyFilter(pk, sk))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// plainDocument converts a decoded BSON document into plain Go maps and
// slices so records can be rebuilt through their JSON decoders.
func plainDocument(raw bson.M) models.Document {
	doc := make(models.Document, len(raw))
	for k, v := range raw {
		if k == "_id" {
			continue
		}
		doc[k] = plainValue(v)
	}
	return doc
}

func plainValue(v interface{}) interface{} {
	switch t := v.(type) {
	case bson.M:
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[k] = plainValue(e)
		}
		return out
	case bson.D:
		out := make(map[string]interface{}, len(t))
		for _, e := range t {
			out[e.Key] = plainValue(e.Value)
		}
		return out
	case bson.A:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = plainValue(e)
		}
		return out
	default:
		return v
	}
}
