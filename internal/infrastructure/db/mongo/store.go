package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/itfy/evoting-admin/internal/core/domain"
	"github.com/itfy/evoting-admin/internal/core/ports"
)

// Store implements ports.DocumentStore on top of a Mongo database. Query
// fields named "id" are converted to ObjectID so hex identifiers from the
// command line match stored documents.
type Store struct {
	db *mongo.Database
}

func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) Insert(ctx context.Context, collection string, doc any) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		// A unique index can still reject the write when two creates race
		// past the application-level duplicate check.
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrUserExists
		}
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprint(res.InsertedID), nil
}

func (s *Store) FindOne(ctx context.Context, collection string, query ports.Query) (map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc bson.M
	err := s.db.Collection(collection).FindOne(ctx, toFilter(query)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find in %s: %w", collection, err)
	}
	return normalize(doc), nil
}

func (s *Store) FindMany(ctx context.Context, collection string, query ports.Query) ([]map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := s.db.Collection(collection).Find(ctx, toFilter(query))
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", collection, err)
	}
	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("decode %s results: %w", collection, err)
	}

	docs := make([]map[string]any, 0, len(raw))
	for _, doc := range raw {
		docs = append(docs, normalize(doc))
	}
	return docs, nil
}

func (s *Store) UpdateOne(ctx context.Context, collection string, query ports.Query, changes map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range changes {
		set[k] = v
	}
	res, err := s.db.Collection(collection).UpdateOne(ctx, toFilter(query), bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update in %s: %w", collection, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteOne(ctx context.Context, collection string, query ports.Query) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.db.Collection(collection).DeleteOne(ctx, toFilter(query))
	if err != nil {
		return fmt.Errorf("delete from %s: %w", collection, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteMany(ctx context.Context, collection string, query ports.Query) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.db.Collection(collection).DeleteMany(ctx, toFilter(query))
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", collection, err)
	}
	return res.DeletedCount, nil
}

// toFilter translates a generic query into a bson filter, mapping "id" to
// "_id" with ObjectID conversion. A non-hex id value is kept verbatim so
// the query simply matches nothing instead of erroring.
func toFilter(query ports.Query) bson.M {
	filter := bson.M{}
	for k, v := range query {
		if k == "id" || k == "_id" {
			if s, ok := v.(string); ok {
				if oid, err := primitive.ObjectIDFromHex(s); err == nil {
					filter["_id"] = oid
					continue
				}
			}
			filter["_id"] = v
			continue
		}
		filter[k] = v
	}
	return filter
}

// normalize rewrites driver-specific values into display-friendly ones:
// ObjectIDs become hex strings and Mongo datetimes become time.Time.
func normalize(doc bson.M) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		switch val := v.(type) {
		case primitive.ObjectID:
			out[k] = val.Hex()
		case primitive.DateTime:
			out[k] = val.Time().UTC()
		default:
			out[k] = v
		}
	}
	return out
}
