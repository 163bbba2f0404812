package readstore

import (
	"context"

	"github.com/XiaBell/Sprint4-Arquisfot/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type mongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore wraps a Mongo collection as the ReadStore. The document _id
// is the SKU, so ReplaceOne with upsert gives exactly the idempotent
// insert-or-replace the projector needs.
func NewMongoStore(client *mongo.Client, database, collection string) ReadStore {
	return &mongoStore{coll: client.Database(database).Collection(collection)}
}

func (s *mongoStore) Upsert(ctx context.Context, doc *model.ReadDocument) error {
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": doc.SKU},
		doc,
		options.Replace().SetUpsert(true))
	return err
}

func (s *mongoStore) FindAll(ctx context.Context, limit int64, sortKey string) ([]model.ReadDocument, error) {
	if sortKey == "" {
		sortKey = "name"
	}
	opts := options.Find().
		SetSort(bson.D{{Key: sortKey, Value: 1}}).
		SetLimit(limit)
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []model.ReadDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *mongoStore) CountAll(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}

func (s *mongoStore) CountLowStock(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{
		"$expr": bson.M{"$lt": bson.A{"$stock_quantity", "$min_stock_level"}},
	})
}

func (s *mongoStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, readpref.Primary())
}
