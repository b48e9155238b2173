package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// DataRepository defines the persistence operations the gateway exposes over HTTP.
// The implementation owns connection pooling and thread safety; callers share one
// instance across requests.
type DataRepository interface {
	// EnsureCollection creates a collection, optionally with an index on the
	// given fields.
	EnsureCollection(ctx context.Context, collection string, indexFields []string, unique bool) error
	DropCollection(ctx context.Context, collection string) error

	Find(ctx context.Context, collection string, filter bson.M, skip, limit int64) ([]bson.M, error)
	Aggregate(ctx context.Context, collection string, pipeline []bson.M) ([]bson.M, error)

	InsertOne(ctx context.Context, collection string, document bson.M) (interface{}, error)
	InsertMany(ctx context.Context, collection string, documents []bson.M) ([]interface{}, error)

	FindByIDAndUpdate(ctx context.Context, collection string, id interface{}, update bson.M) (bson.M, error)
	FindByIDAndDelete(ctx context.Context, collection string, id interface{}) (bson.M, error)

	// Ping verifies the underlying database connection is alive.
	Ping(ctx context.Context) error
}
