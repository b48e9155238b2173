package mongodb

import (
	"context"
	"time"

	apperrors "mongo-gateway/internal/shared/errors"
	"mongo-gateway/internal/shared/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DataRepository implements repository.DataRepository on top of an injected
// *mongo.Database. The handle is created once in main and shared across
// requests; the driver's connection pool provides concurrency safety.
type DataRepository struct {
	db     *mongo.Database
	logger logger.Logger
}

// NewDataRepository creates a repository bound to the given database handle.
func NewDataRepository(db *mongo.Database, log logger.Logger) *DataRepository {
	return &DataRepository{
		db:     db,
		logger: log.WithComponent("mongodb-repository"),
	}
}

// EnsureCollection creates a collection and, when index fields are given,
// a matching index. Creating an already existing collection is not an error
// unless the server reports one.
func (r *DataRepository) EnsureCollection(ctx context.Context, collection string, indexFields []string, unique bool) error {
	if err := r.db.CreateCollection(ctx, collection); err != nil {
		r.logger.Errorf("Create collection %s failed: %v", collection, err)
		return apperrors.WrapError(err, "create collection failed")
	}

	if len(indexFields) == 0 {
		return nil
	}

	keys := bson.D{}
	for _, field := range indexFields {
		keys = append(keys, bson.E{Key: field, Value: 1})
	}

	indexModel := mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetUnique(unique),
	}
	if _, err := r.db.Collection(collection).Indexes().CreateOne(ctx, indexModel); err != nil {
		r.logger.Errorf("Create index on %s failed: %v", collection, err)
		return apperrors.WrapError(err, "create index failed")
	}

	r.logger.Infof("Created collection %s with index on %v (unique=%v)", collection, indexFields, unique)
	return nil
}

// DropCollection drops the named collection.
func (r *DataRepository) DropCollection(ctx context.Context, collection string) error {
	if err := r.db.Collection(collection).Drop(ctx); err != nil {
		r.logger.Errorf("Drop collection %s failed: %v", collection, err)
		return apperrors.WrapError(err, "drop collection failed")
	}
	r.logger.Infof("Dropped collection %s", collection)
	return nil
}

// Find runs a filtered query with skip/limit pagination. The filter's top-level
// _id is normalized to an ObjectID before the query runs.
func (r *DataRepository) Find(ctx context.Context, collection string, filter bson.M, skip, limit int64) ([]bson.M, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit)

	cursor, err := r.db.Collection(collection).Find(ctx, NormalizeFilter(filter), findOptions)
	if err != nil {
		r.logger.Errorf("Find on %s failed: %v", collection, err)
		return nil, apperrors.WrapError(err, "find failed")
	}
	defer cursor.Close(ctx)

	documents := make([]bson.M, 0)
	if err := cursor.All(ctx, &documents); err != nil {
		r.logger.Errorf("Decoding find results from %s failed: %v", collection, err)
		return nil, apperrors.WrapError(err, "find decode failed")
	}
	return documents, nil
}

// BuildPipeline converts the wire representation of a pipeline into the
// driver's ordered form.
func BuildPipeline(pipeline []bson.M) mongo.Pipeline {
	stages := make(mongo.Pipeline, 0, len(pipeline))
	for _, stage := range pipeline {
		doc := bson.D{}
		for key, value := range stage {
			doc = append(doc, bson.E{Key: key, Value: value})
		}
		stages = append(stages, doc)
	}
	return stages
}

// Aggregate runs an aggregation pipeline and returns the resulting documents.
func (r *DataRepository) Aggregate(ctx context.Context, collection string, pipeline []bson.M) ([]bson.M, error) {
	cursor, err := r.db.Collection(collection).Aggregate(ctx, BuildPipeline(pipeline))
	if err != nil {
		r.logger.Errorf("Aggregate on %s failed: %v", collection, err)
		return nil, apperrors.WrapError(err, "aggregate failed")
	}
	defer cursor.Close(ctx)

	results := make([]bson.M, 0)
	if err := cursor.All(ctx, &results); err != nil {
		r.logger.Errorf("Decoding aggregate results from %s failed: %v", collection, err)
		return nil, apperrors.WrapError(err, "aggregate decode failed")
	}
	return results, nil
}

// stampTimestamps sets createdAt and updatedAt on every document in the batch
// to the same instant. Client-supplied values for either field are overwritten.
func stampTimestamps(documents []bson.M, now time.Time) {
	for _, document := range documents {
		document["createdAt"] = now
		document["updatedAt"] = now
	}
}

// stampUpdated refreshes updatedAt on an update document, leaving createdAt
// untouched.
func stampUpdated(update bson.M, now time.Time) {
	update["updatedAt"] = now
}

// InsertOne inserts a single document, stamping createdAt/updatedAt.
func (r *DataRepository) InsertOne(ctx context.Context, collection string, document bson.M) (interface{}, error) {
	stampTimestamps([]bson.M{document}, time.Now().UTC())

	result, err := r.db.Collection(collection).InsertOne(ctx, document)
	if err != nil {
		r.logger.Errorf("Insert into %s failed: %v", collection, err)
		return nil, apperrors.WrapError(err, "insert failed")
	}
	return result.InsertedID, nil
}

// InsertMany inserts a batch of documents, stamping timestamps on each.
func (r *DataRepository) InsertMany(ctx context.Context, collection string, documents []bson.M) ([]interface{}, error) {
	stampTimestamps(documents, time.Now().UTC())

	batch := make([]interface{}, 0, len(documents))
	for _, document := range documents {
		batch = append(batch, document)
	}

	result, err := r.db.Collection(collection).InsertMany(ctx, batch)
	if err != nil {
		r.logger.Errorf("InsertMany into %s failed: %v", collection, err)
		return nil, apperrors.WrapError(err, "insertMany failed")
	}
	return result.InsertedIDs, nil
}

// FindByIDAndUpdate atomically applies a $set update to the document with the
// given id, refreshes updatedAt, and returns the post-image.
func (r *DataRepository) FindByIDAndUpdate(ctx context.Context, collection string, id interface{}, update bson.M) (bson.M, error) {
	stampUpdated(update, time.Now().UTC())

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	filter := bson.M{"_id": NormalizeID(id)}

	var updated bson.M
	err := r.db.Collection(collection).FindOneAndUpdate(ctx, filter, bson.M{"$set": update}, opts).Decode(&updated)
	if err != nil {
		r.logger.Errorf("FindOneAndUpdate on %s failed: %v", collection, err)
		return nil, apperrors.WrapError(err, "findOneAndUpdate failed")
	}
	return updated, nil
}

// FindByIDAndDelete atomically removes the document with the given id and
// returns the removed document.
func (r *DataRepository) FindByIDAndDelete(ctx context.Context, collection string, id interface{}) (bson.M, error) {
	filter := bson.M{"_id": NormalizeID(id)}

	var deleted bson.M
	err := r.db.Collection(collection).FindOneAndDelete(ctx, filter).Decode(&deleted)
	if err != nil {
		r.logger.Errorf("FindOneAndDelete on %s failed: %v", collection, err)
		return nil, apperrors.WrapError(err, "findOneAndDelete failed")
	}
	return deleted, nil
}

// Ping verifies the database connection is alive.
func (r *DataRepository) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, readpref.Primary())
}
