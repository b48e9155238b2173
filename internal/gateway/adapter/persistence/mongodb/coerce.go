package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NormalizeID converts a string identifier into the database's native ObjectID
// when it parses as one. Non-hex identifiers pass through untouched so custom
// string keys still match.
func NormalizeID(id interface{}) interface{} {
	strID, ok := id.(string)
	if !ok {
		return id
	}
	if oid, err := primitive.ObjectIDFromHex(strID); err == nil {
		return oid
	}
	return strID
}

// NormalizeFilter rewrites a top-level string "_id" in a find filter to its
// native ObjectID form. The rest of the filter is forwarded opaque.
func NormalizeFilter(filter bson.M) bson.M {
	if filter == nil {
		return bson.M{}
	}
	if rawID, ok := filter["_id"]; ok {
		filter["_id"] = NormalizeID(rawID)
	}
	return filter
}
