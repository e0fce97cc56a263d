package registry

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mapping is one registration document in the canteens collection.
type Mapping struct {
	Identifier string `bson:"identifier"`
	CanteenID  string `bson:"canteenId"`
}

// MongoRegistry resolves identifiers from a MongoDB collection, so
// registrations can be edited without redeploying the service.
type MongoRegistry struct {
	col *mongo.Collection
}

func NewMongoRegistry(col *mongo.Collection) *MongoRegistry {
	// identifiers are unique; the index also makes Resolve a point lookup
	idx := mongo.IndexModel{Keys: bson.D{{Key: "identifier", Value: 1}}, Options: options.Index().SetUnique(true)}
	col.Indexes().CreateOne(context.Background(), idx)
	return &MongoRegistry{col: col}
}

func (r *MongoRegistry) Resolve(ctx context.Context, identifier string) (string, error) {
	var m Mapping
	err := r.col.FindOne(ctx, bson.M{"identifier": identifier}).Decode(&m)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", ErrUnknownIdentifier
		}
		return "", err
	}
	return m.CanteenID, nil
}
