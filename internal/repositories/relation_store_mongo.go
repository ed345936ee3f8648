package repositories

import (
	"context"
	"time"

	"github.com/anonto42/microposts/backend/internal/social"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// relationDoc is one edge stored in the collection named after its relation.
type relationDoc struct {
	OwnerID   uint      `bson:"owner_id"`
	TargetID  uint      `bson:"target_id"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoRelationStore implements social.RelationStore for MongoDB
type MongoRelationStore struct {
	db *mongo.Database
}

// NewMongoRelationStore creates a new MongoRelationStore
func NewMongoRelationStore(db *mongo.Database) *MongoRelationStore {
	return &MongoRelationStore{db: db}
}

func (r *MongoRelationStore) collection(rel social.Relation) (*mongo.Collection, error) {
	if _, err := lookupJoinTable(rel); err != nil {
		return nil, err
	}
	return r.db.Collection(string(rel)), nil
}

// EnsureIndexes creates the unique (owner_id, target_id) index and the
// reverse lookup index on every relation collection.
func (r *MongoRelationStore) EnsureIndexes(ctx context.Context) error {
	for _, rel := range []social.Relation{social.Followings, social.Favorites} {
		coll, err := r.collection(rel)
		if err != nil {
			return err
		}
		_, err = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "target_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "target_id", Value: 1}}},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func edgeFilter(ownerID, targetID uint) bson.M {
	return bson.M{"owner_id": ownerID, "target_id": targetID}
}

func (r *MongoRelationStore) Exists(ctx context.Context, rel social.Relation, ownerID, targetID uint) (bool, error) {
	coll, err := r.collection(rel)
	if err != nil {
		return false, err
	}
	n, err := coll.CountDocuments(ctx, edgeFilter(ownerID, targetID), options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *MongoRelationStore) Add(ctx context.Context, rel social.Relation, ownerID, targetID uint) error {
	coll, err := r.collection(rel)
	if err != nil {
		return err
	}
	now := time.Now()
	_, err = coll.InsertOne(ctx, relationDoc{OwnerID: ownerID, TargetID: targetID, CreatedAt: now, UpdatedAt: now})
	if mongo.IsDuplicateKeyError(err) {
		return social.ErrDuplicateEdge
	}
	return err
}

func (r *MongoRelationStore) Remove(ctx context.Context, rel social.Relation, ownerID, targetID uint) error {
	coll, err := r.collection(rel)
	if err != nil {
		return err
	}
	res, err := coll.DeleteOne(ctx, edgeFilter(ownerID, targetID))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return social.ErrEdgeNotFound
	}
	return nil
}

func (r *MongoRelationStore) ListTargets(ctx context.Context, rel social.Relation, ownerID uint) ([]uint, error) {
	return r.listIDs(ctx, rel, bson.M{"owner_id": ownerID}, "target_id")
}

func (r *MongoRelationStore) ListOwners(ctx context.Context, rel social.Relation, targetID uint) ([]uint, error) {
	return r.listIDs(ctx, rel, bson.M{"target_id": targetID}, "owner_id")
}

func (r *MongoRelationStore) listIDs(ctx context.Context, rel social.Relation, filter bson.M, field string) ([]uint, error) {
	coll, err := r.collection(rel)
	if err != nil {
		return nil, err
	}
	findOptions := options.Find().
		SetProjection(bson.M{field: 1, "_id": 0}).
		SetSort(bson.D{{Key: field, Value: 1}})
	cursor, err := coll.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []relationDoc
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(docs))
	for _, d := range docs {
		if field == "owner_id" {
			ids = append(ids, d.OwnerID)
		} else {
			ids = append(ids, d.TargetID)
		}
	}
	return ids, nil
}

func (r *MongoRelationStore) CountTargets(ctx context.Context, rel social.Relation, ownerID uint) (int64, error) {
	coll, err := r.collection(rel)
	if err != nil {
		return 0, err
	}
	return coll.CountDocuments(ctx, bson.M{"owner_id": ownerID})
}

func (r *MongoRelationStore) CountOwners(ctx context.Context, rel social.Relation, targetID uint) (int64, error) {
	coll, err := r.collection(rel)
	if err != nil {
		return 0, err
	}
	return coll.CountDocuments(ctx, bson.M{"target_id": targetID})
}

var _ social.RelationStore = (*MongoRelationStore)(nil)
