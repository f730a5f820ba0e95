package todo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository persists todos in MongoDB.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

func (r *MongoRepository) Create(ctx context.Context, t *Todo) (*Todo, error) {
	t.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	return t, nil
}

func (r *MongoRepository) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]Todo, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"owner": owner})
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	docs := []Todo{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode todos: %w", err)
	}

	return docs, nil
}

func (r *MongoRepository) GetOwned(ctx context.Context, id, owner primitive.ObjectID) (*Todo, error) {
	var t Todo
	err := r.coll.FindOne(ctx, ownedFilter(id, owner)).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	return &t, nil
}

func (r *MongoRepository) UpdateOwned(ctx context.Context, id, owner primitive.ObjectID, update Update) (*Todo, error) {
	set := bson.M{}
	unset := bson.M{}

	if update.Text != nil {
		set["text"] = *update.Text
	}
	if update.Completed != nil {
		set["completed"] = *update.Completed
		if *update.Completed {
			set["completedAt"] = *update.CompletedAt
		} else {
			unset["completedAt"] = ""
		}
	}

	change := bson.M{}
	if len(set) > 0 {
		change["$set"] = set
	}
	if len(unset) > 0 {
		change["$unset"] = unset
	}
	if len(change) == 0 {
		// nothing to change, behave like a plain owned read
		return r.GetOwned(ctx, id, owner)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var t Todo
	err := r.coll.FindOneAndUpdate(ctx, ownedFilter(id, owner), change, opts).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	return &t, nil
}

func (r *MongoRepository) DeleteOwned(ctx context.Context, id, owner primitive.ObjectID) (*Todo, error) {
	var t Todo
	err := r.coll.FindOneAndDelete(ctx, ownedFilter(id, owner)).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete todo: %w", err)
	}

	return &t, nil
}

func ownedFilter(id, owner primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "owner": owner}
}
