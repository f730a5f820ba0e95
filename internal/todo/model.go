package todo

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CollectionName is the MongoDB collection holding todo documents.
const CollectionName = "todos"

// Todo is a single task record. Owner is stamped from the authenticated
// identity at creation and never reassigned; clients cannot supply it.
//
// CompletedAt is epoch milliseconds and present exactly when Completed is
// true.
type Todo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Text        string             `bson:"text" json:"text"`
	Completed   bool               `bson:"completed" json:"completed"`
	CompletedAt *int64             `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	Owner       primitive.ObjectID `bson:"owner" json:"owner"`
}
