package todo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound covers both a genuinely absent record and one owned by a
// different user. The two are deliberately indistinguishable.
var ErrNotFound = errors.New("todo not found")

// Update is a partial todo update. Nil fields are left untouched.
// When Completed is set to true, CompletedAt carries the timestamp to stamp;
// when set to false, the stored completedAt is cleared.
type Update struct {
	Text        *string
	Completed   *bool
	CompletedAt *int64
}

// Repository is the persistence capability for todos. Every read and write
// beyond Create takes the owner and conjoins it with the record filter, so
// cross-tenant access cannot be expressed at all.
type Repository interface {
	Create(ctx context.Context, t *Todo) (*Todo, error)
	ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]Todo, error)
	GetOwned(ctx context.Context, id, owner primitive.ObjectID) (*Todo, error)
	UpdateOwned(ctx context.Context, id, owner primitive.ObjectID, update Update) (*Todo, error)
	DeleteOwned(ctx context.Context, id, owner primitive.ObjectID) (*Todo, error)
}
