package todo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrTextRequired = errors.New("todo text is required")

// Service applies the task rules on top of an injected store capability.
// All operations are scoped to the owner passed in by the caller, which the
// handlers take from the authenticated request context.
type Service struct {
	todos Repository
}

func NewService(todos Repository) *Service {
	return &Service{todos: todos}
}

// Create stamps the new record with the caller as owner.
func (s *Service) Create(ctx context.Context, owner primitive.ObjectID, text string) (*Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrTextRequired
	}

	return s.todos.Create(ctx, &Todo{
		Text:      text,
		Completed: false,
		Owner:     owner,
	})
}

func (s *Service) List(ctx context.Context, owner primitive.ObjectID) ([]Todo, error) {
	return s.todos.ListByOwner(ctx, owner)
}

func (s *Service) Get(ctx context.Context, id, owner primitive.ObjectID) (*Todo, error) {
	return s.todos.GetOwned(ctx, id, owner)
}

// Update applies a partial update. Setting completed to true stamps
// completedAt with the current server time, even when the record was already
// completed; setting it to false clears completedAt; omitting completed
// leaves both fields untouched.
func (s *Service) Update(ctx context.Context, id, owner primitive.ObjectID, text *string, completed *bool) (*Todo, error) {
	update := Update{Completed: completed}

	if text != nil {
		trimmed := strings.TrimSpace(*text)
		if trimmed == "" {
			return nil, ErrTextRequired
		}
		update.Text = &trimmed
	}

	if completed != nil && *completed {
		now := time.Now().UnixMilli()
		update.CompletedAt = &now
	}

	return s.todos.UpdateOwned(ctx, id, owner, update)
}

func (s *Service) Delete(ctx context.Context, id, owner primitive.ObjectID) (*Todo, error) {
	return s.todos.DeleteOwned(ctx, id, owner)
}
