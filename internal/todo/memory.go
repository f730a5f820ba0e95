package todo

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository is an in-memory Repository used by the test suites.
type MemoryRepository struct {
	mu    sync.Mutex
	todos map[primitive.ObjectID]*Todo
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{todos: make(map[primitive.ObjectID]*Todo)}
}

func (r *MemoryRepository) Create(_ context.Context, t *Todo) (*Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = primitive.NewObjectID()
	stored := copyTodo(t)
	r.todos[t.ID] = stored

	return copyTodo(stored), nil
}

func (r *MemoryRepository) ListByOwner(_ context.Context, owner primitive.ObjectID) ([]Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs := []Todo{}
	for _, t := range r.todos {
		if t.Owner == owner {
			docs = append(docs, *copyTodo(t))
		}
	}

	return docs, nil
}

func (r *MemoryRepository) GetOwned(_ context.Context, id, owner primitive.ObjectID) (*Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.todos[id]
	if !ok || t.Owner != owner {
		return nil, ErrNotFound
	}

	return copyTodo(t), nil
}

func (r *MemoryRepository) UpdateOwned(_ context.Context, id, owner primitive.ObjectID, update Update) (*Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.todos[id]
	if !ok || t.Owner != owner {
		return nil, ErrNotFound
	}

	if update.Text != nil {
		t.Text = *update.Text
	}
	if update.Completed != nil {
		t.Completed = *update.Completed
		if *update.Completed {
			completedAt := *update.CompletedAt
			t.CompletedAt = &completedAt
		} else {
			t.CompletedAt = nil
		}
	}

	return copyTodo(t), nil
}

func (r *MemoryRepository) DeleteOwned(_ context.Context, id, owner primitive.ObjectID) (*Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.todos[id]
	if !ok || t.Owner != owner {
		return nil, ErrNotFound
	}
	delete(r.todos, id)

	return copyTodo(t), nil
}

func copyTodo(t *Todo) *Todo {
	c := *t
	if t.CompletedAt != nil {
		completedAt := *t.CompletedAt
		c.CompletedAt = &completedAt
	}
	return &c
}
