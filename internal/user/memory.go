package user

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository is an in-memory Repository used by the test suites.
// It mirrors the MongoDB semantics: unique emails, idempotent session removal.
type MemoryRepository struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[primitive.ObjectID]*User)}
}

func (r *MemoryRepository) Create(_ context.Context, email, passwordHash string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return nil, ErrDuplicateEmail
		}
	}

	u := &User{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: passwordHash,
		Tokens:       []Session{},
	}
	r.users[u.ID] = u

	return copyUser(u), nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}

	return nil, ErrNotFound
}

func (r *MemoryRepository) AppendSession(_ context.Context, id primitive.ObjectID, session Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Tokens = append(u.Tokens, session)

	return nil
}

func (r *MemoryRepository) RemoveSession(_ context.Context, id primitive.ObjectID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}

	kept := u.Tokens[:0]
	for _, s := range u.Tokens {
		if s.Token != token {
			kept = append(kept, s)
		}
	}
	u.Tokens = kept

	return nil
}

func (r *MemoryRepository) GetBySessionToken(_ context.Context, id primitive.ObjectID, token, purpose string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || !u.HasSession(token, purpose) {
		return nil, ErrNotFound
	}

	return copyUser(u), nil
}

// Delete removes a user entirely. Only used by tests to simulate a vanished account.
func (r *MemoryRepository) Delete(_ context.Context, id primitive.ObjectID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

func copyUser(u *User) *User {
	c := *u
	c.Tokens = make([]Session, len(u.Tokens))
	copy(c.Tokens, u.Tokens)
	return &c
}
