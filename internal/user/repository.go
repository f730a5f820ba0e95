package user

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Repository is the persistence capability for users and their sessions.
// Implementations: MongoRepository (production) and MemoryRepository (tests).
type Repository interface {
	// Create inserts a new user. Returns ErrDuplicateEmail if the email is taken.
	Create(ctx context.Context, email, passwordHash string) (*User, error)

	// GetByEmail returns the user with the given email or ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// AppendSession appends a session to the user's token list and persists it.
	AppendSession(ctx context.Context, id primitive.ObjectID, session Session) error

	// RemoveSession removes the session with the given token from the user's
	// token list. Removing an absent token is not an error.
	RemoveSession(ctx context.Context, id primitive.ObjectID, token string) error

	// GetBySessionToken returns the user only if the exact token is present in
	// their live session list with the given purpose; otherwise ErrNotFound.
	GetBySessionToken(ctx context.Context, id primitive.ObjectID, token, purpose string) (*User, error)
}
