package user

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PurposeAuth is the session purpose tag for login sessions.
// It is the only purpose currently issued.
const PurposeAuth = "auth"

// Session is one issued, independently revocable token owned by a user.
// Sessions only exist inside their owner's document.
type Session struct {
	Purpose string `bson:"purpose"`
	Token   string `bson:"token"`
}

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"`
	// Tokens holds the live sessions, oldest first. A token missing from
	// this list is treated as revoked even if it still verifies.
	Tokens []Session `bson:"tokens"`
}

// PublicView is the subset of user fields safe to serialize to a client.
// The password hash and session list never leave the server.
type PublicView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (u *User) Public() PublicView {
	return PublicView{
		ID:    u.ID.Hex(),
		Email: u.Email,
	}
}

// HasSession reports whether the exact token is present with the given purpose.
func (u *User) HasSession(token, purpose string) bool {
	for _, s := range u.Tokens {
		if s.Token == token && s.Purpose == purpose {
			return true
		}
	}
	return false
}
