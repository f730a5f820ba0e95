package auth

import (
	"errors"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims are the verified contents of a session token.
type Claims struct {
	// Subject is the owning user's id in hex encoding.
	Subject string
	// Purpose distinguishes session kinds; only "auth" is issued.
	Purpose string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and parses PASETO v4.local session tokens.
// Uses symmetric encryption with XChaCha20-Poly1305, so claims are only
// readable and trustable after authentication with the process-wide key.
type TokenService struct {
	key      paseto.V4SymmetricKey
	duration time.Duration
}

func NewTokenService(key []byte, duration time.Duration) (*TokenService, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("token key must be exactly 32 bytes, got %d", len(key))
	}

	symmetricKey, err := paseto.V4SymmetricKeyFromBytes(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create symmetric key: %w", err)
	}

	return &TokenService{key: symmetricKey, duration: duration}, nil
}

// Issue mints a token carrying the subject and purpose claims.
func (s *TokenService) Issue(subject, purpose string) (string, error) {
	now := time.Now()

	token := paseto.NewToken()
	token.SetIssuedAt(now)
	token.SetExpiration(now.Add(s.duration))
	token.SetSubject(subject)
	token.SetString("purpose", purpose)

	return token.V4Encrypt(s.key, nil), nil
}

// Parse authenticates the token and returns its claims.
// No claim is trusted before the token verifies; malformed, tampered and
// expired tokens all fail with ErrInvalidToken.
func (s *TokenService) Parse(tokenStr string) (*Claims, error) {
	parser := paseto.NewParser()

	token, err := parser.ParseV4Local(s.key, tokenStr, nil)
	if err != nil {
		return nil, ErrInvalidToken
	}

	subject, err := token.GetSubject()
	if err != nil {
		return nil, ErrInvalidToken
	}

	purpose, err := token.GetString("purpose")
	if err != nil {
		return nil, ErrInvalidToken
	}

	issuedAt, err := token.GetIssuedAt()
	if err != nil {
		return nil, ErrInvalidToken
	}

	expiresAt, err := token.GetExpiration()
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &Claims{
		Subject:   subject,
		Purpose:   purpose,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}
