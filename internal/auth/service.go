package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"todoapi/internal/logging"
	"todoapi/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailRequired      = errors.New("email is required")
	ErrEmailTooShort      = errors.New("email must be at least 5 characters")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")

	// ErrUnauthorized covers every resolution failure past token decoding:
	// unknown subject, revoked session, wrong purpose. Callers must not
	// reveal which one to the client.
	ErrUnauthorized = errors.New("unauthorized")
)

const minEmailLength = 5
const minPasswordLength = 6

// Service handles registration, login and session lifecycle.
type Service struct {
	users  user.Repository
	tokens *TokenService
	logger *logging.Logger
}

func NewService(users user.Repository, tokens *TokenService, logger *logging.Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a new user account and mints its first session.
// Returns the created user and the session token.
func (s *Service) Register(ctx context.Context, email, password string) (*user.User, string, error) {
	email = strings.TrimSpace(email)
	if err := validateCredentials(email, password); err != nil {
		return nil, "", err
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	newUser, err := s.users.Create(ctx, email, passwordHash)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, "", user.ErrDuplicateEmail
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.IssueSession(ctx, newUser)
	if err != nil {
		return nil, "", err
	}

	return newUser, token, nil
}

// Login verifies the credentials and mints a new session.
// Every failure surfaces as ErrInvalidCredentials so a wrong password is
// indistinguishable from an unknown email.
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	existing, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if !VerifyPassword(password, existing.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueSession(ctx, existing)
	if err != nil {
		return nil, "", err
	}

	return existing, token, nil
}

// IssueSession mints a token for the user and appends it to their session
// list. The token is only handed out after the persisted write succeeds, so
// a crash in between never leaves a usable but unrecorded token.
func (s *Service) IssueSession(ctx context.Context, u *user.User) (string, error) {
	token, err := s.tokens.Issue(u.ID.Hex(), user.PurposeAuth)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	session := user.Session{Purpose: user.PurposeAuth, Token: token}
	if err := s.users.AppendSession(ctx, u.ID, session); err != nil {
		return "", fmt.Errorf("failed to persist session: %w", err)
	}

	return token, nil
}

// RevokeSession removes the session with the given token from the user.
// Revoking an absent token is not an error. Other sessions stay valid.
func (s *Service) RevokeSession(ctx context.Context, u *user.User, token string) error {
	if err := s.users.RemoveSession(ctx, u.ID, token); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// Resolve maps a raw token to its authenticated user. The token must both
// verify against the signing key and be present in the decoded subject's
// live session list; a structurally valid token that was revoked fails with
// ErrUnauthorized.
func (s *Service) Resolve(ctx context.Context, rawToken string) (*user.User, error) {
	claims, err := s.tokens.Parse(rawToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	id, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.Purpose != user.PurposeAuth {
		return nil, ErrUnauthorized
	}

	resolved, err := s.users.GetBySessionToken(ctx, id, rawToken, user.PurposeAuth)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		s.logger.Error("session lookup failed", "error", err.Error())
		return nil, ErrUnauthorized
	}

	return resolved, nil
}

func validateCredentials(email, password string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if len(email) < minEmailLength {
		return ErrEmailTooShort
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmailFormat
	}
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
