package services

import (
	"time"

	"project-tracker/database"
	"project-tracker/models"

	"github.com/google/uuid"
)

// DefaultTokenLifetime is how long an issued token stays valid.
const DefaultTokenLifetime = 2 * time.Hour

// UnitOfWorkFactory opens a fresh unit of work for one service call.
type UnitOfWorkFactory func() *database.UnitOfWork

// TokenService issues and validates opaque bearer tokens. Tokens are
// immutable once issued; they stop working by expiring, never by
// being renewed or revoked.
type TokenService struct {
	uow      UnitOfWorkFactory
	lifetime time.Duration
	now      func() time.Time
}

func NewTokenService(uow UnitOfWorkFactory, lifetime time.Duration) *TokenService {
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}
	return &TokenService{
		uow:      uow,
		lifetime: lifetime,
		now:      time.Now,
	}
}

// Generate issues a new token bound to userID and commits it. The
// returned token carries its store-assigned identity.
func (s *TokenService) Generate(userID int) (*models.Token, error) {
	uow := s.uow()
	defer uow.Close()

	now := s.now()
	token := &models.Token{
		AuthToken: uuid.NewString(),
		UserID:    userID,
		IssuedOn:  now,
		ExpiresOn: now.Add(s.lifetime),
	}

	if err := uow.Tokens().Insert(token); err != nil {
		return nil, err
	}
	if err := uow.Save(); err != nil {
		return nil, err
	}
	return token, nil
}

// Validate resolves an opaque token string to its owning user. It
// scans all issued tokens, so correctness does not depend on how many
// users are logged in. Returns ErrInvalidToken when the string was
// never issued or the token has expired; expiry is never mutated.
func (s *TokenService) Validate(authToken string) (*models.User, *models.Token, error) {
	if authToken == "" {
		return nil, nil, ErrInvalidToken
	}

	uow := s.uow()
	defer uow.Close()

	token, found, err := uow.Tokens().First(func(t *models.Token) bool {
		return t.AuthToken == authToken
	})
	if err != nil {
		return nil, nil, err
	}
	if !found {
		return nil, nil, ErrInvalidToken
	}

	// Valid strictly before ExpiresOn; at or past it the token is
	// permanently invalid.
	if !s.now().Before(token.ExpiresOn) {
		return nil, nil, ErrInvalidToken
	}

	user, found, err := uow.Users().GetByID(token.UserID)
	if err != nil {
		return nil, nil, err
	}
	if !found {
		return nil, nil, ErrInvalidToken
	}

	return user, token, nil
}
