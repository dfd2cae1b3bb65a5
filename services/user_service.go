package services

import (
	"project-tracker/models"

	"golang.org/x/crypto/bcrypt"
)

// UserService checks credentials against the seeded user store.
type UserService struct {
	uow UnitOfWorkFactory
}

func NewUserService(uow UnitOfWorkFactory) *UserService {
	return &UserService{uow: uow}
}

// Authenticate resolves a username and verifies the password against
// its bcrypt hash. Returns ErrInvalidCredentials for an unknown user
// or a wrong password; the two cases are not distinguished.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	uow := s.uow()
	defer uow.Close()

	user, found, err := uow.Users().First(func(u *models.User) bool {
		return u.Username == username
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
