package auth

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mrlokans/studyhub/internal/config"
	"github.com/mrlokans/studyhub/internal/database/users"
	"github.com/mrlokans/studyhub/internal/entities"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrEmailRequired    = errors.New("email is required")
	ErrEmailInvalid     = errors.New("invalid email format")
	ErrPasswordRequired = errors.New("password is required")
)

// UserRepository defines the user data access the service needs.
type UserRepository interface {
	CreateUser(user *entities.User) error
	GetUserByEmail(email string) (*entities.User, error)
}

// Registration holds the fields accepted at sign-up.
type Registration struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Service handles credential checks and token issuance.
type Service struct {
	users  UserRepository
	guard  *TokenGuard
	config config.Auth
}

func NewService(users UserRepository, guard *TokenGuard, cfg config.Auth) *Service {
	return &Service{users: users, guard: guard, config: cfg}
}

// ValidateEmail checks that email is present and well formed.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}
	// RFC 5321 limit is 254
	if len(email) > 254 || !emailPattern.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}

// ValidateRegistration checks fields without touching the store.
func ValidateRegistration(reg Registration) error {
	if err := ValidateEmail(reg.Email); err != nil {
		return err
	}
	if reg.Password == "" {
		return ErrPasswordRequired
	}
	return nil
}

// Register creates a user with a bcrypt-hashed password.
func (s *Service) Register(reg Registration) (*entities.User, error) {
	if err := ValidateRegistration(reg); err != nil {
		return nil, err
	}

	hash, err := HashPassword(reg.Password, s.config.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		FirstName:    strings.TrimSpace(reg.FirstName),
		LastName:     strings.TrimSpace(reg.LastName),
		Email:        reg.Email,
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(user); err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate validates credentials and returns the user.
func (s *Service) Authenticate(email, password string) (*entities.User, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates and issues a bearer token.
func (s *Service) Login(email, password string) (string, *entities.User, error) {
	user, err := s.Authenticate(email, password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.guard.Issue(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// IssueToken signs a token for an already authenticated user.
func (s *Service) IssueToken(user *entities.User) (string, error) {
	return s.guard.Issue(user.ID, user.Email)
}
