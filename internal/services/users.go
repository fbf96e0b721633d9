package services

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/studyhub/internal/auth"
	"github.com/mrlokans/studyhub/internal/database/users"
	"github.com/mrlokans/studyhub/internal/entities"
	"github.com/mrlokans/studyhub/internal/result"
)

const msgUserNotFound = "User not found"

type UserStore interface {
	GetUserWithCollections(id uint) (*entities.User, error)
	UpdateUser(id uint, updates map[string]any) (*entities.User, error)
	DeleteUser(id uint) error
}

// Registrar creates accounts with hashed credentials.
type Registrar interface {
	Register(reg auth.Registration) (*entities.User, error)
}

type UserAuditor interface {
	DeleteAuditor
	LogRegister(userID uint, email string)
}

// UserUpdate carries the self-service profile fields. Nil fields are left as is.
type UserUpdate struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
}

type Users struct {
	store      UserStore
	registrar  Registrar
	auditor    UserAuditor
	bcryptCost int
	log        logrus.FieldLogger
}

func NewUsers(store UserStore, registrar Registrar, auditor UserAuditor, bcryptCost int, log logrus.FieldLogger) *Users {
	return &Users{
		store:      store,
		registrar:  registrar,
		auditor:    auditor,
		bcryptCost: bcryptCost,
		log:        log.WithField("service", "users"),
	}
}

// FetchUser returns the caller with their collections.
func (s *Users) FetchUser(userID uint) result.Result[*entities.User] {
	user, err := s.store.GetUserWithCollections(userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return result.NotFound[*entities.User](msgUserNotFound)
		}
		return failInternal[*entities.User](s.log, err, "fetch_user")
	}
	return result.OK(user, "User fetched successfully")
}

// CreateUser registers a new account.
func (s *Users) CreateUser(reg auth.Registration) result.Result[*entities.User] {
	user, err := s.registrar.Register(reg)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			return result.BadRequest[*entities.User](msg)
		}
		return failInternal[*entities.User](s.log, err, "create_user")
	}

	if s.auditor != nil {
		s.auditor.LogRegister(user.ID, user.Email)
	}
	return result.Created(user, "User created successfully")
}

func (s *Users) UpdateUser(userID uint, update UserUpdate) result.Result[*entities.User] {
	updates := map[string]any{}
	if update.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*update.FirstName)
	}
	if update.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*update.LastName)
	}
	if update.Email != nil {
		if err := auth.ValidateEmail(*update.Email); err != nil {
			msg, _ := validationMessage(err)
			return result.BadRequest[*entities.User](msg)
		}
		updates["email"] = *update.Email
	}
	if update.Password != nil {
		hash, err := auth.HashPassword(*update.Password, s.bcryptCost)
		if err != nil {
			if msg, ok := validationMessage(err); ok {
				return result.BadRequest[*entities.User](msg)
			}
			return failInternal[*entities.User](s.log, err, "update_user")
		}
		updates["password_hash"] = hash
	}
	if len(updates) == 0 {
		return result.BadRequest[*entities.User]("Nothing to update")
	}

	user, err := s.store.UpdateUser(userID, updates)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrNotFound):
			return result.NotFound[*entities.User](msgUserNotFound)
		case errors.Is(err, users.ErrEmailTaken):
			return result.BadRequest[*entities.User]("Email already registered")
		}
		return failInternal[*entities.User](s.log, err, "update_user")
	}
	return result.OK(user, "User updated successfully")
}

// DeleteUser removes the caller's account. Collections and everything below cascade.
func (s *Users) DeleteUser(userID uint) result.Result[*entities.User] {
	if err := s.store.DeleteUser(userID); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return result.NotFound[*entities.User](msgUserNotFound)
		}
		return failInternal[*entities.User](s.log, err, "delete_user")
	}

	if s.auditor != nil {
		s.auditor.LogDelete(userID, "user", userID, "")
	}
	return result.OK[*entities.User](nil, "User deleted successfully")
}

func validationMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, auth.ErrEmailRequired):
		return "Email is required", true
	case errors.Is(err, auth.ErrEmailInvalid):
		return "Invalid email format", true
	case errors.Is(err, auth.ErrPasswordRequired):
		return "Password is required", true
	case errors.Is(err, auth.ErrPasswordTooShort):
		return "Password must be at least 8 characters", true
	case errors.Is(err, auth.ErrPasswordTooLong):
		return "Password exceeds maximum length of 72 bytes", true
	case errors.Is(err, auth.ErrUserExists):
		return "Email already registered", true
	}
	return "", false
}
