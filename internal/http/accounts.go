package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/studyhub/internal/auth"
	"github.com/mrlokans/studyhub/internal/entities"
	"github.com/mrlokans/studyhub/internal/result"
	"github.com/mrlokans/studyhub/internal/serializers"
	"github.com/mrlokans/studyhub/internal/services"
)

// AccountService issues tokens for registered users.
type AccountService interface {
	Login(email, password string) (string, *entities.User, error)
	IssueToken(user *entities.User) (string, error)
}

// LoginAuditor records login attempts.
type LoginAuditor interface {
	LogLogin(userID uint, email string, success bool)
}

// SessionView is returned by registration and login.
type SessionView struct {
	Token string                `json:"token"`
	User  *serializers.UserView `json:"user"`
}

type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccountsController serves the unauthenticated registration and login routes.
type AccountsController struct {
	users    UserService
	accounts AccountService
	limiter  *auth.RateLimiter
	auditor  LoginAuditor
}

func NewAccountsController(users UserService, accounts AccountService, limiter *auth.RateLimiter, auditor LoginAuditor) *AccountsController {
	return &AccountsController{users: users, accounts: accounts, limiter: limiter, auditor: auditor}
}

// Register handles POST /api/register
func (ac *AccountsController) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	r := ac.users.CreateUser(auth.Registration{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if !r.Ok() {
		respond(c, r)
		return
	}

	token, err := ac.accounts.IssueToken(r.Value)
	if err != nil {
		respond(c, result.Internal[any]())
		return
	}
	respond(c, result.Map(r, func(u *entities.User) SessionView {
		return SessionView{Token: token, User: serializers.User(u)}
	}))
}

// Login handles POST /api/login
func (ac *AccountsController) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		respondBadRequest(c, "Email and password are required")
		return
	}

	ip := c.ClientIP()
	if ac.limiter != nil {
		if allowed, wait := ac.limiter.Allow(ip, req.Email); !allowed {
			c.Header("Retry-After", fmt.Sprintf("%.0f", wait.Seconds()))
			respondFailure(c, http.StatusTooManyRequests, "Too many login attempts, try again later")
			return
		}
	}

	token, user, err := ac.accounts.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) || errors.Is(err, auth.ErrInvalidPassword) {
			if ac.limiter != nil {
				ac.limiter.RecordFailure(ip, req.Email)
			}
			if ac.auditor != nil {
				ac.auditor.LogLogin(0, req.Email, false)
			}
			respondFailure(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		respond(c, result.Internal[any]())
		return
	}

	if ac.limiter != nil {
		ac.limiter.RecordSuccess(ip, req.Email)
	}
	if ac.auditor != nil {
		ac.auditor.LogLogin(user.ID, user.Email, true)
	}
	respond(c, result.OK(SessionView{Token: token, User: serializers.User(user)}, "Login successful"))
}

// UserService is the self-service account surface.
type UserService interface {
	FetchUser(userID uint) result.Result[*entities.User]
	CreateUser(reg auth.Registration) result.Result[*entities.User]
	UpdateUser(userID uint, update services.UserUpdate) result.Result[*entities.User]
	DeleteUser(userID uint) result.Result[*entities.User]
}

// UsersController serves /api/data/user for the authenticated caller.
type UsersController struct {
	users UserService
}

func NewUsersController(users UserService) *UsersController {
	return &UsersController{users: users}
}

// Get handles GET /api/data/user
func (uc *UsersController) Get(c *gin.Context) {
	respond(c, result.Map(uc.users.FetchUser(GetUserID(c)), serializers.User))
}

// Update handles PUT /api/data/user
func (uc *UsersController) Update(c *gin.Context) {
	var update services.UserUpdate
	if !bindJSON(c, &update) {
		return
	}
	respond(c, result.Map(uc.users.UpdateUser(GetUserID(c), update), serializers.User))
}

// Delete handles DELETE /api/data/user
func (uc *UsersController) Delete(c *gin.Context) {
	respond(c, uc.users.DeleteUser(GetUserID(c)))
}
