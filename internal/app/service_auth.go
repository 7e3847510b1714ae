package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/prep-maker/backend/internal/auth"
	"github.com/prep-maker/backend/internal/result"
	"github.com/prep-maker/backend/internal/store"
)

// Account is the signup input after validation.
type Account struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Credentials is the signin input after validation.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the authenticated user payload returned by signup and
// signin, including a freshly issued token.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

type AuthService struct {
	users      store.UserStore
	tokens     *auth.Tokens
	bcryptCost int
}

func NewAuthService(users store.UserStore, tokens *auth.Tokens, bcryptCost int) *AuthService {
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcryptCost}
}

// Signup registers a new account. A taken email is an expected failure;
// everything else downstream of it is unexpected.
func (s *AuthService) Signup(ctx context.Context, account Account) result.Result[UserResponse] {
	_, err := s.users.FindByEmail(ctx, account.Email)
	if err == nil {
		return result.Fail[UserResponse](msgDuplicateEmail, http.StatusBadRequest)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return result.Error[UserResponse](err)
	}

	hash, err := auth.HashPassword(account.Password, s.bcryptCost)
	if err != nil {
		return result.Error[UserResponse](err)
	}

	user, err := s.users.Create(ctx, store.User{
		ID:           uuid.NewString(),
		Email:        account.Email,
		Name:         account.Name,
		PasswordHash: hash,
		Writings:     []string{},
	})
	if err != nil {
		return result.Error[UserResponse](err)
	}

	return s.respondWithToken(user)
}

// Signin authenticates an existing account. An unknown email maps to 404
// and a wrong password to 400, matching the response contract.
func (s *AuthService) Signin(ctx context.Context, credentials Credentials) result.Result[UserResponse] {
	user, err := s.users.FindByEmail(ctx, credentials.Email)
	if errors.Is(err, store.ErrNotFound) {
		return result.Fail[UserResponse](msgNotFoundUser, http.StatusNotFound)
	}
	if err != nil {
		return result.Error[UserResponse](err)
	}

	if !auth.CheckPassword(user.PasswordHash, credentials.Password) {
		return result.Fail[UserResponse](msgInvalidLogin, http.StatusBadRequest)
	}

	return s.respondWithToken(user)
}

func (s *AuthService) respondWithToken(user store.User) result.Result[UserResponse] {
	token, err := s.tokens.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		return result.Error[UserResponse](err)
	}
	return result.OK(UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Token: token,
	})
}
