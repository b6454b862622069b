package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-backend/internal/domain/apperr"
	"github.com/oksasatya/go-blog-backend/internal/domain/entity"
	repo "github.com/oksasatya/go-blog-backend/internal/domain/repository"
	"github.com/oksasatya/go-blog-backend/pkg/helpers"
)

// errInvalidCredentials is returned for both unknown emails and wrong
// passwords so callers cannot probe which accounts exist.
var errInvalidCredentials = apperr.Unauthenticated("invalid credentials")

type AuthService struct {
	Users  repo.UserRepository
	Hasher *helpers.PasswordHasher
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(users repo.UserRepository, hasher *helpers.PasswordHasher, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Hasher: hasher, JWT: jwt, Logger: logger}
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

// Login checks email/password and issues a session token. Blocked accounts
// still receive a token; the auth middleware refuses it on use.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperr.InvalidInput("email and password are required")
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !s.Hasher.Verify(password, u.PasswordHash) {
		return nil, errInvalidCredentials
	}
	token, exp, err := s.JWT.Issue(u.Identity())
	if err != nil {
		helpers.LogError(s.Logger, "issue token failed", err, logrus.Fields{"user_id": u.ID})
		return nil, apperr.Internal("could not issue token", err)
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}
