package application

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-backend/internal/domain/apperr"
	"github.com/oksasatya/go-blog-backend/internal/domain/entity"
	"github.com/oksasatya/go-blog-backend/internal/domain/policy"
	repo "github.com/oksasatya/go-blog-backend/internal/domain/repository"
	"github.com/oksasatya/go-blog-backend/pkg/helpers"
)

type UserService struct {
	Repo    repo.UserRepository
	Hasher  *helpers.PasswordHasher
	Avatars AvatarStore
	Logger  *logrus.Logger
}

func NewUserService(r repo.UserRepository, hasher *helpers.PasswordHasher, avatars AvatarStore, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, Hasher: hasher, Avatars: avatars, Logger: logger}
}

type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// UpdateUserInput carries optional changes; nil fields are left untouched.
type UpdateUserInput struct {
	Email     *string
	Name      *string
	Password  *string
	Role      *string
	IsBlocked *bool
}

func (in UpdateUserInput) empty() bool {
	return in.Email == nil && in.Name == nil && in.Password == nil && in.Role == nil && in.IsBlocked == nil
}

func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	return s.Repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (*entity.User, error) {
	return s.Repo.GetByID(ctx, id)
}

// Register creates a USER account. Public registration never grants ADMIN.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, apperr.InvalidInput("email is required")
	}
	if err := checkAccountFields(&email, &in.Name, &in.Password); err != nil {
		return nil, err
	}
	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: hash,
		Role:         entity.RoleUser,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	helpers.LogInfo(s.Logger, "user registered", logrus.Fields{"user_id": u.ID})
	return u, nil
}

// Editable loads account id and checks that caller owns it or is an
// administrator. Handlers call it before decoding an update body.
func (s *UserService) Editable(ctx context.Context, caller entity.Identity, id int64) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanMutate(u.ID, caller) {
		return nil, apperr.Forbidden("you can only modify your own account")
	}
	return u, nil
}

func (s *UserService) Update(ctx context.Context, caller entity.Identity, id int64, in UpdateUserInput) (*entity.User, error) {
	u, err := s.Editable(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	return s.Apply(ctx, caller, u, in)
}

// Apply validates in and writes it onto u, an account returned by Editable
// for the same caller.
func (s *UserService) Apply(ctx context.Context, caller entity.Identity, u *entity.User, in UpdateUserInput) (*entity.User, error) {
	if (in.Role != nil || in.IsBlocked != nil) && !policy.CanManageAccounts(caller) {
		return nil, apperr.Forbidden("only administrators can change role or block status")
	}
	if in.empty() {
		return nil, apperr.InvalidInput("nothing to update")
	}
	var email *string
	if in.Email != nil {
		e := strings.TrimSpace(*in.Email)
		if e == "" {
			return nil, apperr.InvalidInput("email cannot be empty")
		}
		email = &e
	}
	if err := checkAccountFields(email, in.Name, in.Password); err != nil {
		return nil, err
	}

	if email != nil {
		u.Email = *email
	}
	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Password != nil {
		hash, err := s.Hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if in.Role != nil {
		role, ok := entity.ParseRole(*in.Role)
		if !ok {
			return nil, apperr.InvalidInput("role must be USER or ADMIN")
		}
		u.Role = role
	}
	if in.IsBlocked != nil {
		u.IsBlocked = *in.IsBlocked
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// checkAccountFields applies the account field rules to whichever values are
// present.
func checkAccountFields(email, name, password *string) error {
	if email != nil {
		if err := checkField("email", *email, ruleEmail, "must be a valid email"); err != nil {
			return err
		}
	}
	if name != nil {
		if err := checkField("name", strings.TrimSpace(*name), ruleName, "must be at most 100 characters long"); err != nil {
			return err
		}
	}
	if password != nil {
		if err := checkField("password", *password, rulePassword, "must be between 8 and 72 characters long"); err != nil {
			return err
		}
	}
	return nil
}

func (s *UserService) Delete(ctx context.Context, caller entity.Identity, id int64) error {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanMutate(u.ID, caller) {
		return apperr.Forbidden("you can only delete your own account")
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	helpers.LogInfo(s.Logger, "user deleted", logrus.Fields{"user_id": id, "by": caller.UserID})
	return nil
}

// UploadAvatar stores an image for the account and records its URL.
func (s *UserService) UploadAvatar(ctx context.Context, caller entity.Identity, id int64, r io.Reader, filename, contentType string) (*entity.User, error) {
	u, err := s.Editable(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	return s.StoreAvatar(ctx, u, r, filename, contentType)
}

// StoreAvatar uploads r as the avatar of u, an account returned by Editable.
func (s *UserService) StoreAvatar(ctx context.Context, u *entity.User, r io.Reader, filename, contentType string) (*entity.User, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperr.InvalidInput("avatar must be an image")
	}
	if s.Avatars == nil {
		return nil, apperr.Internal("avatar storage is not configured", nil)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := fmt.Sprintf("avatars/%d/%s%s", u.ID, uuid.NewString(), ext)
	url, err := s.Avatars.Put(ctx, objectPath, contentType, r)
	if err != nil {
		helpers.LogError(s.Logger, "avatar upload failed", err, logrus.Fields{"user_id": u.ID})
		return nil, apperr.Internal("could not store avatar", err)
	}
	u.AvatarURL = url
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
