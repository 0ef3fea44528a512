package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"postshub/internal/auth"
	"postshub/internal/model"
	"postshub/internal/repository"
)

// UserService handles business logic for user accounts
type UserService struct {
	repo     repository.UserRepository
	hasher   *auth.Authenticator
	validate *validator.Validate
	log      *slog.Logger
}

func NewUserService(repo repository.UserRepository, hasher *auth.Authenticator, log *slog.Logger) *UserService {
	return &UserService{
		repo:     repo,
		hasher:   hasher,
		validate: validator.New(),
		log:      log,
	}
}

// Register creates a new standard (non-VIP) account. A taken username
// surfaces as model.ErrUsernameExists.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, userErr("register", fmt.Errorf("%w: %v", model.ErrValidation, err))
	}

	exists, err := s.repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, userErr("register", err)
	}
	if exists {
		return nil, userErr("register", model.ErrUsernameExists)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, userErr("register", err)
	}
	hashed, err := s.hasher.Hash(req.Password, salt)
	if err != nil {
		return nil, userErr("register", err)
	}

	user := &model.User{
		Username:       req.Username,
		HashedPassword: hashed,
		Salt:           salt,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		IsVIP:          false,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		// The unique index may still fire between the existence check and
		// the insert; both paths report the same business error.
		if errors.Is(err, model.ErrUsernameExists) {
			return nil, userErr("register", model.ErrUsernameExists)
		}
		return nil, userErr("register", err)
	}

	s.log.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login authenticates a user with username and password. Unknown username
// and wrong password produce the identical model.ErrInvalidCredentials, in
// the return value and in the log line.
func (s *UserService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			s.log.Info("login failed")
			return nil, model.ErrInvalidCredentials
		}
		return nil, userErr("login", err)
	}

	ok, err := s.hasher.Verify(password, user.HashedPassword, user.Salt)
	if err != nil {
		return nil, userErr("login", err)
	}
	if !ok {
		s.log.Info("login failed")
		return nil, model.ErrInvalidCredentials
	}
	return user, nil
}

// UpdateProfile persists profile field changes for the user matched by id.
func (s *UserService) UpdateProfile(ctx context.Context, user *model.User) error {
	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, model.ErrUsernameExists) {
			return userErr("update profile", model.ErrUsernameExists)
		}
		return userErr("update profile", err)
	}
	return nil
}

// UpdatePassword regenerates salt and hash for newPassword and persists the
// credential fields. An empty newPassword rewrites the existing credentials
// unchanged, so calling it with no new password is a no-op on the secret.
func (s *UserService) UpdatePassword(ctx context.Context, user *model.User, newPassword string) (bool, error) {
	if newPassword != "" {
		salt, err := s.hasher.GenerateSalt()
		if err != nil {
			return false, userErr("update password", err)
		}
		hashed, err := s.hasher.Hash(newPassword, salt)
		if err != nil {
			return false, userErr("update password", err)
		}
		user.Salt = salt
		user.HashedPassword = hashed
	}

	changed, err := s.repo.UpdatePassword(ctx, user.ID, user.HashedPassword, user.Salt)
	if err != nil {
		return false, userErr("update password", err)
	}
	return changed, nil
}

// UsernameExists reports whether username is taken.
func (s *UserService) UsernameExists(ctx context.Context, username string) (bool, error) {
	exists, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return false, userErr("check username", err)
	}
	return exists, nil
}

// HashedPassword returns the stored hash for the given user id.
func (s *UserService) HashedPassword(ctx context.Context, userID int64) (string, error) {
	hash, err := s.repo.GetHashedPassword(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return "", userErr("get hashed password", model.ErrUserNotFound)
		}
		return "", userErr("get hashed password", err)
	}
	return hash, nil
}

// UpgradeToVIP marks the account as VIP. Applying it twice is a no-op.
func (s *UserService) UpgradeToVIP(ctx context.Context, user *model.User) error {
	if err := s.repo.SetVIP(ctx, user.ID, true); err != nil {
		return userErr("upgrade to VIP", err)
	}
	user.IsVIP = true
	s.log.Info("user upgraded to VIP", "user_id", user.ID)
	return nil
}

// DegradeToStandard clears the VIP flag. Applying it twice is a no-op.
func (s *UserService) DegradeToStandard(ctx context.Context, user *model.User) error {
	if err := s.repo.SetVIP(ctx, user.ID, false); err != nil {
		return userErr("degrade to standard", err)
	}
	user.IsVIP = false
	s.log.Info("user degraded to standard", "user_id", user.ID)
	return nil
}
