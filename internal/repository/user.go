package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"postshub/internal/database"
	"postshub/internal/model"
)

// userRepository implements UserRepository over the shared database manager.
type userRepository struct {
	m *database.Manager
}

// NewUserRepository creates a new user repository
func NewUserRepository(m *database.Manager) UserRepository {
	return &userRepository{m: m}
}

// Create inserts a new user. The generated id and timestamps are written
// back to u. A duplicate username surfaces as model.ErrUsernameExists.
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	db, err := r.m.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	now := time.Now()
	query := `
		INSERT INTO User (Username, HashedPassword, Salt, FirstName, LastName, IsVIP, CreatedDate, UpdatedOn)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	res, err := db.ExecContext(ctx, query,
		u.Username,
		u.HashedPassword,
		u.Salt,
		u.FirstName,
		u.LastName,
		u.IsVIP,
		now,
		now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %q", model.ErrUsernameExists, u.Username)
		}
		return fmt.Errorf("failed to insert user: %w", mapError(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read generated user id: %w", err)
	}
	u.ID = id
	u.CreatedAt = now
	u.UpdatedAt = now
	return nil
}

// GetByUsername retrieves a user by their username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	db, err := r.m.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	query := `
		SELECT UserID, Username, HashedPassword, Salt, FirstName, LastName, IsVIP, CreatedDate, UpdatedOn
		FROM User
		WHERE Username = ?
	`
	var u model.User
	if err := db.GetContext(ctx, &u, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", mapError(err))
	}
	return &u, nil
}

// ExistsByUsername checks if a username is already taken
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	db, err := r.m.DB()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM User WHERE Username = ?)`
	if err := db.GetContext(ctx, &exists, query, username); err != nil {
		return false, fmt.Errorf("failed to check username existence: %w", mapError(err))
	}
	return exists, nil
}

// UpdateProfile rewrites the profile and credential fields of the row
// matching u.ID and touches UpdatedOn.
func (r *userRepository) UpdateProfile(ctx context.Context, u *model.User) error {
	db, err := r.m.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	now := time.Now()
	query := `
		UPDATE User
		SET Username = ?, HashedPassword = ?, Salt = ?, FirstName = ?, LastName = ?, UpdatedOn = ?
		WHERE UserID = ?
	`
	_, err = db.ExecContext(ctx, query,
		u.Username,
		u.HashedPassword,
		u.Salt,
		u.FirstName,
		u.LastName,
		now,
		u.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %q", model.ErrUsernameExists, u.Username)
		}
		return fmt.Errorf("failed to update user profile: %w", mapError(err))
	}
	u.UpdatedAt = now
	return nil
}

// GetHashedPassword returns the stored hash for the given user id.
func (r *userRepository) GetHashedPassword(ctx context.Context, userID int64) (string, error) {
	db, err := r.m.DB()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	var hash string
	query := `SELECT HashedPassword FROM User WHERE UserID = ?`
	if err := db.GetContext(ctx, &hash, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", model.ErrUserNotFound
		}
		return "", fmt.Errorf("failed to get hashed password: %w", mapError(err))
	}
	return hash, nil
}

// UpdatePassword rewrites hash and salt for the given user id, reporting
// whether a row changed.
func (r *userRepository) UpdatePassword(ctx context.Context, userID int64, newHash, newSalt string) (bool, error) {
	db, err := r.m.DB()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	query := `UPDATE User SET HashedPassword = ?, Salt = ?, UpdatedOn = ? WHERE UserID = ?`
	res, err := db.ExecContext(ctx, query, newHash, newSalt, time.Now(), userID)
	if err != nil {
		return false, fmt.Errorf("failed to update password: %w", mapError(err))
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

// SetVIP toggles the VIP flag for the given user id.
func (r *userRepository) SetVIP(ctx context.Context, userID int64, vip bool) error {
	db, err := r.m.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	query := `UPDATE User SET IsVIP = ?, UpdatedOn = ? WHERE UserID = ?`
	if _, err := db.ExecContext(ctx, query, vip, time.Now(), userID); err != nil {
		return fmt.Errorf("failed to set VIP flag: %w", mapError(err))
	}
	return nil
}

// DeleteByUsername removes a user row. Test support only.
func (r *userRepository) DeleteByUsername(ctx context.Context, username string) (bool, error) {
	db, err := r.m.DB()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	res, err := db.ExecContext(ctx, `DELETE FROM User WHERE Username = ?`, username)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", mapError(err))
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}
