package repository

import (
	"context"

	"postshub/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	UpdateProfile(ctx context.Context, user *model.User) error
	GetHashedPassword(ctx context.Context, userID int64) (string, error)
	UpdatePassword(ctx context.Context, userID int64, newHash, newSalt string) (bool, error)
	SetVIP(ctx context.Context, userID int64, vip bool) error
	// DeleteByUsername is a test support path; normal flows never hard-delete users.
	DeleteByUsername(ctx context.Context, username string) (bool, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	// CreateBulk inserts every post in a single transaction; a failure rolls
	// back all prior inserts.
	CreateBulk(ctx context.Context, posts []*model.Post) error
	GetByID(ctx context.Context, postID int64) (*model.Post, error)
	GetByOwner(ctx context.Context, userID int64) ([]model.Post, error)
	GetAll(ctx context.Context) ([]model.Post, error)
	// Update matches rows by (PostID, UserID) and reports whether a row
	// changed. A caller that does not own the post gets false, not an error.
	Update(ctx context.Context, post *model.Post) (bool, error)
	// Delete reports whether a row was removed; deleting a missing post is
	// not an error.
	Delete(ctx context.Context, postID int64) (bool, error)
	// TopNByLikes and TopNByShares return at most n posts sorted descending
	// by the metric. A nil ownerID means all posts; ties keep row order.
	TopNByLikes(ctx context.Context, n int, ownerID *int64) ([]model.Post, error)
	TopNByShares(ctx context.Context, n int, ownerID *int64) ([]model.Post, error)
	// DeleteByAuthor is a test support path.
	DeleteByAuthor(ctx context.Context, author string) (bool, error)
}
