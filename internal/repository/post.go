package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"postshub/internal/database"
	"postshub/internal/model"
)

const postColumns = `PostID, Content, Author, Likes, Shares, DateTime, UserID, CreatedDate, UpdatedOn`

type postRepository struct {
	m *database.Manager
}

func NewPostRepository(m *database.Manager) PostRepository {
	return &postRepository{m: m}
}

// Create inserts a new post. The generated id and timestamps are written
// back to p.
func (r *postRepository) Create(ctx context.Context, p *model.Post) error {
	db, err := r.m.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	return r.insert(ctx, db, p)
}

// CreateBulk inserts every post inside one transaction. A failure on any
// row rolls back the whole batch.
func (r *postRepository) CreateBulk(ctx context.Context, posts []*model.Post) error {
	if len(posts) == 0 {
		return nil
	}
	db, err := r.m.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", mapError(err))
	}
	defer tx.Rollback()

	for i, p := range posts {
		if err := r.insert(ctx, tx, p); err != nil {
			return fmt.Errorf("insert post %d of %d: %w", i+1, len(posts), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", mapError(err))
	}
	return nil
}

// insert runs against either the plain handle or an open transaction.
func (r *postRepository) insert(ctx context.Context, e sqlx.ExecerContext, p *model.Post) error {
	now := time.Now()
	query := `
		INSERT INTO Post (Content, Author, Likes, Shares, DateTime, UserID, CreatedDate, UpdatedOn)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	res, err := e.ExecContext(ctx, query,
		p.Content,
		p.Author,
		p.Likes,
		p.Shares,
		p.PostedAt,
		p.UserID,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", mapError(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read generated post id: %w", err)
	}
	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

// GetByID retrieves a single post.
func (r *postRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	db, err := r.m.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	var p model.Post
	query := `SELECT ` + postColumns + ` FROM Post WHERE PostID = ?`
	if err := db.GetContext(ctx, &p, query, postID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", mapError(err))
	}
	return &p, nil
}

// GetByOwner returns all posts owned by userID in insertion order.
func (r *postRepository) GetByOwner(ctx context.Context, userID int64) ([]model.Post, error) {
	db, err := r.m.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	var posts []model.Post
	query := `SELECT ` + postColumns + ` FROM Post WHERE UserID = ? ORDER BY PostID`
	if err := db.SelectContext(ctx, &posts, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get posts by owner: %w", mapError(err))
	}
	return posts, nil
}

// GetAll returns every post in insertion order.
func (r *postRepository) GetAll(ctx context.Context) ([]model.Post, error) {
	db, err := r.m.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	var posts []model.Post
	query := `SELECT ` + postColumns + ` FROM Post ORDER BY PostID`
	if err := db.SelectContext(ctx, &posts, query); err != nil {
		return nil, fmt.Errorf("failed to get all posts: %w", mapError(err))
	}
	return posts, nil
}

// Update rewrites content, counters and post time. The row is matched by
// (PostID, UserID): a caller that does not own the post changes nothing and
// gets false back. That double-key match is the authorization check.
func (r *postRepository) Update(ctx context.Context, p *model.Post) (bool, error) {
	db, err := r.m.DB()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	now := time.Now()
	query := `
		UPDATE Post
		SET Content = ?, Author = ?, Likes = ?, Shares = ?, DateTime = ?, UpdatedOn = ?
		WHERE PostID = ? AND UserID = ?
	`
	res, err := db.ExecContext(ctx, query,
		p.Content,
		p.Author,
		p.Likes,
		p.Shares,
		p.PostedAt,
		now,
		p.ID,
		p.UserID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update post: %w", mapError(err))
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows > 0 {
		p.UpdatedAt = now
	}
	return rows > 0, nil
}

// Delete removes a post by id, reporting whether a row was removed.
func (r *postRepository) Delete(ctx context.Context, postID int64) (bool, error) {
	db, err := r.m.DB()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	res, err := db.ExecContext(ctx, `DELETE FROM Post WHERE PostID = ?`, postID)
	if err != nil {
		return false, fmt.Errorf("failed to delete post: %w", mapError(err))
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

// TopNByLikes returns up to n posts with the most likes, optionally scoped
// to one owner. Ties keep row order, which SQLite makes stable here.
func (r *postRepository) TopNByLikes(ctx context.Context, n int, ownerID *int64) ([]model.Post, error) {
	return r.topN(ctx, "Likes", n, ownerID)
}

// TopNByShares is TopNByLikes for the share counter.
func (r *postRepository) TopNByShares(ctx context.Context, n int, ownerID *int64) ([]model.Post, error) {
	return r.topN(ctx, "Shares", n, ownerID)
}

func (r *postRepository) topN(ctx context.Context, metric string, n int, ownerID *int64) ([]model.Post, error) {
	db, err := r.m.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	// metric is one of the two fixed column names above, never user input.
	var posts []model.Post
	if ownerID != nil {
		query := `SELECT ` + postColumns + ` FROM Post WHERE UserID = ? ORDER BY ` + metric + ` DESC LIMIT ?`
		err = db.SelectContext(ctx, &posts, query, *ownerID, n)
	} else {
		query := `SELECT ` + postColumns + ` FROM Post ORDER BY ` + metric + ` DESC LIMIT ?`
		err = db.SelectContext(ctx, &posts, query, n)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get top posts by %s: %w", metric, mapError(err))
	}
	return posts, nil
}

// DeleteByAuthor removes every post with the given author. Test support only.
func (r *postRepository) DeleteByAuthor(ctx context.Context, author string) (bool, error) {
	db, err := r.m.DB()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	res, err := db.ExecContext(ctx, `DELETE FROM Post WHERE Author = ?`, author)
	if err != nil {
		return false, fmt.Errorf("failed to delete posts by author: %w", mapError(err))
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}
