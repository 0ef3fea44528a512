package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"postshub/internal/model"
	"postshub/internal/repository"
)

// PostService handles business logic for posts
type PostService struct {
	repo     repository.PostRepository
	validate *validator.Validate
	log      *slog.Logger
}

func NewPostService(repo repository.PostRepository, log *slog.Logger) *PostService {
	return &PostService{
		repo:     repo,
		validate: validator.New(),
		log:      log,
	}
}

// checkPost rejects malformed posts before they reach storage: empty
// content or author, missing owner, negative counters, zero post time.
func (s *PostService) checkPost(p *model.Post) error {
	if err := s.validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", model.ErrValidation, err)
	}
	if p.PostedAt.IsZero() {
		return fmt.Errorf("%w: missing post time", model.ErrValidation)
	}
	return nil
}

// Add persists a single post owned by p.UserID.
func (s *PostService) Add(ctx context.Context, p *model.Post) error {
	if err := s.checkPost(p); err != nil {
		return postErr("add", err)
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return postErr("add", err)
	}
	s.log.Info("post added", "post_id", p.ID, "user_id", p.UserID)
	return nil
}

// AddBulk persists every post in one transaction; if any row fails nothing
// is committed.
func (s *PostService) AddBulk(ctx context.Context, posts []*model.Post) error {
	for _, p := range posts {
		if err := s.checkPost(p); err != nil {
			return postErr("add bulk", err)
		}
	}
	if err := s.repo.CreateBulk(ctx, posts); err != nil {
		return postErr("add bulk", err)
	}
	s.log.Info("bulk posts added", "count", len(posts))
	return nil
}

// Delete removes the given post by id.
func (s *PostService) Delete(ctx context.Context, p *model.Post) error {
	deleted, err := s.repo.Delete(ctx, p.ID)
	if err != nil {
		return postErr("delete", err)
	}
	if !deleted {
		return postErr("delete", model.ErrPostNotFound)
	}
	s.log.Info("post deleted", "post_id", p.ID)
	return nil
}

// GetByID fetches one post.
func (s *PostService) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	p, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			return nil, postErr("get", model.ErrPostNotFound)
		}
		return nil, postErr("get", err)
	}
	return p, nil
}

// Update rewrites a post's fields. The row is matched by (id, owner), so a
// caller that does not own the post changes nothing and gets false back.
func (s *PostService) Update(ctx context.Context, p *model.Post) (bool, error) {
	if err := s.checkPost(p); err != nil {
		return false, postErr("update", err)
	}
	changed, err := s.repo.Update(ctx, p)
	if err != nil {
		return false, postErr("update", err)
	}
	return changed, nil
}

// GetByOwner returns user's posts in insertion order.
func (s *PostService) GetByOwner(ctx context.Context, user *model.User) ([]model.Post, error) {
	posts, err := s.repo.GetByOwner(ctx, user.ID)
	if err != nil {
		return nil, postErr("get by owner", err)
	}
	return posts, nil
}

// GetAll returns every post.
func (s *PostService) GetAll(ctx context.Context) ([]model.Post, error) {
	posts, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, postErr("get all", err)
	}
	return posts, nil
}

// TopNByLikes returns up to n posts with the most likes; a nil user means
// all posts rather than one owner's.
func (s *PostService) TopNByLikes(ctx context.Context, n int, user *model.User) ([]model.Post, error) {
	posts, err := s.repo.TopNByLikes(ctx, n, ownerID(user))
	if err != nil {
		return nil, postErr("top by likes", err)
	}
	return posts, nil
}

// TopNByShares is TopNByLikes for the share counter.
func (s *PostService) TopNByShares(ctx context.Context, n int, user *model.User) ([]model.Post, error) {
	posts, err := s.repo.TopNByShares(ctx, n, ownerID(user))
	if err != nil {
		return nil, postErr("top by shares", err)
	}
	return posts, nil
}

func ownerID(user *model.User) *int64 {
	if user == nil {
		return nil
	}
	return &user.ID
}
