package service

import (
	"log/slog"
	"time"

	"postshub/internal/auth"
	"postshub/internal/config"
	"postshub/internal/database"
	"postshub/internal/repository"
)

// Factory is the composition root. It binds both services and the token
// issuer to one database manager so every caller shares the same handle.
type Factory struct {
	users  *UserService
	posts  *PostService
	tokens *auth.TokenIssuer
}

func NewFactory(m *database.Manager, cfg *config.Config, log *slog.Logger) *Factory {
	hasher := auth.NewAuthenticator()
	return &Factory{
		users:  NewUserService(repository.NewUserRepository(m), hasher, log),
		posts:  NewPostService(repository.NewPostRepository(m), log),
		tokens: auth.NewTokenIssuer(cfg.TokenSecret, time.Duration(cfg.TokenMaxAge)*time.Second),
	}
}

func (f *Factory) Users() *UserService { return f.users }

func (f *Factory) Posts() *PostService { return f.posts }

func (f *Factory) Tokens() *auth.TokenIssuer { return f.tokens }
