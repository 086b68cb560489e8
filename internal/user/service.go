package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/evstore/storefront/internal/apperr"
)

type Service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log}
}

// Register creates an account. Username and email must both be unused.
func (s *Service) Register(ctx context.Context, in NewUser) (*User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := in.Validate(); err != nil {
		return nil, err
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &User{ID: uuid.New(), Username: in.Username, Email: in.Email, PasswordHash: hash}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("user registered", zap.Stringer("user_id", u.ID))
	return u, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, id)
}

// Authenticate returns the user when email and password match. A wrong
// password and an unknown email are indistinguishable: both return ok=false.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, bool, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, false, apperr.Invalid("credentials", "email and password are required")
	}
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if !CheckPassword(u.PasswordHash, password) {
		return nil, false, nil
	}
	return u, true, nil
}
