package users

import (
	"context"
	"errors"
	"strings"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Create registers a dashboard identity. An empty role defaults to client.
func (s *Service) Create(ctx context.Context, email, role string) (int64, error) {
	if s == nil || s.Repo == nil {
		return 0, errors.New("users service not configured")
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return 0, errors.New("email is required")
	}
	role = strings.TrimSpace(role)
	if role == "" {
		role = DefaultRole
	}
	return s.Repo.Create(ctx, email, role)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return User{}, errors.New("email is required")
	}
	return s.Repo.GetByEmail(ctx, email)
}
