package person

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("person not found")

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *CreatePersonRequest) (*Person, error) {
	p := &Person{
		Email: req.Email,
		Name:  req.Name,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Person, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// Exists reports whether the person id refers to a stored person.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return p != nil, nil
}
