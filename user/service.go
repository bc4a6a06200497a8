package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Alp4ka/relaypager"
)

// Repo is the persistence the service relies on.
type Repo interface {
	Store() relaypager.Store[User]
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, in CreateInput) (*User, error)
	Update(ctx context.Context, id string, in UpdateInput) (*User, error)
	Delete(ctx context.Context, id string) error
}

// Service exposes the user directory operations.
type Service struct {
	repo   Repo
	pager  *relaypager.Paginator[User]
	logger logrus.FieldLogger
}

// NewService creates a service. pager may be nil, in which case a newest-first
// paginator over repo.Store() is used.
func NewService(repo Repo, pager *relaypager.Paginator[User], logger logrus.FieldLogger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	if pager == nil {
		pager = relaypager.NewPaginator(repo.Store(), PageKey).WithLogger(logger)
	}

	return &Service{
		repo:   repo,
		pager:  pager,
		logger: logger.WithField("component", "user"),
	}
}

// ListPage returns a page of users in the paginator's canonical order.
func (s *Service) ListPage(ctx context.Context, req relaypager.PageRequest) (*relaypager.Connection[User], error) {
	return s.pager.ListPage(ctx, req)
}

// List returns all users without pagination.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.Get(ctx, id)
	return u, notFound(id, err)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*User, error) {
	u, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	s.logger.WithField("id", u.ID).Info("user created")

	return u, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*User, error) {
	u, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, notFound(id, err)
	}

	s.logger.WithField("id", id).Info("user updated")

	return u, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(id, err)
	}

	s.logger.WithField("id", id).Info("user deleted")

	return nil
}

func notFound(id string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: id %s", ErrNotFound, id)
	}

	return err
}
