package store

import (
	"context"
	"errors"

	"shei-hoise-api/internal/domain"
	storerepo "shei-hoise-api/internal/repository/store"
)

// Service resolves store slugs to stores and checkout settings. It is the
// settings source the shipping selector consumes.
type Service struct {
	repo storeRepo
}

type storeRepo interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Store, error)
	GetSettings(ctx context.Context, storeID string) (*domain.StoreSettings, error)
}

func New(repo storerepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Store(ctx context.Context, slug string) (*domain.Store, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// Settings resolves slug -> store id -> settings. A store without a
// settings row gets empty settings rather than an error, so the storefront
// renders checkout with no shipping options instead of failing.
func (s *Service) Settings(ctx context.Context, slug string) (*domain.StoreSettings, error) {
	st, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	settings, err := s.repo.GetSettings(ctx, st.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.StoreSettings{StoreID: st.ID}, nil
		}
		return nil, err
	}
	return settings, nil
}
