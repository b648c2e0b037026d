// internal/content/implementation.go
package content

import (
	"context"
	"fmt"

	"iddirhub/internal/domain"
	"iddirhub/pkg/kvstore"

	"github.com/google/uuid"
)

// service implements the Service interface.
type service struct {
	store *kvstore.Store
}

// NewService creates a new content service instance.
func NewService(store *kvstore.Store) Service {
	return &service{store: store}
}

func (s *service) GetSettings(ctx context.Context) (*domain.Settings, error) {
	var settings domain.Settings
	if err := s.store.Get(ctx, domain.CollectionSettings, &settings); err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return &settings, nil
}

func (s *service) UpdateSettings(ctx context.Context, patch SettingsPatch) (*domain.Settings, error) {
	var settings domain.Settings
	err := s.store.Update(ctx, func(st *kvstore.Tx) error {
		if err := st.Get(domain.CollectionSettings, &settings); err != nil {
			return err
		}
		if patch.HeroBgURL != nil {
			settings.HeroBgURL = *patch.HeroBgURL
		}
		if patch.LoginBgURL != nil {
			settings.LoginBgURL = *patch.LoginBgURL
		}
		if patch.LogoURL != nil {
			settings.LogoURL = *patch.LogoURL
		}
		return st.Set(domain.CollectionSettings, settings)
	})
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	return &settings, nil
}

func (s *service) GetGallery(ctx context.Context) ([]domain.GalleryItem, error) {
	var items []domain.GalleryItem
	if err := s.store.Get(ctx, domain.CollectionGallery, &items); err != nil {
		return nil, fmt.Errorf("load gallery: %w", err)
	}
	return items, nil
}

// AddGalleryItem prepends so the newest upload shows first.
func (s *service) AddGalleryItem(ctx context.Context, item domain.GalleryItem) (*domain.GalleryItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	err := s.store.Update(ctx, func(st *kvstore.Tx) error {
		var items []domain.GalleryItem
		if err := st.Get(domain.CollectionGallery, &items); err != nil {
			return err
		}
		items = append([]domain.GalleryItem{item}, items...)
		return st.Set(domain.CollectionGallery, items)
	})
	if err != nil {
		return nil, fmt.Errorf("add gallery item: %w", err)
	}
	return &item, nil
}

func (s *service) DeleteGalleryItem(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(st *kvstore.Tx) error {
		var items []domain.GalleryItem
		if err := st.Get(domain.CollectionGallery, &items); err != nil {
			return err
		}
		kept := items[:0]
		for _, item := range items {
			if item.ID != id {
				kept = append(kept, item)
			}
		}
		return st.Set(domain.CollectionGallery, kept)
	})
}

func (s *service) GetLeadership(ctx context.Context) ([]domain.LeadershipMember, error) {
	var leaders []domain.LeadershipMember
	if err := s.store.Get(ctx, domain.CollectionLeadership, &leaders); err != nil {
		return nil, fmt.Errorf("load leadership: %w", err)
	}
	return leaders, nil
}

// UpdateLeadershipMember replaces an existing entry; unknown ids are a
// silent no-op.
func (s *service) UpdateLeadershipMember(ctx context.Context, m domain.LeadershipMember) error {
	return s.store.Update(ctx, func(st *kvstore.Tx) error {
		var leaders []domain.LeadershipMember
		if err := st.Get(domain.CollectionLeadership, &leaders); err != nil {
			return err
		}
		for i := range leaders {
			if leaders[i].ID == m.ID {
				leaders[i] = m
				return st.Set(domain.CollectionLeadership, leaders)
			}
		}
		return nil
	})
}
