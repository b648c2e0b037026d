// internal/content/service.go
package content

import (
	"context"

	"iddirhub/internal/domain"
)

// SettingsPatch carries a partial settings update; nil fields stay
// untouched.
type SettingsPatch struct {
	HeroBgURL  *string `json:"heroBgUrl,omitempty"`
	LoginBgURL *string `json:"loginBgUrl,omitempty"`
	LogoURL    *string `json:"logoUrl,omitempty"`
}

// Service defines the interface for the content service.
type Service interface {
	GetSettings(ctx context.Context) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, patch SettingsPatch) (*domain.Settings, error)

	GetGallery(ctx context.Context) ([]domain.GalleryItem, error)
	AddGalleryItem(ctx context.Context, item domain.GalleryItem) (*domain.GalleryItem, error)
	DeleteGalleryItem(ctx context.Context, id string) error

	GetLeadership(ctx context.Context) ([]domain.LeadershipMember, error)
	UpdateLeadershipMember(ctx context.Context, m domain.LeadershipMember) error
}
