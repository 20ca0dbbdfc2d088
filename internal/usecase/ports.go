package usecase

import (
	"context"
	"time"

	helpline "github.com/mudasir256/helplineapp"
	"github.com/mudasir256/helplineapp/internal/domain"
	"github.com/mudasir256/helplineapp/internal/infra/database/models"
	"github.com/mudasir256/helplineapp/internal/service"
)

// CaseRepository defines storage operations over the four case tables.
type CaseRepository interface {
	List(ctx context.Context, d helpline.Domain) ([]models.Case, error)
	Get(ctx context.Context, d helpline.Domain, id string) (models.Case, error)
	MarkAdopted(ctx context.Context, d helpline.Domain, id string, userID string, at time.Time) (int64, error)
	ClearAdopted(ctx context.Context, d helpline.Domain, id string, userID string) (int64, error)
	ListAdoptedBy(ctx context.Context, d helpline.Domain, userID string) ([]models.Case, error)
}

// SponsorshipRepository defines persistence for the user-case adoption links.
type SponsorshipRepository interface {
	Create(ctx context.Context, s *models.Sponsorship) error
	Delete(ctx context.Context, d helpline.Domain, caseID, userID string) error
	Get(ctx context.Context, d helpline.Domain, caseID, userID string) (*models.Sponsorship, error)
	ListByUser(ctx context.Context, d helpline.Domain, userID string) ([]models.Sponsorship, error)
}

// UserRepository defines persistence/lookup for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	LinkGoogle(ctx context.Context, userID, googleID, picture string) error
}

// TokenService issues and revokes session tokens.
type TokenService interface {
	Issue(ctx context.Context, userID, email string) (*service.TokenPair, error)
	Redeem(ctx context.Context, refreshToken string) (string, error)
	Revoke(ctx context.Context, refreshToken string) error
}

// Signal publishes adoption events to the realtime feed.
type Signal interface {
	Publish(ctx context.Context, event domain.Event) error
}
