package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mudasir256/helplineapp/internal/domain"
	"github.com/mudasir256/helplineapp/internal/infra/database/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ConflictError{Message: "email already registered"}
	}
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.takeUser(ctx, "id = ?", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.takeUser(ctx, "email = ?", email)
}

func (r *UserRepository) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	return r.takeUser(ctx, "google_id = ?", googleID)
}

// LinkGoogle attaches a Google identity to an existing local account.
func (r *UserRepository) LinkGoogle(ctx context.Context, userID, googleID, picture string) error {
	updates := map[string]any{"google_id": googleID}
	if picture != "" {
		updates["picture"] = picture
	}
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Updates(updates).Error
}

func (r *UserRepository) takeUser(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where(query, arg).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
