package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	helpline "github.com/mudasir256/helplineapp"
	"github.com/mudasir256/helplineapp/internal/domain"
	"github.com/mudasir256/helplineapp/internal/infra/database/models"
)

type SponsorshipRepository struct {
	db *gorm.DB
}

func NewSponsorshipRepository(db *gorm.DB) *SponsorshipRepository {
	return &SponsorshipRepository{db: db}
}

func (r *SponsorshipRepository) Create(ctx context.Context, s *models.Sponsorship) error {
	err := r.db.WithContext(ctx).Create(s).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ConflictError{Message: "case already adopted by this user"}
	}
	return err
}

func (r *SponsorshipRepository) Delete(ctx context.Context, d helpline.Domain, caseID, userID string) error {
	res := r.db.WithContext(ctx).
		Where("domain = ? AND case_id = ? AND user_id = ?", string(d), caseID, userID).
		Delete(&models.Sponsorship{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "sponsorship"}
	}
	return nil
}

func (r *SponsorshipRepository) Get(ctx context.Context, d helpline.Domain, caseID, userID string) (*models.Sponsorship, error) {
	var s models.Sponsorship
	err := r.db.WithContext(ctx).
		Where("domain = ? AND case_id = ? AND user_id = ?", string(d), caseID, userID).
		Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFoundError{Resource: "sponsorship"}
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SponsorshipRepository) ListByUser(ctx context.Context, d helpline.Domain, userID string) ([]models.Sponsorship, error) {
	var out []models.Sponsorship
	err := r.db.WithContext(ctx).
		Where("domain = ? AND user_id = ?", string(d), userID).
		Order("adopted_at DESC").
		Find(&out).Error
	return out, err
}
