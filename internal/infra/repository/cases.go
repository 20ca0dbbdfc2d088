package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	helpline "github.com/mudasir256/helplineapp"
	"github.com/mudasir256/helplineapp/internal/domain"
	"github.com/mudasir256/helplineapp/internal/infra/database/models"
)

// CaseRepository reads and mutates the four per-domain case tables through a
// single surface. Rows come back as models.Case so callers never branch on
// the concrete table type.
type CaseRepository struct {
	db *gorm.DB
}

func NewCaseRepository(db *gorm.DB) *CaseRepository {
	return &CaseRepository{db: db}
}

type casePtr[T any] interface {
	*T
	models.Case
}

func (r *CaseRepository) List(ctx context.Context, d helpline.Domain) ([]models.Case, error) {
	switch d {
	case helpline.DomainHealth:
		return listCases[models.HealthCase](ctx, r.db)
	case helpline.DomainHigherEducation:
		return listCases[models.HigherEducationCase](ctx, r.db)
	case helpline.DomainSchool:
		return listCases[models.SchoolCase](ctx, r.db)
	case helpline.DomainWelfare:
		return listCases[models.WelfareProject](ctx, r.db)
	}
	return nil, domain.InvalidInputError{Message: "unknown domain: " + string(d)}
}

func (r *CaseRepository) Get(ctx context.Context, d helpline.Domain, id string) (models.Case, error) {
	switch d {
	case helpline.DomainHealth:
		return getCase[models.HealthCase](ctx, r.db, id)
	case helpline.DomainHigherEducation:
		return getCase[models.HigherEducationCase](ctx, r.db, id)
	case helpline.DomainSchool:
		return getCase[models.SchoolCase](ctx, r.db, id)
	case helpline.DomainWelfare:
		return getCase[models.WelfareProject](ctx, r.db, id)
	}
	return nil, domain.InvalidInputError{Message: "unknown domain: " + string(d)}
}

// MarkAdopted flips the adoption columns for a case. Returns the number of
// rows that were still available, so callers can detect a lost race.
func (r *CaseRepository) MarkAdopted(ctx context.Context, d helpline.Domain, id string, userID string, at time.Time) (int64, error) {
	updates := map[string]any{
		"adopted":    true,
		"status":     helpline.StatusAdopted,
		"adopted_by": userID,
		"adopted_at": at,
	}
	tx := r.model(ctx, d)
	if tx == nil {
		return 0, domain.InvalidInputError{Message: "unknown domain: " + string(d)}
	}
	res := tx.Where("id = ? AND adopted = false", id).Updates(updates)
	return res.RowsAffected, res.Error
}

// ClearAdopted releases a case back to the available pool. Only the adopter
// recorded on the row may release it.
func (r *CaseRepository) ClearAdopted(ctx context.Context, d helpline.Domain, id string, userID string) (int64, error) {
	updates := map[string]any{
		"adopted":    false,
		"status":     "available",
		"adopted_by": nil,
		"adopted_at": nil,
	}
	tx := r.model(ctx, d)
	if tx == nil {
		return 0, domain.InvalidInputError{Message: "unknown domain: " + string(d)}
	}
	res := tx.Where("id = ? AND adopted_by = ?", id, userID).Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *CaseRepository) ListAdoptedBy(ctx context.Context, d helpline.Domain, userID string) ([]models.Case, error) {
	switch d {
	case helpline.DomainHealth:
		return listAdopted[models.HealthCase](ctx, r.db, userID)
	case helpline.DomainHigherEducation:
		return listAdopted[models.HigherEducationCase](ctx, r.db, userID)
	case helpline.DomainSchool:
		return listAdopted[models.SchoolCase](ctx, r.db, userID)
	case helpline.DomainWelfare:
		return listAdopted[models.WelfareProject](ctx, r.db, userID)
	}
	return nil, domain.InvalidInputError{Message: "unknown domain: " + string(d)}
}

func (r *CaseRepository) model(ctx context.Context, d helpline.Domain) *gorm.DB {
	db := r.db.WithContext(ctx)
	switch d {
	case helpline.DomainHealth:
		return db.Model(&models.HealthCase{})
	case helpline.DomainHigherEducation:
		return db.Model(&models.HigherEducationCase{})
	case helpline.DomainSchool:
		return db.Model(&models.SchoolCase{})
	case helpline.DomainWelfare:
		return db.Model(&models.WelfareProject{})
	}
	return nil
}

func listCases[T any, PT casePtr[T]](ctx context.Context, db *gorm.DB) ([]models.Case, error) {
	var rows []T
	err := db.WithContext(ctx).Order("c_date DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]models.Case, 0, len(rows))
	for i := range rows {
		out = append(out, PT(&rows[i]))
	}
	return out, nil
}

func listAdopted[T any, PT casePtr[T]](ctx context.Context, db *gorm.DB, userID string) ([]models.Case, error) {
	var rows []T
	err := db.WithContext(ctx).
		Where("adopted_by = ?", userID).
		Order("adopted_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]models.Case, 0, len(rows))
	for i := range rows {
		out = append(out, PT(&rows[i]))
	}
	return out, nil
}

func getCase[T any, PT casePtr[T]](ctx context.Context, db *gorm.DB, id string) (models.Case, error) {
	var row T
	err := db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, domain.NotFoundError{Resource: "case"}
	}
	if err != nil {
		return nil, err
	}
	return PT(&row), nil
}
