package usecase

import (
	"context"
	"errors"
	"time"

	helpline "github.com/mudasir256/helplineapp"
	"github.com/mudasir256/helplineapp/internal/domain"
	"github.com/mudasir256/helplineapp/internal/infra/database/models"
)

type AdoptionUsecase struct {
	cases        CaseRepository
	sponsorships SponsorshipRepository
	users        UserRepository
	signal       Signal
}

func NewAdoptionUsecase(
	cases CaseRepository,
	sponsorships SponsorshipRepository,
	users UserRepository,
	signal Signal,
) *AdoptionUsecase {
	return &AdoptionUsecase{
		cases:        cases,
		sponsorships: sponsorships,
		users:        users,
		signal:       signal,
	}
}

func (uc *AdoptionUsecase) List(ctx context.Context, d helpline.Domain) ([]models.Case, error) {
	return uc.cases.List(ctx, d)
}

func (uc *AdoptionUsecase) Get(ctx context.Context, d helpline.Domain, id string) (models.Case, error) {
	return uc.cases.Get(ctx, d, id)
}

// Adopt records a sponsorship for the user identified by the request email.
// The case must exist and still be available; losing the race to another
// sponsor is a conflict, not an error in the caller's request.
func (uc *AdoptionUsecase) Adopt(ctx context.Context, d helpline.Domain, id string, req helpline.AdoptRequest) (*models.Sponsorship, error) {
	email := req.Email
	if email == "" {
		email = req.AdopterEmail
	}
	if email == "" {
		return nil, domain.InvalidInputError{Message: "email is required"}
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	c, err := uc.cases.Get(ctx, d, id)
	if err != nil {
		return nil, err
	}
	if c.Adoption().Adopted {
		return nil, domain.ConflictError{Message: "case already adopted"}
	}

	now := time.Now()
	affected, err := uc.cases.MarkAdopted(ctx, d, id, user.ID, now)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ConflictError{Message: "case already adopted"}
	}

	snapshot := c.Snapshot()
	sponsorship := &models.Sponsorship{
		Domain:       string(d),
		CaseID:       id,
		UserID:       user.ID,
		Name:         snapshot.DisplayName,
		Age:          snapshot.Age,
		Location:     snapshot.Location,
		Description:  snapshot.Description,
		Amount:       snapshot.TotalAmount,
		AmountNeeded: snapshot.AmountNeeded,
		AdoptedAt:    now,
	}
	if err := uc.sponsorships.Create(ctx, sponsorship); err != nil {
		// Release the flag again, otherwise the case is stranded adopted
		// with no sponsorship row and no owner who could ever unadopt it.
		_, _ = uc.cases.ClearAdopted(ctx, d, id, user.ID)
		return nil, err
	}

	// The adoption is durable at this point; feed delivery is best effort.
	_ = uc.signal.Publish(ctx, domain.Event{
		Type:   "adopted",
		Domain: string(d),
		CaseID: id,
		UserID: user.ID,
	})

	return sponsorship, nil
}

// Unadopt releases a sponsorship. Only the owning user may release it; the
// identity is matched by user id when present, falling back to email.
func (uc *AdoptionUsecase) Unadopt(ctx context.Context, d helpline.Domain, id string, identity helpline.Identity) error {
	user, err := uc.resolveUser(ctx, identity)
	if err != nil {
		return err
	}

	sponsorship, err := uc.sponsorships.Get(ctx, d, id, user.ID)
	if err != nil {
		return err
	}

	if _, err := uc.cases.ClearAdopted(ctx, d, id, user.ID); err != nil {
		return err
	}
	if err := uc.sponsorships.Delete(ctx, d, id, user.ID); err != nil {
		// Restore the flag so the surviving sponsorship row and the case
		// stay in agreement; otherwise the row would block a re-adopt of a
		// case that looks available.
		_, _ = uc.cases.MarkAdopted(ctx, d, id, user.ID, sponsorship.AdoptedAt)
		return err
	}

	_ = uc.signal.Publish(ctx, domain.Event{
		Type:   "unadopted",
		Domain: string(d),
		CaseID: id,
		UserID: user.ID,
	})

	return nil
}

// MyAdoptions lists the cases a user currently sponsors in one domain. An
// unknown identity yields an empty list rather than an error, so a fresh
// install with no account sees empty partitions.
func (uc *AdoptionUsecase) MyAdoptions(ctx context.Context, d helpline.Domain, identity helpline.Identity) ([]models.Case, error) {
	user, err := uc.resolveUser(ctx, identity)
	if errors.Is(err, domain.ErrNotFound) {
		return []models.Case{}, nil
	}
	if err != nil {
		return nil, err
	}
	return uc.cases.ListAdoptedBy(ctx, d, user.ID)
}

func (uc *AdoptionUsecase) resolveUser(ctx context.Context, identity helpline.Identity) (*models.User, error) {
	if identity.UserID != "" {
		return uc.users.GetByID(ctx, identity.UserID)
	}
	if identity.Email != "" {
		return uc.users.GetByEmail(ctx, identity.Email)
	}
	return nil, domain.InvalidInputError{Message: "userId or email is required"}
}
