package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	helpline "github.com/mudasir256/helplineapp"
	"github.com/mudasir256/helplineapp/internal/infra/database/models"
)

const listCacheTTL = 60 * time.Second

// CachedCaseRepository is a read-through memcached layer over the case
// repository. Only the full per-domain listings are cached; point reads and
// writes go straight to postgres, and writes drop the affected listing.
type CachedCaseRepository struct {
	inner *CaseRepository
	mc    *memcache.Client
}

func NewCachedCaseRepository(inner *CaseRepository, mc *memcache.Client) *CachedCaseRepository {
	return &CachedCaseRepository{inner: inner, mc: mc}
}

func listCacheKey(d helpline.Domain) string {
	return "helpline:cases:" + string(d)
}

// cachedCaseList is the serialized cache entry. Concrete row types are kept
// per domain so rows round-trip without losing their wire shape.
type cachedCaseList struct {
	Health    []models.HealthCase          `json:"health,omitempty"`
	HigherEd  []models.HigherEducationCase `json:"higherEd,omitempty"`
	School    []models.SchoolCase          `json:"school,omitempty"`
	Welfare   []models.WelfareProject      `json:"welfare,omitempty"`
	FetchedAt time.Time                    `json:"fetchedAt"`
}

func (c *CachedCaseRepository) List(ctx context.Context, d helpline.Domain) ([]models.Case, error) {
	if item, err := c.mc.Get(listCacheKey(d)); err == nil {
		if cases, ok := decodeCaseList(item.Value, d); ok {
			return cases, nil
		}
	}

	cases, err := c.inner.List(ctx, d)
	if err != nil {
		return nil, err
	}

	if value, err := encodeCaseList(cases, d); err == nil {
		// Best effort: a cold cache just means another postgres read.
		_ = c.mc.Set(&memcache.Item{
			Key:        listCacheKey(d),
			Value:      value,
			Expiration: int32(listCacheTTL / time.Second),
		})
	}
	return cases, nil
}

func (c *CachedCaseRepository) Get(ctx context.Context, d helpline.Domain, id string) (models.Case, error) {
	return c.inner.Get(ctx, d, id)
}

func (c *CachedCaseRepository) MarkAdopted(ctx context.Context, d helpline.Domain, id string, userID string, at time.Time) (int64, error) {
	n, err := c.inner.MarkAdopted(ctx, d, id, userID, at)
	if err == nil && n > 0 {
		c.invalidate(d)
	}
	return n, err
}

func (c *CachedCaseRepository) ClearAdopted(ctx context.Context, d helpline.Domain, id string, userID string) (int64, error) {
	n, err := c.inner.ClearAdopted(ctx, d, id, userID)
	if err == nil && n > 0 {
		c.invalidate(d)
	}
	return n, err
}

func (c *CachedCaseRepository) ListAdoptedBy(ctx context.Context, d helpline.Domain, userID string) ([]models.Case, error) {
	return c.inner.ListAdoptedBy(ctx, d, userID)
}

func (c *CachedCaseRepository) invalidate(d helpline.Domain) {
	// A failed delete only leaves an entry that expires within listCacheTTL.
	_ = c.mc.Delete(listCacheKey(d))
}

func encodeCaseList(cases []models.Case, d helpline.Domain) ([]byte, error) {
	entry := cachedCaseList{FetchedAt: time.Now()}
	switch d {
	case helpline.DomainHealth:
		for _, c := range cases {
			entry.Health = append(entry.Health, *c.(*models.HealthCase))
		}
	case helpline.DomainHigherEducation:
		for _, c := range cases {
			entry.HigherEd = append(entry.HigherEd, *c.(*models.HigherEducationCase))
		}
	case helpline.DomainSchool:
		for _, c := range cases {
			entry.School = append(entry.School, *c.(*models.SchoolCase))
		}
	case helpline.DomainWelfare:
		for _, c := range cases {
			entry.Welfare = append(entry.Welfare, *c.(*models.WelfareProject))
		}
	}
	return json.Marshal(entry)
}

func decodeCaseList(value []byte, d helpline.Domain) ([]models.Case, bool) {
	var entry cachedCaseList
	if err := json.Unmarshal(value, &entry); err != nil {
		return nil, false
	}
	var out []models.Case
	switch d {
	case helpline.DomainHealth:
		for i := range entry.Health {
			out = append(out, &entry.Health[i])
		}
	case helpline.DomainHigherEducation:
		for i := range entry.HigherEd {
			out = append(out, &entry.HigherEd[i])
		}
	case helpline.DomainSchool:
		for i := range entry.School {
			out = append(out, &entry.School[i])
		}
	case helpline.DomainWelfare:
		for i := range entry.Welfare {
			out = append(out, &entry.Welfare[i])
		}
	}
	return out, true
}
