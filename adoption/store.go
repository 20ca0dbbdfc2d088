package adoption

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	helpline "github.com/mudasir256/helplineapp"
	"github.com/mudasir256/helplineapp/client"
)

// PartitionState tracks one domain's fetch lifecycle.
type PartitionState string

const (
	StateIdle     PartitionState = "idle"
	StateFetching PartitionState = "fetching"
	StateReady    PartitionState = "ready"
	StateFailed   PartitionState = "failed"
)

// API is the slice of the backend client the store depends on.
type API interface {
	MyAdoptions(ctx context.Context, domain helpline.Domain, who helpline.Identity) ([]helpline.RawRecord, error)
	Adopt(ctx context.Context, domain helpline.Domain, id string, req helpline.AdoptRequest) error
	Unadopt(ctx context.Context, domain helpline.Domain, id string, who helpline.Identity) error
}

// Session answers "who is acting". Injected explicitly rather than read from
// ambient globals; the zero answer disables reconciliation.
type Session interface {
	User() (helpline.User, bool)
}

type partition struct {
	state   PartitionState
	records []helpline.SponsorshipRecord
	err     error
	gen     uint64 // generation of the round that last wrote this partition
}

// Store holds the authoritative merged list of the user's confirmed
// sponsorships across the four domains. The backend set always wins; the
// mirror only serves offline display before the first successful refresh.
type Store struct {
	api     API
	session Session
	mirror  Mirror

	mu         sync.Mutex
	partitions map[helpline.Domain]*partition
	mirrored   []helpline.SponsorshipRecord
	gen        uint64

	flight singleflight.Group
}

func NewStore(api API, session Session, mirror Mirror) *Store {
	s := &Store{
		api:        api,
		session:    session,
		mirror:     mirror,
		partitions: map[helpline.Domain]*partition{},
	}
	for _, d := range helpline.Domains {
		s.partitions[d] = &partition{state: StateIdle}
	}
	if mirror != nil {
		if cached, err := mirror.Load(); err == nil {
			s.mirrored = cached
		}
	}
	return s
}

func (s *Store) identity() (helpline.User, helpline.Identity, bool) {
	if s.session == nil {
		return helpline.User{}, helpline.Identity{}, false
	}
	user, ok := s.session.User()
	if !ok || user.Email == "" {
		return helpline.User{}, helpline.Identity{}, false
	}
	return user, user.Identity(), true
}

// Refresh fetches all four domain partitions concurrently and independently;
// a failure in one does not block the others. Rounds are keyed by the store's
// mutation generation: concurrent callers of the same generation coalesce
// onto one in-flight round, while a Sponsor/Unsponsor bumps the generation so
// its follow-up refresh always starts a fresh round instead of being
// satisfied by fetches that predate the mutation.
func (s *Store) Refresh(ctx context.Context) error {
	user, who, ok := s.identity()
	if !ok {
		return &client.ValidationError{Reason: "no signed-in user with an email on file"}
	}

	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	_, err, _ := s.flight.Do(strconv.FormatUint(gen, 10), func() (any, error) {
		s.refreshAll(ctx, gen, user, who)
		return nil, nil
	})
	return err
}

// bump invalidates any in-flight round: the next Refresh runs against the
// backend again instead of joining a round that started before the mutation.
func (s *Store) bump() {
	s.mu.Lock()
	s.gen++
	s.mu.Unlock()
}

func (s *Store) refreshAll(ctx context.Context, gen uint64, user helpline.User, who helpline.Identity) {
	s.mu.Lock()
	for _, p := range s.partitions {
		if gen >= p.gen {
			p.state = StateFetching
		}
	}
	s.mu.Unlock()

	var wg sync.WaitGroup
	for _, d := range helpline.Domains {
		wg.Add(1)
		go func(domain helpline.Domain) {
			defer wg.Done()
			raws, err := s.api.MyAdoptions(ctx, domain, who)

			s.mu.Lock()
			defer s.mu.Unlock()
			p := s.partitions[domain]
			if gen < p.gen {
				// A newer round already wrote this partition; a result from
				// before the last mutation must not land on top of it.
				return
			}
			p.gen = gen
			if err != nil {
				// Keep the last successful records; the merge is the union
				// of whatever partitions most recently succeeded.
				p.state = StateFailed
				p.err = err
				return
			}
			p.state = StateReady
			p.err = nil
			p.records = toRecords(raws, domain, user.Email)
		}(d)
	}
	wg.Wait()

	s.mu.Lock()
	merged, anyReady := s.mergeLocked()
	s.mu.Unlock()

	if anyReady && s.mirror != nil {
		// Wholesale overwrite; the mirror is never merged with.
		_ = s.mirror.Store(merged)
	}
}

func toRecords(raws []helpline.RawRecord, domain helpline.Domain, email string) []helpline.SponsorshipRecord {
	records := make([]helpline.SponsorshipRecord, 0, len(raws))
	for _, raw := range raws {
		opp := helpline.Normalize(raw, domain)
		record := helpline.SponsorshipRecord{
			OpportunityID: opp.ID,
			Domain:        domain,
			DisplayName:   opp.DisplayName,
			Age:           opp.Age,
			Location:      opp.Location,
			Description:   opp.Description,
			TotalAmount:   opp.TotalAmount,
			AmountNeeded:  opp.AmountNeeded,
			SponsorEmail:  email,
		}
		if ts, err := time.Parse(time.RFC3339, raw.AdoptedAt); err == nil {
			record.AdoptedAt = ts
		}
		records = append(records, record)
	}
	return records
}

func (s *Store) mergeLocked() ([]helpline.SponsorshipRecord, bool) {
	var merged []helpline.SponsorshipRecord
	anyReady := false
	for _, d := range helpline.Domains {
		p := s.partitions[d]
		if p.state == StateReady {
			anyReady = true
		}
		merged = append(merged, p.records...)
	}
	return merged, anyReady
}

// Sponsorships returns the merged list. Before the first successful refresh
// it falls back to the offline mirror; without a signed-in user it is empty.
func (s *Store) Sponsorships() []helpline.SponsorshipRecord {
	if _, _, ok := s.identity(); !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged, anyReady := s.mergeLocked()
	if !anyReady && merged == nil {
		return append([]helpline.SponsorshipRecord(nil), s.mirrored...)
	}
	return merged
}

// IsSponsored reports whether the user holds a confirmed sponsorship for the
// given opportunity.
func (s *Store) IsSponsored(domain helpline.Domain, id string) bool {
	for _, r := range s.Sponsorships() {
		if r.Domain == domain && r.OpportunityID == id {
			return true
		}
	}
	return false
}

// Loading is true while any of the four partitions is fetching.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.partitions {
		if p.state == StateFetching {
			return true
		}
	}
	return false
}

// State exposes one partition's lifecycle state.
func (s *Store) State(domain helpline.Domain) PartitionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.partitions[domain]; ok {
		return p.state
	}
	return StateIdle
}

// Err returns the last refresh failure for one partition, if any.
func (s *Store) Err(domain helpline.Domain) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.partitions[domain]; ok {
		return p.err
	}
	return nil
}

// Sponsor registers a pledge for one opportunity and refreshes on success.
// The canonical set is backend-derived, so nothing is inserted optimistically.
func (s *Store) Sponsor(ctx context.Context, domain helpline.Domain, id string) error {
	user, _, ok := s.identity()
	if !ok {
		return &client.ValidationError{Reason: "sponsoring requires a signed-in user with an email on file"}
	}

	err := s.api.Adopt(ctx, domain, id, helpline.AdoptRequest{
		Email:        user.Email,
		AdopterName:  user.Name,
		AdopterEmail: user.Email,
		AdopterPhone: user.Phone,
	})
	if err != nil {
		return err
	}
	s.bump()
	return s.Refresh(ctx)
}

// Unsponsor removes a pledge and refreshes on success. On backend rejection
// local state is left untouched.
func (s *Store) Unsponsor(ctx context.Context, domain helpline.Domain, id string) error {
	_, who, ok := s.identity()
	if !ok {
		return &client.ValidationError{Reason: "removing a sponsorship requires a signed-in user with an email on file"}
	}

	if err := s.api.Unadopt(ctx, domain, id, who); err != nil {
		return err
	}
	s.bump()
	return s.Refresh(ctx)
}
