package adoption

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helpline "github.com/mudasir256/helplineapp"
	"github.com/mudasir256/helplineapp/client"
)

type fakeAPI struct {
	mu          sync.Mutex
	adoptions   map[helpline.Domain][]helpline.RawRecord
	failDomains map[helpline.Domain]error
	adoptErr    map[string]error

	myAdoptionCalls int
	adoptCalls      []string
	unadoptCalls    []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		adoptions:   map[helpline.Domain][]helpline.RawRecord{},
		failDomains: map[helpline.Domain]error{},
		adoptErr:    map[string]error{},
	}
}

func (f *fakeAPI) MyAdoptions(ctx context.Context, domain helpline.Domain, who helpline.Identity) ([]helpline.RawRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.myAdoptionCalls++
	if err, ok := f.failDomains[domain]; ok {
		return nil, err
	}
	return f.adoptions[domain], nil
}

func (f *fakeAPI) Adopt(ctx context.Context, domain helpline.Domain, id string, req helpline.AdoptRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.adoptCalls = append(f.adoptCalls, id)
	if err, ok := f.adoptErr[id]; ok {
		return err
	}
	f.adoptions[domain] = append(f.adoptions[domain], helpline.RawRecord{ID: helpline.FlexID(id), Name: "added"})
	return nil
}

func (f *fakeAPI) Unadopt(ctx context.Context, domain helpline.Domain, id string, who helpline.Identity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unadoptCalls = append(f.unadoptCalls, id)
	if err, ok := f.adoptErr[id]; ok {
		return err
	}
	return nil
}

// gatedAPI lets a test hold one refresh round open: the first welfare fetch
// blocks until the gate is released, and healthDone closes once the first
// health fetch has returned.
type gatedAPI struct {
	*fakeAPI
	healthDone  chan struct{}
	welfareGate chan struct{}

	gateMu       sync.Mutex
	welfareCalls int
	healthOnce   sync.Once
}

func newGatedAPI() *gatedAPI {
	return &gatedAPI{
		fakeAPI:     newFakeAPI(),
		healthDone:  make(chan struct{}),
		welfareGate: make(chan struct{}),
	}
}

func (g *gatedAPI) MyAdoptions(ctx context.Context, domain helpline.Domain, who helpline.Identity) ([]helpline.RawRecord, error) {
	if domain == helpline.DomainWelfare {
		g.gateMu.Lock()
		first := g.welfareCalls == 0
		g.welfareCalls++
		g.gateMu.Unlock()
		if first {
			<-g.welfareGate
		}
	}
	out, err := g.fakeAPI.MyAdoptions(ctx, domain, who)
	if domain == helpline.DomainHealth {
		g.healthOnce.Do(func() { close(g.healthDone) })
	}
	return out, err
}

type fakeSession struct {
	user helpline.User
	ok   bool
}

func (s *fakeSession) User() (helpline.User, bool) { return s.user, s.ok }

type memMirror struct {
	mu      sync.Mutex
	records []helpline.SponsorshipRecord
	stores  int
}

func (m *memMirror) Load() ([]helpline.SponsorshipRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records, nil
}

func (m *memMirror) Store(records []helpline.SponsorshipRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = records
	m.stores++
	return nil
}

func signedIn() *fakeSession {
	return &fakeSession{user: helpline.User{ID: "u1", Email: "a@b.pk", Name: "Aisha"}, ok: true}
}

func TestRefreshMergesIndependentPartitions(t *testing.T) {
	api := newFakeAPI()
	api.adoptions[helpline.DomainHigherEducation] = []helpline.RawRecord{{ID: "he1", StudentName: "Sana"}}
	api.adoptions[helpline.DomainSchool] = []helpline.RawRecord{{ID: "sc1", Name: "Bilal"}}
	api.adoptions[helpline.DomainWelfare] = []helpline.RawRecord{{ID: "w1", ProjectName: "Clean Water"}}
	api.failDomains[helpline.DomainHealth] = errors.New("boom")

	store := NewStore(api, signedIn(), &memMirror{})
	require.NoError(t, store.Refresh(context.Background()))

	records := store.Sponsorships()
	assert.Len(t, records, 3, "merged list holds exactly the succeeding partitions")
	for _, r := range records {
		assert.NotEqual(t, helpline.DomainHealth, r.Domain)
	}
	assert.Equal(t, StateFailed, store.State(helpline.DomainHealth))
	assert.Equal(t, StateReady, store.State(helpline.DomainWelfare))
	assert.Error(t, store.Err(helpline.DomainHealth))
}

func TestRefreshKeepsLastGoodOnLaterFailure(t *testing.T) {
	api := newFakeAPI()
	api.adoptions[helpline.DomainHealth] = []helpline.RawRecord{{ID: "h1", PatientName: "Ahmed"}}

	store := NewStore(api, signedIn(), &memMirror{})
	require.NoError(t, store.Refresh(context.Background()))
	require.Len(t, store.Sponsorships(), 1)

	api.mu.Lock()
	api.failDomains[helpline.DomainHealth] = errors.New("flaky")
	api.mu.Unlock()
	require.NoError(t, store.Refresh(context.Background()))

	assert.Len(t, store.Sponsorships(), 1, "failed partition keeps its last successful records")
}

func TestRefreshRequiresJoinKey(t *testing.T) {
	api := newFakeAPI()
	store := NewStore(api, &fakeSession{}, &memMirror{})

	err := store.Refresh(context.Background())
	assert.True(t, client.IsValidation(err))
	assert.Zero(t, api.myAdoptionCalls, "no network without a join key")
	assert.Empty(t, store.Sponsorships())
}

func TestMirrorOverwrittenWholesale(t *testing.T) {
	api := newFakeAPI()
	api.adoptions[helpline.DomainWelfare] = []helpline.RawRecord{{ID: "w1", ProjectName: "Meals"}}

	mirror := &memMirror{records: []helpline.SponsorshipRecord{
		{OpportunityID: "stale", Domain: helpline.DomainHealth},
		{OpportunityID: "stale2", Domain: helpline.DomainSchool},
	}}
	store := NewStore(api, signedIn(), mirror)
	require.NoError(t, store.Refresh(context.Background()))

	require.Len(t, mirror.records, 1)
	assert.Equal(t, "w1", mirror.records[0].OpportunityID)
}

func TestSponsorshipsFallBackToMirrorBeforeFirstRefresh(t *testing.T) {
	mirror := &memMirror{records: []helpline.SponsorshipRecord{
		{OpportunityID: "h1", Domain: helpline.DomainHealth, DisplayName: "Ahmed"},
	}}
	store := NewStore(newFakeAPI(), signedIn(), mirror)

	records := store.Sponsorships()
	require.Len(t, records, 1)
	assert.Equal(t, "Ahmed", records[0].DisplayName)
}

func TestSponsorRequiresEmailAndRefreshes(t *testing.T) {
	api := newFakeAPI()
	store := NewStore(api, &fakeSession{user: helpline.User{Name: "NoMail"}, ok: true}, &memMirror{})

	err := store.Sponsor(context.Background(), helpline.DomainHealth, "h9")
	assert.True(t, client.IsValidation(err))
	assert.Empty(t, api.adoptCalls)

	store = NewStore(api, signedIn(), &memMirror{})
	require.NoError(t, store.Sponsor(context.Background(), helpline.DomainHealth, "h9"))
	assert.Equal(t, []string{"h9"}, api.adoptCalls)
	assert.Equal(t, 4, api.myAdoptionCalls, "successful sponsor triggers one four-partition refresh")
}

func TestSponsorDuringInFlightRefreshIsObserved(t *testing.T) {
	api := newGatedAPI()
	store := NewStore(api, signedIn(), &memMirror{})

	roundA := make(chan error, 1)
	go func() { roundA <- store.Refresh(context.Background()) }()
	<-api.healthDone // round A's (pre-sponsor) health fetch has landed

	require.NoError(t, store.Sponsor(context.Background(), helpline.DomainHealth, "h1"))
	assert.True(t, store.IsSponsored(helpline.DomainHealth, "h1"),
		"the refresh after sponsoring must not be satisfied by fetches that predate the adopt")

	close(api.welfareGate)
	require.NoError(t, <-roundA)
	assert.True(t, store.IsSponsored(helpline.DomainHealth, "h1"),
		"late results from the earlier round must not clobber newer partitions")
}

func TestUnsponsorRejectionLeavesStateUntouched(t *testing.T) {
	api := newFakeAPI()
	api.adoptions[helpline.DomainSchool] = []helpline.RawRecord{{ID: "sc1", Name: "Bilal"}}

	store := NewStore(api, signedIn(), &memMirror{})
	require.NoError(t, store.Refresh(context.Background()))
	before := store.Sponsorships()

	api.mu.Lock()
	api.adoptErr["sc1"] = errors.New("rejected")
	api.mu.Unlock()

	err := store.Unsponsor(context.Background(), helpline.DomainSchool, "sc1")
	require.Error(t, err)
	assert.Equal(t, before, store.Sponsorships(), "no tentative removal on rejection")
}

func TestLoadingWhileAnyPartitionFetching(t *testing.T) {
	store := NewStore(newFakeAPI(), signedIn(), &memMirror{})
	assert.False(t, store.Loading())

	store.mu.Lock()
	store.partitions[helpline.DomainHealth].state = StateFetching
	store.mu.Unlock()
	assert.True(t, store.Loading())
}
