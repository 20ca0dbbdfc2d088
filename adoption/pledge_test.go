package adoption

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helpline "github.com/mudasir256/helplineapp"
	"github.com/mudasir256/helplineapp/client"
)

func listedOpportunities() []helpline.SponsorshipOpportunity {
	return []helpline.SponsorshipOpportunity{
		{ID: "1", DisplayName: "Ahmed", TotalAmount: 500000, AmountNeeded: 200000, Domain: helpline.DomainHealth},
		{ID: "2", DisplayName: "Sana", TotalAmount: 240000, AmountNeeded: 240000, Domain: helpline.DomainHealth},
		{ID: "3", DisplayName: "Bilal", TotalAmount: 60000, AmountNeeded: 10000, Domain: helpline.DomainHealth},
		{ID: "4", DisplayName: "Taken", TotalAmount: 100, AmountNeeded: 100, Domain: helpline.DomainHealth, IsSponsored: true},
	}
}

func newBasket(api *fakeAPI, session Session) *Basket {
	store := NewStore(api, session, &memMirror{})
	return NewBasket(store, helpline.DomainHealth, listedOpportunities())
}

func TestToggleIdempotentAndExcludesSponsored(t *testing.T) {
	b := newBasket(newFakeAPI(), signedIn())

	b.Toggle("1")
	assert.Equal(t, []string{"1"}, b.Selected())
	b.Toggle("1")
	assert.Empty(t, b.Selected())

	b.Toggle("4")
	assert.Empty(t, b.Selected(), "sponsored item can never enter the selection")

	b.Toggle("unknown")
	assert.Empty(t, b.Selected())
}

func TestSelectedTotalRecomputed(t *testing.T) {
	b := newBasket(newFakeAPI(), signedIn())
	b.Toggle("1")
	b.Toggle("3")

	total := b.SelectedTotal()
	assert.Equal(t, 560000.0, total.Amount)
	assert.Equal(t, 210000.0, total.AmountNeeded)
	assert.Equal(t, 2, total.Count)

	b.Toggle("3")
	total = b.SelectedTotal()
	assert.Equal(t, 500000.0, total.Amount)
	assert.Equal(t, 1, total.Count)
}

func TestCommitPartialFailure(t *testing.T) {
	api := newFakeAPI()
	api.adoptErr["2"] = errors.New("already adopted")

	b := newBasket(api, signedIn())
	b.Toggle("1")
	b.Toggle("2")
	b.Toggle("3")

	result, err := b.Commit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, result.Requested)
	assert.Equal(t, 2, result.Succeeded)
	assert.Len(t, result.Errors, 1)
	assert.Error(t, result.Errors["2"])

	assert.Equal(t, []string{"2"}, b.Selected(), "only failed items stay selected")
	assert.Equal(t, 4, api.myAdoptionCalls, "commit refreshes exactly once after the batch settles")
}

func TestCommitValidatesBeforeNetwork(t *testing.T) {
	api := newFakeAPI()

	b := newBasket(api, &fakeSession{user: helpline.User{Name: "NoMail"}, ok: true})
	b.Toggle("1")
	_, err := b.Commit(context.Background())
	assert.True(t, client.IsValidation(err))

	b = newBasket(api, &fakeSession{user: helpline.User{Email: "a@b.pk"}, ok: true})
	b.Toggle("1")
	_, err = b.Commit(context.Background())
	assert.True(t, client.IsValidation(err), "display name is required")

	assert.Empty(t, api.adoptCalls, "fail-fast validation issues no requests")
	assert.Zero(t, api.myAdoptionCalls)
}

func TestCommitEmptySelection(t *testing.T) {
	api := newFakeAPI()
	b := newBasket(api, signedIn())

	result, err := b.Commit(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.Requested)
	assert.Empty(t, api.adoptCalls)
}

func TestClearEmptiesSelection(t *testing.T) {
	b := newBasket(newFakeAPI(), signedIn())
	b.Toggle("1")
	b.Toggle("2")
	b.Clear()
	assert.Empty(t, b.Selected())
}
