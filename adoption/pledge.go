package adoption

import (
	"context"
	"sync"

	helpline "github.com/mudasir256/helplineapp"
	"github.com/mudasir256/helplineapp/client"
)

// Basket accumulates a user's in-progress multi-select within one domain's
// list. It is ephemeral: cleared on successful commit, on cancellation, and
// on navigating away.
type Basket struct {
	store  *Store
	domain helpline.Domain

	mu            sync.Mutex
	opportunities map[string]helpline.SponsorshipOpportunity
	selected      map[string]struct{}
}

// SelectionTotal is the aggregate over the current selection.
type SelectionTotal struct {
	Amount       float64
	AmountNeeded float64
	Count        int
}

// CommitResult reports a settled commit batch. Items succeed or fail
// independently; there is no rollback across the batch.
type CommitResult struct {
	Requested int
	Succeeded int
	Errors    map[string]error
}

// NewBasket builds a basket over the domain's listed opportunities (already
// normalized by the caller).
func NewBasket(store *Store, domain helpline.Domain, listed []helpline.SponsorshipOpportunity) *Basket {
	b := &Basket{
		store:         store,
		domain:        domain,
		opportunities: make(map[string]helpline.SponsorshipOpportunity, len(listed)),
		selected:      map[string]struct{}{},
	}
	for _, opp := range listed {
		b.opportunities[opp.ID] = opp
	}
	return b
}

func (b *Basket) sponsored(opp helpline.SponsorshipOpportunity) bool {
	return opp.IsSponsored || b.store.IsSponsored(b.domain, opp.ID)
}

// Toggle flips an opportunity in or out of the selection. Idempotent per id;
// already-sponsored opportunities can never enter the set.
func (b *Basket) Toggle(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	opp, known := b.opportunities[id]
	if !known || b.sponsored(opp) {
		return
	}
	if _, in := b.selected[id]; in {
		delete(b.selected, id)
	} else {
		b.selected[id] = struct{}{}
	}
}

// Selected returns the selected ids in list order.
func (b *Basket) Selected() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := make([]string, 0, len(b.selected))
	for id := range b.selected {
		ids = append(ids, id)
	}
	return ids
}

// SelectedTotal sums totalAmount and amountNeeded across the selected,
// not-yet-sponsored opportunities. Recomputed on every call.
func (b *Basket) SelectedTotal() SelectionTotal {
	b.mu.Lock()
	defer b.mu.Unlock()

	var total SelectionTotal
	for id := range b.selected {
		opp, known := b.opportunities[id]
		if !known || b.sponsored(opp) {
			continue
		}
		total.Amount += opp.TotalAmount
		total.AmountNeeded += opp.AmountNeeded
		total.Count++
	}
	return total
}

// Clear empties the selection (modal cancellation / navigation away).
func (b *Basket) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selected = map[string]struct{}{}
}

// Commit issues one adopt request per selected item, concurrently and
// independently: a failure on one item does not roll back the others. After
// all requests settle the store is refreshed exactly once and only the
// succeeded ids leave the selection. The result carries the success count;
// the caller decides how to present partial success.
func (b *Basket) Commit(ctx context.Context) (CommitResult, error) {
	var (
		user helpline.User
		ok   bool
	)
	if b.store.session != nil {
		user, ok = b.store.session.User()
	}
	if !ok || user.Email == "" {
		return CommitResult{}, &client.ValidationError{Reason: "committing requires a signed-in user with an email on file"}
	}
	if user.Name == "" {
		return CommitResult{}, &client.ValidationError{Reason: "committing requires a sponsor display name"}
	}

	ids := b.Selected()
	result := CommitResult{Requested: len(ids), Errors: map[string]error{}}
	if len(ids) == 0 {
		return result, nil
	}

	req := helpline.AdoptRequest{
		Email:        user.Email,
		AdopterName:  user.Name,
		AdopterEmail: user.Email,
		AdopterPhone: user.Phone,
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			err := b.store.api.Adopt(ctx, b.domain, id, req)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors[id] = err
				return
			}
			result.Succeeded++

			b.mu.Lock()
			delete(b.selected, id)
			b.mu.Unlock()
		}(id)
	}
	wg.Wait()

	_ = b.store.Refresh(ctx)
	return result, nil
}
