package adoption

import (
	helpline "github.com/mudasir256/helplineapp"
	"github.com/mudasir256/helplineapp/client"
)

// MirrorKey is the fixed local-storage key holding the last-known-good merged
// sponsorship list, shown when the user is offline at next launch.
const MirrorKey = "adoptedItems"

// Mirror persists the merged sponsorship list. It is overwritten wholesale on
// every successful merge and is never the source of truth while online.
type Mirror interface {
	Load() ([]helpline.SponsorshipRecord, error)
	Store(records []helpline.SponsorshipRecord) error
}

// StorageMirror keeps the mirror in the app's local key-value store, next to
// the profile and tokens.
type StorageMirror struct {
	storage *client.Storage
}

func NewStorageMirror(storage *client.Storage) *StorageMirror {
	return &StorageMirror{storage: storage}
}

func (m *StorageMirror) Load() ([]helpline.SponsorshipRecord, error) {
	var records []helpline.SponsorshipRecord
	if _, err := m.storage.Get(MirrorKey, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (m *StorageMirror) Store(records []helpline.SponsorshipRecord) error {
	if records == nil {
		records = []helpline.SponsorshipRecord{}
	}
	return m.storage.Set(MirrorKey, records)
}
