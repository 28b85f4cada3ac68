// Package memory provides in-memory counterparts of the Mongo repositories.
// Each operation holds the store lock for its whole duration, matching the
// single-write atomicity the Mongo adapters get from FindOneAndUpdate, so the
// application layer behaves identically against either implementation.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	entrydomain "github.com/snhrk2951/illumi-contest-services/api/internal/entry/domain"
)

// EntryRepository keeps entries in a map guarded by one mutex.
type EntryRepository struct {
	mu      sync.Mutex
	entries map[string]*entrydomain.Entry
}

func NewEntryRepository() *EntryRepository {
	return &EntryRepository{entries: make(map[string]*entrydomain.Entry)}
}

func (r *EntryRepository) FindByID(_ context.Context, id string) (*entrydomain.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok {
		return nil, entrydomain.ErrNotFound
	}
	return cloneEntry(entry), nil
}

func (r *EntryRepository) FindByOwner(_ context.Context, ownerID string) (*entrydomain.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.entries {
		if entry.OwnerID == ownerID {
			return cloneEntry(entry), nil
		}
	}
	return nil, entrydomain.ErrNotFound
}

func (r *EntryRepository) FindAll(_ context.Context) ([]entrydomain.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]entrydomain.Entry, 0, len(r.entries))
	for _, entry := range r.entries {
		result = append(result, *cloneEntry(entry))
	}
	sortByCreatedAt(result)
	return result, nil
}

func (r *EntryRepository) FindByStatus(_ context.Context, status entrydomain.Status) ([]entrydomain.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]entrydomain.Entry, 0)
	for _, entry := range r.entries {
		if entry.Status == status {
			result = append(result, *cloneEntry(entry))
		}
	}
	sortByCreatedAt(result)
	return result, nil
}

func (r *EntryRepository) FindByPlaceKey(_ context.Context, placeKey string) ([]entrydomain.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]entrydomain.Entry, 0)
	for _, entry := range r.entries {
		if entry.Address.PlaceKey == placeKey {
			result = append(result, *cloneEntry(entry))
		}
	}
	sortByCreatedAt(result)
	return result, nil
}

func (r *EntryRepository) Insert(_ context.Context, entry *entrydomain.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.entries {
		if existing.OwnerID == entry.OwnerID {
			return entrydomain.ErrOwnerHasEntry
		}
	}

	if strings.TrimSpace(entry.ID) == "" {
		entry.ID = uuid.NewString()
	}
	r.entries[entry.ID] = cloneEntry(entry)
	return nil
}

func (r *EntryRepository) UpdateDraft(_ context.Context, id, name string, address entrydomain.Address) (*entrydomain.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, err := r.lockedGet(id, entrydomain.StatusDraft)
	if err != nil {
		return nil, err
	}

	entry.Name = name
	entry.Address = address.Draft()
	entry.UpdatedAt = time.Now().UTC()
	return cloneEntry(entry), nil
}

func (r *EntryRepository) StartSubmitting(_ context.Context, id string) (*entrydomain.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, err := r.lockedGet(id, entrydomain.StatusDraft)
	if err != nil {
		return nil, err
	}

	entry.Status = entrydomain.StatusSubmitting
	entry.UpdatedAt = time.Now().UTC()
	return cloneEntry(entry), nil
}

func (r *EntryRepository) FinalizeSubmission(_ context.Context, id string, address entrydomain.Address, at time.Time) (*entrydomain.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, err := r.lockedGet(id, entrydomain.StatusSubmitting)
	if err != nil {
		return nil, err
	}

	entry.Status = entrydomain.StatusSubmitted
	entry.Address = address
	entry.SubmittedAt = &at
	entry.UpdatedAt = time.Now().UTC()
	return cloneEntry(entry), nil
}

func (r *EntryRepository) RevertToDraft(_ context.Context, id string) (*entrydomain.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, err := r.lockedGet(id, entrydomain.StatusSubmitting)
	if err != nil {
		return nil, err
	}

	entry.Status = entrydomain.StatusDraft
	entry.Address = entry.Address.Draft()
	entry.SubmittedAt = nil
	entry.UpdatedAt = time.Now().UTC()
	return cloneEntry(entry), nil
}

func (r *EntryRepository) Approve(_ context.Context, id string, number int, at time.Time) (*entrydomain.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, err := r.lockedGet(id, entrydomain.StatusSubmitted)
	if err != nil {
		return nil, err
	}

	// Mirrors the partial unique index on entryNumber, which only arbitrates
	// once the status-filtered write has matched.
	for _, existing := range r.entries {
		if existing.EntryNumber != nil && *existing.EntryNumber == number {
			return nil, entrydomain.ErrEntryNumberTaken
		}
	}

	entry.Status = entrydomain.StatusApproved
	entry.EntryNumber = &number
	entry.ApprovedAt = &at
	entry.UpdatedAt = time.Now().UTC()
	return cloneEntry(entry), nil
}

func (r *EntryRepository) Reject(_ context.Context, id, reason string, at time.Time) (*entrydomain.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, err := r.lockedGet(id, entrydomain.StatusSubmitted)
	if err != nil {
		return nil, err
	}

	entry.Status = entrydomain.StatusRejected
	entry.RejectedAt = &at
	entry.RejectedReason = reason
	entry.UpdatedAt = time.Now().UTC()
	return cloneEntry(entry), nil
}

func (r *EntryRepository) DeleteDraft(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.lockedGet(id, entrydomain.StatusDraft); err != nil {
		return err
	}
	delete(r.entries, id)
	return nil
}

func (r *EntryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return entrydomain.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

// lockedGet fetches the stored entry and enforces the transition precondition.
// Callers must hold the mutex.
func (r *EntryRepository) lockedGet(id string, expected entrydomain.Status) (*entrydomain.Entry, error) {
	entry, ok := r.entries[id]
	if !ok {
		return nil, entrydomain.ErrNotFound
	}
	if entry.Status != expected {
		return nil, &entrydomain.StateMismatchError{EntryID: id, Expected: expected, Actual: entry.Status}
	}
	return entry, nil
}

func cloneEntry(entry *entrydomain.Entry) *entrydomain.Entry {
	clone := *entry
	if entry.Address.Coordinates != nil {
		coords := *entry.Address.Coordinates
		clone.Address.Coordinates = &coords
	}
	clone.EntryNumber = cloneIntPtr(entry.EntryNumber)
	clone.SubmittedAt = cloneTimePtr(entry.SubmittedAt)
	clone.ApprovedAt = cloneTimePtr(entry.ApprovedAt)
	clone.RejectedAt = cloneTimePtr(entry.RejectedAt)
	return &clone
}

func cloneIntPtr(value *int) *int {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}

func cloneTimePtr(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}

func sortByCreatedAt(entries []entrydomain.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
}
