package application

import (
	"context"
	"time"

	entrydomain "github.com/snhrk2951/illumi-contest-services/api/internal/entry/domain"
)

// EntryRepository exposes the admin operations on entries. Approve and Reject
// carry their status precondition into the store write, like the public-side
// transitions.
type EntryRepository interface {
	FindByID(ctx context.Context, id string) (*entrydomain.Entry, error)
	FindAll(ctx context.Context) ([]entrydomain.Entry, error)
	FindByStatus(ctx context.Context, status entrydomain.Status) ([]entrydomain.Entry, error)

	// Approve moves submitted → approved, assigning the entry number inside
	// the same write. A concurrent approval that committed the same number
	// first fails with domain.ErrEntryNumberTaken.
	Approve(ctx context.Context, id string, number int, at time.Time) (*entrydomain.Entry, error)
	// Reject moves submitted → rejected with the reason recorded.
	Reject(ctx context.Context, id, reason string, at time.Time) (*entrydomain.Entry, error)
	// Delete removes the entry regardless of status.
	Delete(ctx context.Context, id string) error
}

// PhotoRepository is the cascade target for admin deletions.
type PhotoRepository interface {
	ListForEntry(ctx context.Context, entryID string) ([]entrydomain.Photo, error)
	DeleteAllForEntry(ctx context.Context, entryID string) error
}

// EntryFilter narrows the admin listing.
type EntryFilter struct {
	Status *entrydomain.Status
}

// EntryService describes admin entry use-cases.
type EntryService interface {
	List(ctx context.Context, filter EntryFilter) ([]entrydomain.Entry, error)
	Detail(ctx context.Context, id string) (*entrydomain.Entry, []entrydomain.Photo, error)
	Approve(ctx context.Context, id string) (*entrydomain.Entry, error)
	Reject(ctx context.Context, id, reason string) (*entrydomain.Entry, error)
	Delete(ctx context.Context, id string) error
}
