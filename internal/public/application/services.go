package application

import (
	"context"
	"time"

	entrydomain "github.com/snhrk2951/illumi-contest-services/api/internal/entry/domain"
)

// EntryRepository is the port over the entries collection used by the public
// context. Every mutating operation that names an expected status executes as
// one atomic store write: the status check and the update happen together, and
// a wrong-status miss surfaces as *domain.StateMismatchError.
type EntryRepository interface {
	FindByID(ctx context.Context, id string) (*entrydomain.Entry, error)
	FindByOwner(ctx context.Context, ownerID string) (*entrydomain.Entry, error)
	FindByStatus(ctx context.Context, status entrydomain.Status) ([]entrydomain.Entry, error)
	FindByPlaceKey(ctx context.Context, placeKey string) ([]entrydomain.Entry, error)

	// Insert creates a draft; a second entry for the same owner fails with
	// domain.ErrOwnerHasEntry.
	Insert(ctx context.Context, entry *entrydomain.Entry) error
	// UpdateDraft replaces name and address while the entry is still a draft.
	UpdateDraft(ctx context.Context, id, name string, address entrydomain.Address) (*entrydomain.Entry, error)
	// StartSubmitting moves draft → submitting, locking the draft fields in.
	StartSubmitting(ctx context.Context, id string) (*entrydomain.Entry, error)
	// FinalizeSubmission moves submitting → submitted with the resolved address.
	FinalizeSubmission(ctx context.Context, id string, address entrydomain.Address, at time.Time) (*entrydomain.Entry, error)
	// RevertToDraft moves submitting → draft, dropping coordinates again. It is
	// the compensation step of the submission saga.
	RevertToDraft(ctx context.Context, id string) (*entrydomain.Entry, error)
	// DeleteDraft removes the entry only while it is a draft.
	DeleteDraft(ctx context.Context, id string) error
}

// PhotoRepository handles entry photo metadata.
type PhotoRepository interface {
	Attach(ctx context.Context, photo *entrydomain.Photo) error
	ListForEntry(ctx context.Context, entryID string) ([]entrydomain.Photo, error)
	DeleteAllForEntry(ctx context.Context, entryID string) error
}

// Geocoder resolves a free-text address into coordinates. It fails closed:
// no coordinates means an error, never a zero value.
type Geocoder interface {
	Resolve(ctx context.Context, addressText string) (entrydomain.Coordinates, error)
}

// UpdateEntryCommand carries the draft fields an owner may edit.
type UpdateEntryCommand struct {
	Name        string
	AddressText string
	PlaceKey    string
}

// AttachPhotoCommand registers uploaded photo metadata onto the owner's entry.
type AttachPhotoCommand struct {
	StoredPath  string
	PublicURL   string
	ContentType string
}

// EntryCommandService handles owner-facing write use-cases.
// EntryCommandService は応募者本人によるエントリー操作ユースケースを提供する。
type EntryCommandService interface {
	Create(ctx context.Context, ownerID string) (*entrydomain.Entry, error)
	UpdateDraft(ctx context.Context, ownerID string, cmd UpdateEntryCommand) (*entrydomain.Entry, error)
	Submit(ctx context.Context, ownerID string) (*entrydomain.Entry, error)
	AttachPhoto(ctx context.Context, ownerID string, cmd AttachPhotoCommand) (*entrydomain.Photo, error)
	Withdraw(ctx context.Context, ownerID string) error
}

// EntryQueryService describes the public read use-cases.
// EntryQueryService は公開側のエントリー参照ユースケースを提供するリーダーモデル。
type EntryQueryService interface {
	Mine(ctx context.Context, ownerID string) (*entrydomain.Entry, []entrydomain.Photo, error)
	ListApproved(ctx context.Context) ([]entrydomain.Entry, error)
}
