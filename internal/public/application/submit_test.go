package application

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	entrydomain "github.com/snhrk2951/illumi-contest-services/api/internal/entry/domain"
	"github.com/snhrk2951/illumi-contest-services/api/internal/infrastructure/memory"
)

var testBounds = entrydomain.Bounds{MinLat: -33.70, MinLng: 115.20, MaxLat: -33.55, MaxLng: 115.50}

type stubGeocoder struct {
	coords entrydomain.Coordinates
	err    error
	// onResolve runs before the result is returned, between saga steps A and C.
	onResolve func()
	calls     int
}

func (g *stubGeocoder) Resolve(_ context.Context, _ string) (entrydomain.Coordinates, error) {
	g.calls++
	if g.onResolve != nil {
		g.onResolve()
	}
	if g.err != nil {
		return entrydomain.Coordinates{}, g.err
	}
	return g.coords, nil
}

type submitFixture struct {
	entries  *memory.EntryRepository
	photos   *memory.PhotoRepository
	geocoder *stubGeocoder
	svc      EntryCommandService
}

func newSubmitFixture(t *testing.T) *submitFixture {
	t.Helper()

	f := &submitFixture{
		entries:  memory.NewEntryRepository(),
		photos:   memory.NewPhotoRepository(),
		geocoder: &stubGeocoder{coords: entrydomain.Coordinates{Lat: -33.63, Lng: 115.39}},
	}
	f.svc = NewEntryCommandService(EntryCommandConfig{
		Entries:  f.entries,
		Photos:   f.photos,
		Geocoder: f.geocoder,
		Bounds:   testBounds,
		Logger:   log.New(io.Discard, "", 0),
	})
	return f
}

// newDraft registers a filled-in draft for the owner and returns it.
func (f *submitFixture) newDraft(t *testing.T, ownerID, name, addressText, placeKey string) *entrydomain.Entry {
	t.Helper()
	ctx := context.Background()

	_, err := f.svc.Create(ctx, ownerID)
	require.NoError(t, err)

	entry, err := f.svc.UpdateDraft(ctx, ownerID, UpdateEntryCommand{
		Name:        name,
		AddressText: addressText,
		PlaceKey:    placeKey,
	})
	require.NoError(t, err)
	return entry
}

func (f *submitFixture) status(t *testing.T, id string) entrydomain.Status {
	t.Helper()
	entry, err := f.entries.FindByID(context.Background(), id)
	require.NoError(t, err)
	return entry.Status
}

func TestSubmit_HappyPath(t *testing.T) {
	f := newSubmitFixture(t)
	draft := f.newDraft(t, "owner-1", "Test", "1 Example St", "place-1")

	entry, err := f.svc.Submit(context.Background(), "owner-1")
	require.NoError(t, err)

	assert.Equal(t, entrydomain.StatusSubmitted, entry.Status)
	require.NotNil(t, entry.SubmittedAt)
	require.NotNil(t, entry.Address.Coordinates)
	assert.Equal(t, -33.63, entry.Address.Coordinates.Lat)
	assert.Equal(t, 115.39, entry.Address.Coordinates.Lng)
	assert.Equal(t, "1 Example St", entry.Address.Text)
	assert.Equal(t, draft.ID, entry.ID)
	assert.Equal(t, 1, f.geocoder.calls)
}

func TestSubmit_GeocodeFailureReverts(t *testing.T) {
	f := newSubmitFixture(t)
	draft := f.newDraft(t, "owner-1", "Test", "1 Example St", "place-1")
	f.geocoder.err = errors.New("provider unavailable")

	_, err := f.svc.Submit(context.Background(), "owner-1")
	require.Error(t, err)

	var geocodeErr *entrydomain.GeocodeFailedError
	require.ErrorAs(t, err, &geocodeErr)
	assert.Contains(t, err.Error(), "1 Example St")

	// The entry is back in draft with its pre-submission address intact.
	reverted, findErr := f.entries.FindByID(context.Background(), draft.ID)
	require.NoError(t, findErr)
	assert.Equal(t, entrydomain.StatusDraft, reverted.Status)
	assert.Equal(t, "1 Example St", reverted.Address.Text)
	assert.Equal(t, "place-1", reverted.Address.PlaceKey)
	assert.Nil(t, reverted.Address.Coordinates)
	assert.Nil(t, reverted.SubmittedAt)
}

func TestSubmit_DuplicatePlacePreCheck(t *testing.T) {
	f := newSubmitFixture(t)
	ctx := context.Background()

	// Owner 1 already holds the place key with a submitted entry.
	first := f.newDraft(t, "owner-1", "First", "1 Example St", "place-p")
	_, err := f.svc.Submit(ctx, "owner-1")
	require.NoError(t, err)

	second := f.newDraft(t, "owner-2", "Second", "1 Example Street", "place-p")
	_, err = f.svc.Submit(ctx, "owner-2")

	var conflict *entrydomain.PlaceClaimedError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "place-p", conflict.PlaceKey)

	// The pre-check aborts before any write, so the loser is still a draft
	// and the winner is untouched.
	assert.Equal(t, entrydomain.StatusDraft, f.status(t, second.ID))
	assert.Equal(t, entrydomain.StatusSubmitted, f.status(t, first.ID))
	// Only the winner's submission reached the geocoder.
	assert.Equal(t, 1, f.geocoder.calls)
}

func TestSubmit_DuplicatePlaceAtCommitReverts(t *testing.T) {
	f := newSubmitFixture(t)
	ctx := context.Background()

	rival := f.newDraft(t, "owner-1", "Rival", "1 Example St", "place-p")
	mine := f.newDraft(t, "owner-2", "Mine", "1 Example Street", "place-p")

	// The rival claims the key while our submission is waiting on the
	// geocoder, after the pre-check already passed.
	f.geocoder.onResolve = func() {
		_, err := f.entries.StartSubmitting(ctx, rival.ID)
		require.NoError(t, err)
		_, err = f.entries.FinalizeSubmission(ctx, rival.ID,
			entrydomain.Address{Text: "1 Example St", PlaceKey: "place-p", Coordinates: &entrydomain.Coordinates{Lat: -33.63, Lng: 115.39}},
			time.Now().UTC())
		require.NoError(t, err)
	}

	_, err := f.svc.Submit(ctx, "owner-2")

	var conflict *entrydomain.PlaceClaimedError
	require.ErrorAs(t, err, &conflict)

	assert.Equal(t, entrydomain.StatusDraft, f.status(t, mine.ID))
	assert.Equal(t, entrydomain.StatusSubmitted, f.status(t, rival.ID))
}

func TestSubmit_OutOfBoundsReverts(t *testing.T) {
	f := newSubmitFixture(t)
	draft := f.newDraft(t, "owner-1", "Test", "1 Faraway Rd", "place-far")
	f.geocoder.coords = entrydomain.Coordinates{Lat: -31.95, Lng: 115.86}

	_, err := f.svc.Submit(context.Background(), "owner-1")

	var bounds *entrydomain.OutsideBoundsError
	require.ErrorAs(t, err, &bounds)
	assert.Equal(t, entrydomain.StatusDraft, f.status(t, draft.ID))
}

func TestSubmit_MissingFieldsAbortsWithoutWrite(t *testing.T) {
	f := newSubmitFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, "owner-1")
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, "owner-1")
	var validation *entrydomain.ValidationError
	require.ErrorAs(t, err, &validation)

	assert.Equal(t, entrydomain.StatusDraft, f.status(t, created.ID))
	assert.Equal(t, 0, f.geocoder.calls)
}

func TestSubmit_WrongStateFailsWithoutCompensation(t *testing.T) {
	f := newSubmitFixture(t)
	ctx := context.Background()

	entry := f.newDraft(t, "owner-1", "Test", "1 Example St", "place-1")
	_, err := f.svc.Submit(ctx, "owner-1")
	require.NoError(t, err)

	// A second submit finds the entry already submitted.
	_, err = f.svc.Submit(ctx, "owner-1")
	var mismatch *entrydomain.StateMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, entrydomain.StatusDraft, mismatch.Expected)
	assert.Equal(t, entrydomain.StatusSubmitted, mismatch.Actual)

	assert.Equal(t, entrydomain.StatusSubmitted, f.status(t, entry.ID))
}

// revertFailRepo simulates a store that refuses the compensating write.
type revertFailRepo struct {
	EntryRepository
}

func (r *revertFailRepo) RevertToDraft(context.Context, string) (*entrydomain.Entry, error) {
	return nil, errors.New("store unavailable")
}

func TestSubmit_CompensationFailureKeepsOriginalError(t *testing.T) {
	entries := memory.NewEntryRepository()
	geocoder := &stubGeocoder{err: errors.New("provider unavailable")}
	svc := NewEntryCommandService(EntryCommandConfig{
		Entries:  &revertFailRepo{EntryRepository: entries},
		Photos:   memory.NewPhotoRepository(),
		Geocoder: geocoder,
		Bounds:   testBounds,
		Logger:   log.New(io.Discard, "", 0),
	})

	ctx := context.Background()
	_, err := svc.Create(ctx, "owner-1")
	require.NoError(t, err)
	_, err = svc.UpdateDraft(ctx, "owner-1", UpdateEntryCommand{
		Name:        "Test",
		AddressText: "1 Example St",
		PlaceKey:    "place-1",
	})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, "owner-1")

	// The revert failure is logged, not returned; the caller sees the
	// geocoder failure that started the rollback.
	var geocodeErr *entrydomain.GeocodeFailedError
	require.ErrorAs(t, err, &geocodeErr)
}

func TestSubmit_NeverLeftInSubmitting(t *testing.T) {
	// Every injected failure mode must leave the entry observable as either
	// submitted (full success) or draft, never submitting.
	tests := []struct {
		name    string
		prepare func(f *submitFixture)
		want    entrydomain.Status
	}{
		{
			name:    "success",
			prepare: func(*submitFixture) {},
			want:    entrydomain.StatusSubmitted,
		},
		{
			name: "geocoder error",
			prepare: func(f *submitFixture) {
				f.geocoder.err = errors.New("boom")
			},
			want: entrydomain.StatusDraft,
		},
		{
			name: "geocoder timeout",
			prepare: func(f *submitFixture) {
				f.geocoder.err = context.DeadlineExceeded
			},
			want: entrydomain.StatusDraft,
		},
		{
			name: "outside contest region",
			prepare: func(f *submitFixture) {
				f.geocoder.coords = entrydomain.Coordinates{Lat: 35.68, Lng: 139.69}
			},
			want: entrydomain.StatusDraft,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSubmitFixture(t)
			entry := f.newDraft(t, "owner-1", "Test", "1 Example St", "place-1")
			tt.prepare(f)

			_, _ = f.svc.Submit(context.Background(), "owner-1")

			got := f.status(t, entry.ID)
			assert.Equal(t, tt.want, got)
			assert.NotEqual(t, entrydomain.StatusSubmitting, got)
		})
	}
}

func TestRevertToDraft_IdempotenceGuard(t *testing.T) {
	// Compensating an entry that is already a draft must fail cleanly
	// instead of double-reverting.
	entries := memory.NewEntryRepository()
	ctx := context.Background()

	entry := entrydomain.NewEntry("owner-1", time.Now().UTC())
	require.NoError(t, entries.Insert(ctx, entry))

	_, err := entries.RevertToDraft(ctx, entry.ID)
	var mismatch *entrydomain.StateMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, entrydomain.StatusSubmitting, mismatch.Expected)
	assert.Equal(t, entrydomain.StatusDraft, mismatch.Actual)
}
