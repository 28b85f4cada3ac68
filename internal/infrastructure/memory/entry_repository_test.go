package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	entrydomain "github.com/snhrk2951/illumi-contest-services/api/internal/entry/domain"
)

func insertEntry(t *testing.T, repo *EntryRepository, entry *entrydomain.Entry) {
	t.Helper()
	require.NoError(t, repo.Insert(context.Background(), entry))
}

func TestEntryRepository_ApproveChecksStatusBeforeNumberCollision(t *testing.T) {
	repo := NewEntryRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	taken := 3
	insertEntry(t, repo, &entrydomain.Entry{
		ID:          "winner",
		OwnerID:     "owner-1",
		Status:      entrydomain.StatusApproved,
		EntryNumber: &taken,
		CreatedAt:   now,
	})
	insertEntry(t, repo, &entrydomain.Entry{
		ID:        "still-draft",
		OwnerID:   "owner-2",
		Status:    entrydomain.StatusDraft,
		CreatedAt: now,
	})

	// The status precondition decides before the collision scan, so a
	// wrong-status entry fails with the state error even when the
	// requested number is already taken.
	_, err := repo.Approve(ctx, "still-draft", taken, now)

	var mismatch *entrydomain.StateMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, entrydomain.StatusSubmitted, mismatch.Expected)
	assert.Equal(t, entrydomain.StatusDraft, mismatch.Actual)
}

func TestEntryRepository_ApproveDuplicateNumber(t *testing.T) {
	repo := NewEntryRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	taken := 3
	insertEntry(t, repo, &entrydomain.Entry{
		ID:          "winner",
		OwnerID:     "owner-1",
		Status:      entrydomain.StatusApproved,
		EntryNumber: &taken,
		CreatedAt:   now,
	})
	insertEntry(t, repo, &entrydomain.Entry{
		ID:        "loser",
		OwnerID:   "owner-2",
		Status:    entrydomain.StatusSubmitted,
		CreatedAt: now,
	})

	_, err := repo.Approve(ctx, "loser", taken, now)
	require.ErrorIs(t, err, entrydomain.ErrEntryNumberTaken)

	// The losing entry stays submitted for a retry with another number.
	entry, findErr := repo.FindByID(ctx, "loser")
	require.NoError(t, findErr)
	assert.Equal(t, entrydomain.StatusSubmitted, entry.Status)
	assert.Nil(t, entry.EntryNumber)
}
