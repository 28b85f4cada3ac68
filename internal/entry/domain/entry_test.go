package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDraftAddress(t *testing.T) {
	addr, err := NewDraftAddress("  1 Example St  ", " place-1 ")
	require.NoError(t, err)
	assert.Equal(t, "1 Example St", addr.Text)
	assert.Equal(t, "place-1", addr.PlaceKey)
	assert.Nil(t, addr.Coordinates)

	_, err = NewDraftAddress("", "place-1")
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)

	_, err = NewDraftAddress("1 Example St", "  ")
	require.ErrorAs(t, err, &validation)
}

func TestAddressResolveAndDegrade(t *testing.T) {
	addr, err := NewDraftAddress("1 Example St", "place-1")
	require.NoError(t, err)

	resolved := addr.Resolved(Coordinates{Lat: -33.63, Lng: 115.39})
	require.NotNil(t, resolved.Coordinates)
	assert.Equal(t, -33.63, resolved.Coordinates.Lat)
	assert.Equal(t, 115.39, resolved.Coordinates.Lng)
	assert.Equal(t, addr.Text, resolved.Text)
	assert.Equal(t, addr.PlaceKey, resolved.PlaceKey)

	degraded := resolved.Draft()
	assert.Nil(t, degraded.Coordinates)
	assert.Equal(t, addr.Text, degraded.Text)
}

func TestNewEntry(t *testing.T) {
	now := time.Now().UTC()
	entry := NewEntry(" owner-1 ", now)

	assert.Equal(t, "owner-1", entry.OwnerID)
	assert.Equal(t, StatusDraft, entry.Status)
	assert.Equal(t, now, entry.CreatedAt)
	assert.Nil(t, entry.EntryNumber)
	assert.Nil(t, entry.SubmittedAt)
}

func TestValidateForSubmission(t *testing.T) {
	base := func() *Entry {
		e := NewEntry("owner-1", time.Now().UTC())
		e.Name = "Test"
		e.Address = Address{Text: "1 Example St", PlaceKey: "place-1"}
		return e
	}

	require.NoError(t, base().ValidateForSubmission())

	var validation *ValidationError

	noName := base()
	noName.Name = "   "
	require.ErrorAs(t, noName.ValidateForSubmission(), &validation)

	noAddress := base()
	noAddress.Address.Text = ""
	require.ErrorAs(t, noAddress.ValidateForSubmission(), &validation)

	noKey := base()
	noKey.Address.PlaceKey = ""
	require.ErrorAs(t, noKey.ValidateForSubmission(), &validation)
}
