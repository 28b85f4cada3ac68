package domain

import (
	"strings"
	"time"
)

// Coordinates is a WGS84 point resolved by the geocoder.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Address is the location of a decorated house. Draft entries carry only the
// free-text form and the geocoder's place key; coordinates are attached when
// the submission is finalized and dropped again when it reverts.
type Address struct {
	Text        string
	PlaceKey    string
	Coordinates *Coordinates
}

// NewDraftAddress builds the coordinate-free address shape held before submission.
func NewDraftAddress(text, placeKey string) (Address, error) {
	trimmedText := strings.TrimSpace(text)
	if trimmedText == "" {
		return Address{}, NewValidationError("住所を入力してください")
	}
	trimmedKey := strings.TrimSpace(placeKey)
	if trimmedKey == "" {
		return Address{}, NewValidationError("住所の候補から選択してください")
	}
	return Address{Text: trimmedText, PlaceKey: trimmedKey}, nil
}

// Resolved returns the address with coordinates attached.
func (a Address) Resolved(c Coordinates) Address {
	return Address{Text: a.Text, PlaceKey: a.PlaceKey, Coordinates: &c}
}

// Draft degrades the address back to its pre-submission shape.
func (a Address) Draft() Address {
	return Address{Text: a.Text, PlaceKey: a.PlaceKey}
}

// Entry is one contest participant's decorated house.
// Status determines which of the optional fields are populated:
// coordinates exist from submitted on, SubmittedAt from submitted on,
// ApprovedAt/EntryNumber only when approved, RejectedAt/RejectedReason
// only when rejected.
type Entry struct {
	ID             string
	OwnerID        string
	Status         Status
	Name           string
	Address        Address
	EntryNumber    *int
	SubmittedAt    *time.Time
	ApprovedAt     *time.Time
	RejectedAt     *time.Time
	RejectedReason string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewEntry creates an empty draft bound to its owner.
func NewEntry(ownerID string, now time.Time) *Entry {
	return &Entry{
		OwnerID:   strings.TrimSpace(ownerID),
		Status:    StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ValidateForSubmission checks the fields that must be locked in before the
// entry may leave draft.
func (e *Entry) ValidateForSubmission() error {
	if strings.TrimSpace(e.Name) == "" {
		return NewValidationError("表示名を入力してください")
	}
	if strings.TrimSpace(e.Address.Text) == "" {
		return NewValidationError("住所を入力してください")
	}
	if strings.TrimSpace(e.Address.PlaceKey) == "" {
		return NewValidationError("住所の候補から選択してください")
	}
	return nil
}
