package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no entry matches the lookup.
	ErrNotFound = errors.New("エントリーが見つかりません")
	// ErrOwnerHasEntry is returned when an owner already holds an entry.
	ErrOwnerHasEntry = errors.New("エントリーは1世帯につき1件までです")
	// ErrEntryNumberTaken signals a concurrent approval already committed the
	// same entry number.
	ErrEntryNumberTaken = errors.New("エントリー番号が既に使用されています")
)

// ValidationError reports missing or malformed caller input.
type ValidationError struct {
	Message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StateMismatchError reports a transition attempted from the wrong status.
type StateMismatchError struct {
	EntryID  string
	Expected Status
	Actual   Status
}

func (e *StateMismatchError) Error() string {
	return fmt.Sprintf("entry %s: expected status %s, actual %s", e.EntryID, e.Expected, e.Actual)
}

// PlaceClaimedError reports that another entry already occupies the place key.
type PlaceClaimedError struct {
	PlaceKey string
}

func (e *PlaceClaimedError) Error() string {
	return fmt.Sprintf("place key %s is already claimed by another entry", e.PlaceKey)
}

// OutsideBoundsError reports resolved coordinates outside the contest region.
type OutsideBoundsError struct {
	Coordinates Coordinates
	Bounds      Bounds
}

func (e *OutsideBoundsError) Error() string {
	return fmt.Sprintf("coordinates (%.5f, %.5f) are outside the contest region", e.Coordinates.Lat, e.Coordinates.Lng)
}

// GeocodeFailedError wraps a geocoder failure with the address the user typed,
// so the surfaced message can point back at their input.
type GeocodeFailedError struct {
	AddressText string
	Err         error
}

func (e *GeocodeFailedError) Error() string {
	return fmt.Sprintf("住所「%s」を確認できませんでした。表記を見直して再度お試しください。", e.AddressText)
}

func (e *GeocodeFailedError) Unwrap() error {
	return e.Err
}
