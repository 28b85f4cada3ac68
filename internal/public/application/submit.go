package application

import (
	"context"
	"time"

	entrydomain "github.com/snhrk2951/illumi-contest-services/api/internal/entry/domain"
)

// Submit drives the owner's entry from draft to submitted.
//
// The workflow spans two atomic store writes with an external geocoder call in
// between, so it cannot run as a single transaction. Instead every failure
// after the first write compensates by reverting the entry to draft: whatever
// this method returns, the entry is never left parked in submitting.
func (s *entryCommandService) Submit(ctx context.Context, ownerID string) (*entrydomain.Entry, error) {
	entry, err := s.entries.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	run := &submissionRun{svc: s, entry: entry}

	// Step A is atomic and has no external side effects yet, so a failure
	// here needs no compensation.
	if err := run.begin(ctx); err != nil {
		return nil, err
	}
	if err := run.resolve(ctx); err != nil {
		return nil, run.compensate(ctx, err)
	}
	if err := run.finalize(ctx); err != nil {
		return nil, run.compensate(ctx, err)
	}
	return run.entry, nil
}

// submissionRun carries one submission attempt through its steps.
type submissionRun struct {
	svc      *entryCommandService
	entry    *entrydomain.Entry
	resolved entrydomain.Coordinates
}

// begin validates the draft, pre-checks the place key and locks the entry into
// submitting.
func (r *submissionRun) begin(ctx context.Context) error {
	if err := r.entry.ValidateForSubmission(); err != nil {
		return err
	}

	claimed, err := placeKeyClaimed(ctx, r.svc.entries, r.entry.Address.PlaceKey, r.entry.ID)
	if err != nil {
		return err
	}
	if claimed {
		return &entrydomain.PlaceClaimedError{PlaceKey: r.entry.Address.PlaceKey}
	}

	updated, err := r.svc.entries.StartSubmitting(ctx, r.entry.ID)
	if err != nil {
		return err
	}
	r.entry = updated
	return nil
}

// resolve asks the geocoder for coordinates. Timeouts and provider failures
// are treated alike; the wrapped error keeps the address the user typed so the
// surfaced message can reference it.
func (r *submissionRun) resolve(ctx context.Context) error {
	coords, err := r.svc.geocoder.Resolve(ctx, r.entry.Address.Text)
	if err != nil {
		return &entrydomain.GeocodeFailedError{AddressText: r.entry.Address.Text, Err: err}
	}
	r.resolved = coords
	return nil
}

// finalize re-validates the invariants at the commit point: another entry may
// have claimed the place key since begin, and the coordinates only now exist
// to be checked against the contest region.
func (r *submissionRun) finalize(ctx context.Context) error {
	claimed, err := placeKeyClaimed(ctx, r.svc.entries, r.entry.Address.PlaceKey, r.entry.ID)
	if err != nil {
		return err
	}
	if claimed {
		return &entrydomain.PlaceClaimedError{PlaceKey: r.entry.Address.PlaceKey}
	}

	if !r.svc.bounds.IsZero() && !r.svc.bounds.Contains(r.resolved) {
		return &entrydomain.OutsideBoundsError{Coordinates: r.resolved, Bounds: r.svc.bounds}
	}

	updated, err := r.svc.entries.FinalizeSubmission(ctx, r.entry.ID, r.entry.Address.Resolved(r.resolved), time.Now().UTC())
	if err != nil {
		return err
	}
	r.entry = updated
	return nil
}

// compensate reverts the submitting entry back to draft and hands the original
// error through. The revert runs on a detached context so a caller timeout
// that killed step B cannot also kill the rollback, and a revert failure is
// logged without masking the cause.
func (r *submissionRun) compensate(ctx context.Context, cause error) error {
	revertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	reverted, err := r.svc.entries.RevertToDraft(revertCtx, r.entry.ID)
	if err != nil {
		if r.svc.logger != nil {
			r.svc.logger.Printf("エントリー %s の下書きへの差し戻しに失敗: %v (元のエラー: %v)", r.entry.ID, err, cause)
		}
		return cause
	}
	r.entry = reverted
	return cause
}
