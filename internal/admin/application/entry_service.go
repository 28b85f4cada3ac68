package application

import (
	"context"
	"errors"
	"strings"
	"time"

	entrydomain "github.com/snhrk2951/illumi-contest-services/api/internal/entry/domain"
)

// approveAttempts bounds the retry loop when a concurrent approval wins the
// computed entry number.
const approveAttempts = 5

func NewEntryService(entries EntryRepository, photos PhotoRepository, numberMax int) EntryService {
	if numberMax <= 0 {
		numberMax = entrydomain.DefaultEntryNumberMax
	}
	return &entryService{entries: entries, photos: photos, numberMax: numberMax}
}

type entryService struct {
	entries   EntryRepository
	photos    PhotoRepository
	numberMax int
}

func (s *entryService) List(ctx context.Context, filter EntryFilter) ([]entrydomain.Entry, error) {
	if filter.Status != nil {
		return s.entries.FindByStatus(ctx, *filter.Status)
	}
	return s.entries.FindAll(ctx)
}

func (s *entryService) Detail(ctx context.Context, id string) (*entrydomain.Entry, []entrydomain.Photo, error) {
	entry, err := s.entries.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	photos, err := s.photos.ListForEntry(ctx, entry.ID)
	if err != nil {
		return nil, nil, err
	}
	return entry, photos, nil
}

// Approve assigns an entry number and moves the entry to approved.
//
// The number is computed from the approved entries visible right before the
// write; the write itself is guarded by the unique entry-number index, so if a
// concurrent approval commits the same number first, this one recomputes
// against the post-commit state and tries again.
func (s *entryService) Approve(ctx context.Context, id string) (*entrydomain.Entry, error) {
	var lastErr error
	for attempt := 0; attempt < approveAttempts; attempt++ {
		approved, err := s.entries.FindByStatus(ctx, entrydomain.StatusApproved)
		if err != nil {
			return nil, err
		}

		used := make([]int, 0, len(approved))
		for _, e := range approved {
			if e.EntryNumber != nil {
				used = append(used, *e.EntryNumber)
			}
		}

		number := entrydomain.NextEntryNumber(used, s.numberMax)
		entry, err := s.entries.Approve(ctx, id, number, time.Now().UTC())
		if errors.Is(err, entrydomain.ErrEntryNumberTaken) {
			lastErr = err
			continue
		}
		return entry, err
	}
	return nil, lastErr
}

func (s *entryService) Reject(ctx context.Context, id, reason string) (*entrydomain.Entry, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, entrydomain.NewValidationError("却下理由を入力してください")
	}
	return s.entries.Reject(ctx, id, reason, time.Now().UTC())
}

// Delete removes an entry in any status along with its photos.
func (s *entryService) Delete(ctx context.Context, id string) error {
	if _, err := s.entries.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.entries.Delete(ctx, id); err != nil {
		return err
	}
	return s.photos.DeleteAllForEntry(ctx, id)
}
