package application

import (
	"context"

	entrydomain "github.com/snhrk2951/illumi-contest-services/api/internal/entry/domain"
)

func NewEntryQueryService(entries EntryRepository, photos PhotoRepository) EntryQueryService {
	return &entryQueryService{entries: entries, photos: photos}
}

type entryQueryService struct {
	entries EntryRepository
	photos  PhotoRepository
}

func (s *entryQueryService) Mine(ctx context.Context, ownerID string) (*entrydomain.Entry, []entrydomain.Photo, error) {
	entry, err := s.entries.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}
	photos, err := s.photos.ListForEntry(ctx, entry.ID)
	if err != nil {
		return nil, nil, err
	}
	return entry, photos, nil
}

// ListApproved returns the entries shown on the public trail map, entry
// numbers included.
func (s *entryQueryService) ListApproved(ctx context.Context) ([]entrydomain.Entry, error) {
	return s.entries.FindByStatus(ctx, entrydomain.StatusApproved)
}
