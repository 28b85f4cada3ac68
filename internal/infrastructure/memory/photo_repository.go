package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	entrydomain "github.com/snhrk2951/illumi-contest-services/api/internal/entry/domain"
)

// PhotoRepository keeps photo metadata in memory.
type PhotoRepository struct {
	mu     sync.Mutex
	photos map[string]entrydomain.Photo
}

func NewPhotoRepository() *PhotoRepository {
	return &PhotoRepository{photos: make(map[string]entrydomain.Photo)}
}

func (r *PhotoRepository) Attach(_ context.Context, photo *entrydomain.Photo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(photo.ID) == "" {
		photo.ID = uuid.NewString()
	}
	r.photos[photo.ID] = *photo
	return nil
}

func (r *PhotoRepository) ListForEntry(_ context.Context, entryID string) ([]entrydomain.Photo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]entrydomain.Photo, 0)
	for _, photo := range r.photos {
		if photo.EntryID == entryID {
			result = append(result, photo)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UploadedAt.Before(result[j].UploadedAt)
	})
	return result, nil
}

func (r *PhotoRepository) DeleteAllForEntry(_ context.Context, entryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, photo := range r.photos {
		if photo.EntryID == entryID {
			delete(r.photos, id)
		}
	}
	return nil
}
