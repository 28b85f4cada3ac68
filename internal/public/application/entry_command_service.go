package application

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	entrydomain "github.com/snhrk2951/illumi-contest-services/api/internal/entry/domain"
)

// MaxPhotosPerEntry caps how many photos one entry may register.
const MaxPhotosPerEntry = 10

// EntryCommandConfig provides dependencies for the command service.
type EntryCommandConfig struct {
	Entries  EntryRepository
	Photos   PhotoRepository
	Geocoder Geocoder
	Bounds   entrydomain.Bounds
	Logger   *log.Logger
}

func NewEntryCommandService(cfg EntryCommandConfig) EntryCommandService {
	return &entryCommandService{
		entries:  cfg.Entries,
		photos:   cfg.Photos,
		geocoder: cfg.Geocoder,
		bounds:   cfg.Bounds,
		logger:   cfg.Logger,
	}
}

type entryCommandService struct {
	entries  EntryRepository
	photos   PhotoRepository
	geocoder Geocoder
	bounds   entrydomain.Bounds
	logger   *log.Logger
}

func (s *entryCommandService) Create(ctx context.Context, ownerID string) (*entrydomain.Entry, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, entrydomain.NewValidationError("応募者情報を取得できませんでした")
	}

	entry := entrydomain.NewEntry(ownerID, time.Now().UTC())
	if err := s.entries.Insert(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *entryCommandService) UpdateDraft(ctx context.Context, ownerID string, cmd UpdateEntryCommand) (*entrydomain.Entry, error) {
	entry, err := s.entries.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, entrydomain.NewValidationError("表示名を入力してください")
	}
	address, err := entrydomain.NewDraftAddress(cmd.AddressText, cmd.PlaceKey)
	if err != nil {
		return nil, err
	}

	return s.entries.UpdateDraft(ctx, entry.ID, name, address)
}

func (s *entryCommandService) AttachPhoto(ctx context.Context, ownerID string, cmd AttachPhotoCommand) (*entrydomain.Photo, error) {
	entry, err := s.entries.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	publicURL := strings.TrimSpace(cmd.PublicURL)
	if publicURL == "" {
		return nil, entrydomain.NewValidationError("写真の公開URLを指定してください")
	}

	existing, err := s.photos.ListForEntry(ctx, entry.ID)
	if err != nil {
		return nil, err
	}
	if len(existing) >= MaxPhotosPerEntry {
		return nil, entrydomain.NewValidationError("写真の登録は1エントリーにつき10枚までです")
	}

	storedPath := strings.TrimSpace(cmd.StoredPath)
	photo := &entrydomain.Photo{
		ID:          uuid.NewString(),
		EntryID:     entry.ID,
		StoredPath:  storedPath,
		PublicURL:   publicURL,
		ContentType: strings.TrimSpace(cmd.ContentType),
		UploadedAt:  time.Now().UTC(),
	}
	if storedPath == "" {
		photo.StoredPath = photo.ID
	}

	if err := s.photos.Attach(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

// Withdraw removes the owner's draft. The entry is deleted first under its
// status precondition, so the photo cascade never runs for an entry that was
// already submitted.
func (s *entryCommandService) Withdraw(ctx context.Context, ownerID string) error {
	entry, err := s.entries.FindByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	if err := s.entries.DeleteDraft(ctx, entry.ID); err != nil {
		return err
	}
	return s.photos.DeleteAllForEntry(ctx, entry.ID)
}
