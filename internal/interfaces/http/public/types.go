package public

import (
	"time"

	entrydomain "github.com/snhrk2951/illumi-contest-services/api/internal/entry/domain"
)

type updateEntryRequest struct {
	Name        string `json:"name"`
	AddressText string `json:"addressText"`
	PlaceKey    string `json:"placeKey"`
}

type attachPhotoRequest struct {
	StoredPath  string `json:"storedPath"`
	PublicURL   string `json:"publicUrl"`
	ContentType string `json:"contentType,omitempty"`
}

type coordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// entryResponse is the owner-facing view of an entry.
type entryResponse struct {
	ID             string               `json:"id"`
	Status         string               `json:"status"`
	Name           string               `json:"name,omitempty"`
	AddressText    string               `json:"addressText,omitempty"`
	PlaceKey       string               `json:"placeKey,omitempty"`
	Coordinates    *coordinatesResponse `json:"coordinates,omitempty"`
	EntryNumber    *int                 `json:"entryNumber,omitempty"`
	SubmittedAt    *time.Time           `json:"submittedAt,omitempty"`
	ApprovedAt     *time.Time           `json:"approvedAt,omitempty"`
	RejectedAt     *time.Time           `json:"rejectedAt,omitempty"`
	RejectedReason string               `json:"rejectedReason,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
	Photos         []photoResponse      `json:"photos,omitempty"`
}

type photoResponse struct {
	ID          string    `json:"id"`
	PublicURL   string    `json:"publicUrl"`
	ContentType string    `json:"contentType,omitempty"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// publicEntryResponse is the anonymous map view: approved entries only,
// with nothing that identifies the owner beyond the display name.
type publicEntryResponse struct {
	ID          string               `json:"id"`
	EntryNumber int                  `json:"entryNumber"`
	Name        string               `json:"name"`
	AddressText string               `json:"addressText"`
	Coordinates *coordinatesResponse `json:"coordinates,omitempty"`
}

type publicEntryListResponse struct {
	Items []publicEntryResponse `json:"items"`
}

func buildEntryResponse(entry *entrydomain.Entry, photos []entrydomain.Photo) entryResponse {
	res := entryResponse{
		ID:             entry.ID,
		Status:         string(entry.Status),
		Name:           entry.Name,
		AddressText:    entry.Address.Text,
		PlaceKey:       entry.Address.PlaceKey,
		EntryNumber:    entry.EntryNumber,
		SubmittedAt:    entry.SubmittedAt,
		ApprovedAt:     entry.ApprovedAt,
		RejectedAt:     entry.RejectedAt,
		RejectedReason: entry.RejectedReason,
		CreatedAt:      entry.CreatedAt,
		UpdatedAt:      entry.UpdatedAt,
	}
	if c := entry.Address.Coordinates; c != nil {
		res.Coordinates = &coordinatesResponse{Lat: c.Lat, Lng: c.Lng}
	}
	for _, photo := range photos {
		res.Photos = append(res.Photos, photoResponse{
			ID:          photo.ID,
			PublicURL:   photo.PublicURL,
			ContentType: photo.ContentType,
			UploadedAt:  photo.UploadedAt,
		})
	}
	return res
}

func buildPublicEntryResponse(entry entrydomain.Entry) publicEntryResponse {
	res := publicEntryResponse{
		ID:          entry.ID,
		Name:        entry.Name,
		AddressText: entry.Address.Text,
	}
	if entry.EntryNumber != nil {
		res.EntryNumber = *entry.EntryNumber
	}
	if c := entry.Address.Coordinates; c != nil {
		res.Coordinates = &coordinatesResponse{Lat: c.Lat, Lng: c.Lng}
	}
	return res
}
