package admin

import (
	"time"

	entrydomain "github.com/snhrk2951/illumi-contest-services/api/internal/entry/domain"
)

type rejectEntryRequest struct {
	Reason string `json:"reason"`
}

type adminCoordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type adminEntryResponse struct {
	ID             string                    `json:"id"`
	OwnerID        string                    `json:"ownerId"`
	Status         string                    `json:"status"`
	Name           string                    `json:"name,omitempty"`
	AddressText    string                    `json:"addressText,omitempty"`
	PlaceKey       string                    `json:"placeKey,omitempty"`
	Coordinates    *adminCoordinatesResponse `json:"coordinates,omitempty"`
	EntryNumber    *int                      `json:"entryNumber,omitempty"`
	SubmittedAt    *time.Time                `json:"submittedAt,omitempty"`
	ApprovedAt     *time.Time                `json:"approvedAt,omitempty"`
	RejectedAt     *time.Time                `json:"rejectedAt,omitempty"`
	RejectedReason string                    `json:"rejectedReason,omitempty"`
	CreatedAt      time.Time                 `json:"createdAt"`
	UpdatedAt      time.Time                 `json:"updatedAt"`
	Photos         []adminPhotoResponse      `json:"photos,omitempty"`
}

type adminPhotoResponse struct {
	ID          string    `json:"id"`
	StoredPath  string    `json:"storedPath"`
	PublicURL   string    `json:"publicUrl"`
	ContentType string    `json:"contentType,omitempty"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

type adminEntryListResponse struct {
	Items []adminEntryResponse `json:"items"`
}

// adminEntryDomainToResponse はドメインの Entry を Admin UI 用レスポンスへ変換する。
func adminEntryDomainToResponse(entry entrydomain.Entry, photos []entrydomain.Photo) adminEntryResponse {
	res := adminEntryResponse{
		ID:             entry.ID,
		OwnerID:        entry.OwnerID,
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
		res.Coordinates = &adminCoordinatesResponse{Lat: c.Lat, Lng: c.Lng}
	}
	for _, photo := range photos {
		res.Photos = append(res.Photos, adminPhotoResponse{
			ID:          photo.ID,
			StoredPath:  photo.StoredPath,
			PublicURL:   photo.PublicURL,
			ContentType: photo.ContentType,
			UploadedAt:  photo.UploadedAt,
		})
	}
	return res
}
