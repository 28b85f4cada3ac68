package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	entrydomain "github.com/snhrk2951/illumi-contest-services/api/internal/entry/domain"
)

// EntryDocument は MongoDB 上でのエントリースキーマを Go 構造体として表現したもの。
// ステータスごとに存在するフィールドが変わるため、状態依存の項目はすべて omitempty のポインタで持つ。
type EntryDocument struct {
	ID             primitive.ObjectID `bson:"_id"`
	OwnerID        string             `bson:"ownerId"`
	Status         string             `bson:"status"`
	Name           string             `bson:"name,omitempty"`
	AddressText    string             `bson:"addressText,omitempty"`
	PlaceKey       string             `bson:"placeKey,omitempty"`
	Lat            *float64           `bson:"lat,omitempty"`
	Lng            *float64           `bson:"lng,omitempty"`
	EntryNumber    *int               `bson:"entryNumber,omitempty"`
	SubmittedAt    *time.Time         `bson:"submittedAt,omitempty"`
	ApprovedAt     *time.Time         `bson:"approvedAt,omitempty"`
	RejectedAt     *time.Time         `bson:"rejectedAt,omitempty"`
	RejectedReason string             `bson:"rejectedReason,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

// PhotoDocument はエントリー写真 1 枚分のメタデータを格納するドキュメント。
type PhotoDocument struct {
	ID          string             `bson:"_id"`
	EntryID     primitive.ObjectID `bson:"entryId"`
	StoredPath  string             `bson:"storedPath"`
	PublicURL   string             `bson:"publicURL"`
	ContentType string             `bson:"contentType,omitempty"`
	UploadedAt  time.Time          `bson:"uploadedAt"`
}

// mapEntryDocument は Mongo ドキュメントをドメインの Entry へ復元する。
func mapEntryDocument(doc EntryDocument) *entrydomain.Entry {
	address := entrydomain.Address{
		Text:     doc.AddressText,
		PlaceKey: doc.PlaceKey,
	}
	if doc.Lat != nil && doc.Lng != nil {
		address.Coordinates = &entrydomain.Coordinates{Lat: *doc.Lat, Lng: *doc.Lng}
	}

	return &entrydomain.Entry{
		ID:             doc.ID.Hex(),
		OwnerID:        doc.OwnerID,
		Status:         entrydomain.Status(doc.Status),
		Name:           doc.Name,
		Address:        address,
		EntryNumber:    doc.EntryNumber,
		SubmittedAt:    doc.SubmittedAt,
		ApprovedAt:     doc.ApprovedAt,
		RejectedAt:     doc.RejectedAt,
		RejectedReason: doc.RejectedReason,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
}

// mapPhotoDocument は Mongo ドキュメントをドメインの Photo へ復元する。
func mapPhotoDocument(doc PhotoDocument) entrydomain.Photo {
	return entrydomain.Photo{
		ID:          doc.ID,
		EntryID:     doc.EntryID.Hex(),
		StoredPath:  doc.StoredPath,
		PublicURL:   doc.PublicURL,
		ContentType: doc.ContentType,
		UploadedAt:  doc.UploadedAt,
	}
}
