package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	entrydomain "github.com/snhrk2951/illumi-contest-services/api/internal/entry/domain"
)

// PhotoRepository はエントリー写真メタデータの永続化を担う。
// 写真 ID は application 層が採番した UUID をそのまま _id に使う。
type PhotoRepository struct {
	photos *mongo.Collection
}

// NewPhotoRepository は PhotoRepository を生成する。
func NewPhotoRepository(photos *mongo.Collection) *PhotoRepository {
	return &PhotoRepository{photos: photos}
}

// Attach は写真メタデータを 1 件登録する。
func (r *PhotoRepository) Attach(ctx context.Context, photo *entrydomain.Photo) error {
	entryID, err := parseEntryID(photo.EntryID)
	if err != nil {
		return err
	}

	doc := PhotoDocument{
		ID:          photo.ID,
		EntryID:     entryID,
		StoredPath:  photo.StoredPath,
		PublicURL:   photo.PublicURL,
		ContentType: photo.ContentType,
		UploadedAt:  photo.UploadedAt,
	}
	_, err = r.photos.InsertOne(ctx, doc)
	return err
}

// ListForEntry はエントリーに紐づく写真をアップロード順で返す。
func (r *PhotoRepository) ListForEntry(ctx context.Context, entryID string) ([]entrydomain.Photo, error) {
	objectID, err := parseEntryID(entryID)
	if err != nil {
		if errors.Is(err, entrydomain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "uploadedAt", Value: 1}})
	cursor, err := r.photos.Find(ctx, bson.M{"entryId": objectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []PhotoDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	photos := make([]entrydomain.Photo, 0, len(docs))
	for _, doc := range docs {
		photos = append(photos, mapPhotoDocument(doc))
	}
	return photos, nil
}

// DeleteAllForEntry はエントリー削除時のカスケードとして写真メタデータを一括削除する。
func (r *PhotoRepository) DeleteAllForEntry(ctx context.Context, entryID string) error {
	objectID, err := parseEntryID(entryID)
	if err != nil {
		if errors.Is(err, entrydomain.ErrNotFound) {
			return nil
		}
		return err
	}

	_, err = r.photos.DeleteMany(ctx, bson.M{"entryId": objectID})
	return err
}
