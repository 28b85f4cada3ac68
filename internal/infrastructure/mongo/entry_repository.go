// Package mongo は MongoDB を用いたリポジトリ実装を提供する。
// ステータス遷移はすべて「期待するステータスをフィルタに含めた FindOneAndUpdate」1 回で行い、
// 複数ドキュメントにまたがるトランザクションは使わない。
package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	entrydomain "github.com/snhrk2951/illumi-contest-services/api/internal/entry/domain"
)

// EntryRepository はエントリーコレクションへの永続化を担う。
// 公開側・管理側どちらのユースケースからも同じ実装を共有する。
type EntryRepository struct {
	entries *mongo.Collection
}

// NewEntryRepository は EntryRepository を生成する。
func NewEntryRepository(entries *mongo.Collection) *EntryRepository {
	return &EntryRepository{entries: entries}
}

// FindByID は ID でエントリーを 1 件取得する。見つからなければ domain.ErrNotFound。
func (r *EntryRepository) FindByID(ctx context.Context, id string) (*entrydomain.Entry, error) {
	objectID, err := parseEntryID(id)
	if err != nil {
		return nil, err
	}

	var doc EntryDocument
	if err := r.entries.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entrydomain.ErrNotFound
		}
		return nil, err
	}
	return mapEntryDocument(doc), nil
}

// FindByOwner は所有者 ID でエントリーを 1 件取得する。
func (r *EntryRepository) FindByOwner(ctx context.Context, ownerID string) (*entrydomain.Entry, error) {
	var doc EntryDocument
	if err := r.entries.FindOne(ctx, bson.M{"ownerId": strings.TrimSpace(ownerID)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entrydomain.ErrNotFound
		}
		return nil, err
	}
	return mapEntryDocument(doc), nil
}

// FindByStatus は指定ステータスのエントリーを作成日時の昇順で返す。
func (r *EntryRepository) FindByStatus(ctx context.Context, status entrydomain.Status) ([]entrydomain.Entry, error) {
	return r.findMany(ctx, bson.M{"status": string(status)})
}

// FindByPlaceKey は同じ場所キーを持つエントリーをすべて返す。
// 場所の重複チェックは application 層がステータスを見て判定するため、ここでは絞り込まない。
func (r *EntryRepository) FindByPlaceKey(ctx context.Context, placeKey string) ([]entrydomain.Entry, error) {
	return r.findMany(ctx, bson.M{"placeKey": strings.TrimSpace(placeKey)})
}

// FindAll は全エントリーを作成日時の昇順で返す。
func (r *EntryRepository) FindAll(ctx context.Context) ([]entrydomain.Entry, error) {
	return r.findMany(ctx, bson.M{})
}

// Insert は下書きエントリーを新規作成する。
// ownerId のユニークインデックスにより、同一所有者の 2 件目は domain.ErrOwnerHasEntry で拒否される。
func (r *EntryRepository) Insert(ctx context.Context, entry *entrydomain.Entry) error {
	doc := EntryDocument{
		ID:          primitive.NewObjectID(),
		OwnerID:     entry.OwnerID,
		Status:      string(entry.Status),
		Name:        entry.Name,
		AddressText: entry.Address.Text,
		PlaceKey:    entry.Address.PlaceKey,
		CreatedAt:   entry.CreatedAt,
		UpdatedAt:   entry.UpdatedAt,
	}

	if _, err := r.entries.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return entrydomain.ErrOwnerHasEntry
		}
		return err
	}
	entry.ID = doc.ID.Hex()
	return nil
}

// UpdateDraft は下書きの名称と住所を書き換える。座標は未確定に戻す。
func (r *EntryRepository) UpdateDraft(ctx context.Context, id, name string, address entrydomain.Address) (*entrydomain.Entry, error) {
	return r.applyTransition(ctx, id, entrydomain.StatusDraft, bson.M{
		"$set": bson.M{
			"name":        name,
			"addressText": address.Text,
			"placeKey":    address.PlaceKey,
			"updatedAt":   time.Now().UTC(),
		},
		"$unset": bson.M{"lat": "", "lng": ""},
	})
}

// StartSubmitting は draft → submitting の遷移を行う。
func (r *EntryRepository) StartSubmitting(ctx context.Context, id string) (*entrydomain.Entry, error) {
	return r.applyTransition(ctx, id, entrydomain.StatusDraft, bson.M{
		"$set": bson.M{
			"status":    string(entrydomain.StatusSubmitting),
			"updatedAt": time.Now().UTC(),
		},
	})
}

// FinalizeSubmission は submitting → submitted の遷移を行い、確定した座標と提出日時を記録する。
func (r *EntryRepository) FinalizeSubmission(ctx context.Context, id string, address entrydomain.Address, at time.Time) (*entrydomain.Entry, error) {
	set := bson.M{
		"status":      string(entrydomain.StatusSubmitted),
		"addressText": address.Text,
		"placeKey":    address.PlaceKey,
		"submittedAt": at,
		"updatedAt":   at,
	}
	if address.Coordinates != nil {
		set["lat"] = address.Coordinates.Lat
		set["lng"] = address.Coordinates.Lng
	}
	return r.applyTransition(ctx, id, entrydomain.StatusSubmitting, bson.M{"$set": set})
}

// RevertToDraft は submitting → draft へ差し戻す。提出処理の補償ステップとして呼ばれる。
func (r *EntryRepository) RevertToDraft(ctx context.Context, id string) (*entrydomain.Entry, error) {
	return r.applyTransition(ctx, id, entrydomain.StatusSubmitting, bson.M{
		"$set":   bson.M{"status": string(entrydomain.StatusDraft), "updatedAt": time.Now().UTC()},
		"$unset": bson.M{"lat": "", "lng": "", "submittedAt": ""},
	})
}

// Approve は submitted → approved の遷移とエントリー番号の割り当てを 1 回の書き込みで行う。
// entryNumber の部分ユニークインデックスに弾かれた場合は domain.ErrEntryNumberTaken を返し、
// 呼び出し側が別番号で再試行する。
func (r *EntryRepository) Approve(ctx context.Context, id string, number int, at time.Time) (*entrydomain.Entry, error) {
	entry, err := r.applyTransition(ctx, id, entrydomain.StatusSubmitted, bson.M{
		"$set": bson.M{
			"status":      string(entrydomain.StatusApproved),
			"entryNumber": number,
			"approvedAt":  at,
			"updatedAt":   at,
		},
	})
	if mongo.IsDuplicateKeyError(err) {
		return nil, entrydomain.ErrEntryNumberTaken
	}
	return entry, err
}

// Reject は submitted → rejected の遷移を行い、却下理由を記録する。
func (r *EntryRepository) Reject(ctx context.Context, id, reason string, at time.Time) (*entrydomain.Entry, error) {
	return r.applyTransition(ctx, id, entrydomain.StatusSubmitted, bson.M{
		"$set": bson.M{
			"status":         string(entrydomain.StatusRejected),
			"rejectedReason": reason,
			"rejectedAt":     at,
			"updatedAt":      at,
		},
	})
}

// DeleteDraft は下書きのエントリーのみを削除する。
// 削除できなかった場合は現在のステータスを引き直して、未存在か状態不一致かを区別する。
func (r *EntryRepository) DeleteDraft(ctx context.Context, id string) error {
	objectID, err := parseEntryID(id)
	if err != nil {
		return err
	}

	result, err := r.entries.DeleteOne(ctx, bson.M{"_id": objectID, "status": string(entrydomain.StatusDraft)})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return r.mismatchFor(ctx, objectID, id, entrydomain.StatusDraft)
	}
	return nil
}

// Delete はステータスを問わずエントリーを削除する。管理者向け。
func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	objectID, err := parseEntryID(id)
	if err != nil {
		return err
	}

	result, err := r.entries.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return entrydomain.ErrNotFound
	}
	return nil
}

// applyTransition は期待ステータスをフィルタに含めた FindOneAndUpdate を実行する。
// フィルタに合致しなかった場合はドキュメントを引き直し、未存在と状態不一致を呼び分ける。
func (r *EntryRepository) applyTransition(ctx context.Context, id string, expected entrydomain.Status, update bson.M) (*entrydomain.Entry, error) {
	objectID, err := parseEntryID(id)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	filter := bson.M{"_id": objectID, "status": string(expected)}

	var doc EntryDocument
	err = r.entries.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		return mapEntryDocument(doc), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	return nil, r.mismatchFor(ctx, objectID, id, expected)
}

// mismatchFor は遷移に失敗したエントリーの現在ステータスを調べ、適切なエラーへ変換する。
func (r *EntryRepository) mismatchFor(ctx context.Context, objectID primitive.ObjectID, id string, expected entrydomain.Status) error {
	var current EntryDocument
	if err := r.entries.FindOne(ctx, bson.M{"_id": objectID}).Decode(&current); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return entrydomain.ErrNotFound
		}
		return err
	}
	return &entrydomain.StateMismatchError{
		EntryID:  id,
		Expected: expected,
		Actual:   entrydomain.Status(current.Status),
	}
}

func (r *EntryRepository) findMany(ctx context.Context, filter bson.M) ([]entrydomain.Entry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.entries.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []EntryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	entries := make([]entrydomain.Entry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, *mapEntryDocument(doc))
	}
	return entries, nil
}

// parseEntryID は外部から渡された ID 文字列を ObjectID に変換する。
// 形式不正な ID は存在しない ID と同じ扱いにする。
func parseEntryID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, entrydomain.ErrNotFound
	}
	return objectID, nil
}
