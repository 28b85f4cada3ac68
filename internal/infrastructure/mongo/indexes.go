package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes は起動時にエントリー関連コレクションのインデックスを作成する。
//
//   - ownerId のユニークインデックス: 1 所有者 1 エントリーを保証する。
//   - entryNumber の部分ユニークインデックス: 承認済みエントリーの番号重複を防ぐ。
//     フィールドが存在するドキュメントだけを対象にするため、未承認のエントリーには影響しない。
//   - status / placeKey: 一覧と重複チェックの検索用。
func EnsureIndexes(ctx context.Context, entries, photos *mongo.Collection) error {
	entryIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "entryNumber", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"entryNumber": bson.M{"$exists": true}}),
		},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "placeKey", Value: 1}}},
	}
	if _, err := entries.Indexes().CreateMany(ctx, entryIndexes); err != nil {
		return err
	}

	photoIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "entryId", Value: 1}}},
	}
	if _, err := photos.Indexes().CreateMany(ctx, photoIndexes); err != nil {
		return err
	}
	return nil
}
