package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongodoc "github.com/snhrk2951/illumi-contest-services/api/internal/infrastructure/mongo"
)

type seedOptions struct {
	envName         string
	draftCount      int
	submittedCount  int
	approvedCount   int
	rejectedCount   int
	dropCollections bool
	randomSeed      int64
}

type collections struct {
	entries             string
	photos              string
	failedNotifications string
}

// 開催エリア内に収まるダミー座標の範囲。
const (
	seedMinLat = 35.52
	seedMaxLat = 35.62
	seedMinLng = 139.30
	seedMaxLng = 139.45
)

var seedNames = []string{
	"きらめきの庭",
	"星降る坂の家",
	"ひかりのトンネル",
	"雪待ちテラス",
	"オーロラの小径",
	"灯りの丘",
	"サンタの停留所",
	"流れ星ガレージ",
}

var seedDistricts = []string{
	"中央区相生",
	"緑区橋本",
	"南区古淵",
	"中央区矢部",
	"緑区久保沢",
}

func main() {
	opts := parseFlags()

	if err := loadEnvFiles(opts.envName); err != nil {
		log.Fatalf("環境変数の読み込みに失敗しました: %v", err)
	}

	cfg := collections{
		entries:             envOrDefault("ENTRY_COLLECTION", "entries"),
		photos:              envOrDefault("PHOTO_COLLECTION", "entry_photos"),
		failedNotifications: envOrDefault("FAILED_NOTIFICATION_COLLECTION", "failed_notifications"),
	}

	mongoURI := envOrDefault("MONGO_URI", "mongodb://localhost:27017")
	dbName := envOrDefault("MONGO_DB", "illumi-contest")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("MongoDB 接続に失敗しました: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(dbName)

	if opts.dropCollections {
		if err := dropCollections(ctx, db, cfg); err != nil {
			log.Fatalf("コレクション削除に失敗しました: %v", err)
		}
		log.Printf("既存コレクションを削除しました")
	}

	if err := mongodoc.EnsureIndexes(ctx, db.Collection(cfg.entries), db.Collection(cfg.photos)); err != nil {
		log.Fatalf("インデックス作成に失敗しました: %v", err)
	}

	rng := rand.New(rand.NewSource(opts.randomSeed))

	entryDocs := generateEntries(rng, opts)
	if len(entryDocs) == 0 {
		log.Fatal("entry docs が生成されませんでした")
	}
	if err := insertMany(ctx, db.Collection(cfg.entries), toAnySlice(entryDocs)); err != nil {
		log.Fatalf("エントリーデータの挿入に失敗しました: %v", err)
	}

	photoDocs := generatePhotos(rng, entryDocs)
	if len(photoDocs) > 0 {
		if err := insertMany(ctx, db.Collection(cfg.photos), toAnySlice(photoDocs)); err != nil {
			log.Fatalf("写真データの挿入に失敗しました: %v", err)
		}
	}

	log.Printf("Seed 完了: entries=%d photos=%d", len(entryDocs), len(photoDocs))
	log.Printf("Mongo: %s / %s (env=%s)", mongoURI, dbName, opts.envName)
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.StringVar(&opts.envName, "env", "local", "env 内の env ファイル名 (例: local, staging)")
	flag.IntVar(&opts.draftCount, "drafts", 3, "生成する下書きエントリー数")
	flag.IntVar(&opts.submittedCount, "submitted", 5, "生成する提出済みエントリー数")
	flag.IntVar(&opts.approvedCount, "approved", 8, "生成する承認済みエントリー数")
	flag.IntVar(&opts.rejectedCount, "rejected", 2, "生成する却下済みエントリー数")
	flag.BoolVar(&opts.dropCollections, "drop", true, "既存コレクションを削除してから投入する")
	defaultSeed := time.Now().UnixNano()
	flag.Int64Var(&opts.randomSeed, "seed", defaultSeed, "乱数シード（再現用）")
	flag.Parse()

	for _, count := range []*int{&opts.draftCount, &opts.submittedCount, &opts.approvedCount, &opts.rejectedCount} {
		if *count < 0 {
			*count = 0
		}
	}
	if opts.draftCount+opts.submittedCount+opts.approvedCount+opts.rejectedCount == 0 {
		log.Fatal("生成するエントリー数が 0 件です")
	}
	return opts
}

func loadEnvFiles(envName string) error {
	base := filepath.Clean(filepath.Join("..", "env"))
	files := []string{
		filepath.Join(base, "shared.env"),
		filepath.Join(base, fmt.Sprintf("%s.env", envName)),
	}
	for _, file := range files {
		if err := loadEnvFile(file); err != nil {
			return err
		}
	}
	return nil
}

func loadEnvFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%s の読み込みに失敗しました: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, `"'`)
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func dropCollections(ctx context.Context, db *mongo.Database, cfg collections) error {
	for _, name := range []string{cfg.entries, cfg.photos, cfg.failedNotifications} {
		if err := db.Collection(name).Drop(ctx); err != nil {
			// Drop は存在しない場合も err を返すので warning ログにとどめる
			log.Printf("コレクション %s の削除に失敗 (未作成の可能性): %v", name, err)
		}
	}
	return nil
}

func generateEntries(rng *rand.Rand, opts seedOptions) []mongodoc.EntryDocument {
	total := opts.draftCount + opts.submittedCount + opts.approvedCount + opts.rejectedCount
	docs := make([]mongodoc.EntryDocument, 0, total)
	now := time.Now().UTC()

	build := func(index int, status string) mongodoc.EntryDocument {
		createdAt := now.Add(-time.Duration(rng.Intn(30*24)) * time.Hour)
		name := fmt.Sprintf("%s %d", seedNames[rng.Intn(len(seedNames))], index+1)
		address := fmt.Sprintf("相模原市%s%d-%d-%d",
			seedDistricts[rng.Intn(len(seedDistricts))], rng.Intn(5)+1, rng.Intn(20)+1, rng.Intn(15)+1)

		doc := mongodoc.EntryDocument{
			ID:          primitive.NewObjectID(),
			OwnerID:     fmt.Sprintf("seed-user-%03d", index+1),
			Status:      status,
			Name:        name,
			AddressText: address,
			PlaceKey:    fmt.Sprintf("seed-place-%03d", index+1),
			CreatedAt:   createdAt,
			UpdatedAt:   createdAt,
		}

		if status != "draft" {
			lat := seedMinLat + rng.Float64()*(seedMaxLat-seedMinLat)
			lng := seedMinLng + rng.Float64()*(seedMaxLng-seedMinLng)
			submittedAt := createdAt.Add(time.Duration(rng.Intn(48)+1) * time.Hour)
			doc.Lat = &lat
			doc.Lng = &lng
			doc.SubmittedAt = &submittedAt
			doc.UpdatedAt = submittedAt
		}
		return doc
	}

	index := 0
	for i := 0; i < opts.draftCount; i++ {
		docs = append(docs, build(index, "draft"))
		index++
	}
	for i := 0; i < opts.submittedCount; i++ {
		docs = append(docs, build(index, "submitted"))
		index++
	}
	for i := 0; i < opts.approvedCount; i++ {
		doc := build(index, "approved")
		number := i
		approvedAt := doc.SubmittedAt.Add(time.Duration(rng.Intn(72)+1) * time.Hour)
		doc.EntryNumber = &number
		doc.ApprovedAt = &approvedAt
		doc.UpdatedAt = approvedAt
		docs = append(docs, doc)
		index++
	}
	for i := 0; i < opts.rejectedCount; i++ {
		doc := build(index, "rejected")
		rejectedAt := doc.SubmittedAt.Add(time.Duration(rng.Intn(72)+1) * time.Hour)
		doc.RejectedAt = &rejectedAt
		doc.RejectedReason = "開催エリア外のため"
		doc.UpdatedAt = rejectedAt
		docs = append(docs, doc)
		index++
	}
	return docs
}

func generatePhotos(rng *rand.Rand, entries []mongodoc.EntryDocument) []mongodoc.PhotoDocument {
	docs := make([]mongodoc.PhotoDocument, 0, len(entries)*2)
	for _, entry := range entries {
		if entry.Status == "draft" && rng.Intn(2) == 0 {
			continue
		}
		count := rng.Intn(3) + 1
		for i := 0; i < count; i++ {
			photoID := uuid.NewString()
			uploadedAt := entry.CreatedAt.Add(time.Duration(i+1) * time.Minute)
			docs = append(docs, mongodoc.PhotoDocument{
				ID:          photoID,
				EntryID:     entry.ID,
				StoredPath:  fmt.Sprintf("entries/%s/%s.jpg", entry.ID.Hex(), photoID),
				PublicURL:   fmt.Sprintf("https://media.example.com/entries/%s/%s.jpg", entry.ID.Hex(), photoID),
				ContentType: "image/jpeg",
				UploadedAt:  uploadedAt,
			})
		}
	}
	return docs
}

func insertMany(ctx context.Context, col *mongo.Collection, docs []interface{}) error {
	if len(docs) == 0 {
		return nil
	}
	_, err := col.InsertMany(ctx, docs)
	return err
}

func toAnySlice[T any](in []T) []interface{} {
	out := make([]interface{}, 0, len(in))
	for _, v := range in {
		out = append(out, v)
	}
	return out
}
