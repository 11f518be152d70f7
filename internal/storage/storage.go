package storage

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/radarjus/newsradar/internal/processor"
)

// readLimit caps how many cached rows one read returns.
const readLimit = 50

// freshKey is the Redis key fronting the latest persisted batch.
const freshKey = "news:fresh"

// News is one cached article reference. The table is append-only: each
// successful aggregation inserts its whole batch and readers pick the rows
// inside the freshness window; nothing is ever updated.
type News struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	ItemID string `gorm:"size:40;index" json:"-"` // sha1 of the article URL
	Portal string `gorm:"size:64;index" json:"portal"`
	Title  string `gorm:"size:512" json:"title"`
	// Preview length is bounded upstream by the processor; the column size
	// is the second line of defense.
	Preview     string            `gorm:"size:600" json:"preview"`
	ImageURL    string            `gorm:"size:1024" json:"imageUrl"`
	NewsURL     string            `gorm:"size:1024;index" json:"newsUrl"`
	PublishedAt time.Time         `gorm:"index" json:"publishedAt"`
	ExtraData   datatypes.JSONMap `gorm:"type:jsonb" json:"extraData"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

type Store struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewStore(dsn, redisAddr string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&News{}); err != nil {
		return nil, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("warn: redis ping failed: %v", err)
	}

	return &Store{DB: db, Redis: rdb}, nil
}

// ReadFresh returns the cached items whose stored timestamp falls inside the
// window, newest-first, up to readLimit. An empty result means the caller
// should fetch. Redis fronts the Postgres query; it is written with a TTL
// equal to the window, so an expired key and a stale window agree.
func (s *Store) ReadFresh(ctx context.Context, window time.Duration) ([]processor.ProcessedItem, error) {
	if s.Redis != nil {
		if bs, err := s.Redis.Get(ctx, freshKey).Bytes(); err == nil {
			var cached []processor.ProcessedItem
			if err := json.Unmarshal(bs, &cached); err == nil {
				return cached, nil
			}
		}
	}

	threshold := time.Now().Add(-window)
	var rows []News
	err := s.DB.WithContext(ctx).
		Where("created_at > ?", threshold).
		Order("published_at DESC").
		Limit(readLimit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return fromRows(rows), nil
}

// WriteBatch appends the batch with the current timestamp and refreshes the
// Redis front. The Redis write is best-effort; the Postgres insert is the
// durable record.
func (s *Store) WriteBatch(ctx context.Context, items []processor.ProcessedItem, window time.Duration) error {
	if len(items) == 0 {
		return nil
	}

	rows := make([]News, 0, len(items))
	for _, it := range items {
		rows = append(rows, toRow(it))
	}

	if err := s.DB.WithContext(ctx).Create(&rows).Error; err != nil {
		return err
	}

	if s.Redis != nil {
		if bs, err := json.Marshal(items); err == nil {
			if err := s.Redis.Set(ctx, freshKey, bs, window).Err(); err != nil {
				log.Printf("warn: redis set %s: %v", freshKey, err)
			}
		}
	}

	return nil
}

// PurgeOlderThan deletes rows persisted more than the given number of days
// ago. Keeps the append-only table from growing without bound.
func (s *Store) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	res := s.DB.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&News{})
	return res.RowsAffected, res.Error
}

func toRow(it processor.ProcessedItem) News {
	extra := datatypes.JSONMap{}
	if it.Via != "" {
		extra["via"] = it.Via
	}
	return News{
		ItemID:      it.ID,
		Portal:      it.Portal,
		Title:       it.Title,
		Preview:     it.Preview,
		ImageURL:    it.ImageURL,
		NewsURL:     it.NewsURL,
		PublishedAt: it.PublishedAt,
		ExtraData:   extra,
	}
}

func fromRows(rows []News) []processor.ProcessedItem {
	items := make([]processor.ProcessedItem, 0, len(rows))
	for _, r := range rows {
		via, _ := r.ExtraData["via"].(string)
		items = append(items, processor.ProcessedItem{
			ID:          r.ItemID,
			Portal:      r.Portal,
			Title:       r.Title,
			Preview:     r.Preview,
			ImageURL:    r.ImageURL,
			NewsURL:     r.NewsURL,
			PublishedAt: r.PublishedAt,
			Via:         via,
		})
	}
	return items
}
