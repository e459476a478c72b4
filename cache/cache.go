package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/EasterCompany/dex-lipi-service/config"
	"github.com/EasterCompany/dex-lipi-service/utils"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "dex-lipi-service:"

	// Redis keys, relative to keyPrefix
	HistoryKey = "history"
	LogsKey    = "logs"
	translitNS = "translit:"

	// Pub/Sub channel
	EventStreamChannel = "dexter:events"

	maxHistory = 200
	maxLogs    = 100
)

// Cache is the interface for our in-memory data store.
type Cache interface {
	AddRequest(ctx context.Context, ev utils.RequestEvent) error
	RecentRequests(ctx context.Context, limit int64) ([]utils.RequestEvent, error)
	PublishEvent(ctx context.Context, event interface{}) error
	GetTransliteration(ctx context.Context, key string) (string, bool, error)
	SetTransliteration(ctx context.Context, key, value string, ttl time.Duration) error
	AppendLog(ctx context.Context, line string) error
	Ping() error
	Close() error
}

type DB struct {
	rdb *redis.Client
	ctx context.Context
}

// New connects to Redis. A nil or empty config returns a nil DB and no error:
// the cache is optional.
func New(cfg *config.ConnectionConfig) (*DB, error) {
	if cfg == nil || cfg.Addr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx := context.Background()
	_, err := rdb.Ping(ctx).Result()
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("could not connect to cache at %s: %w", cfg.Addr, err)
	}
	return &DB{rdb: rdb, ctx: ctx}, nil
}

func (db *DB) Ping() error {
	return db.rdb.Ping(db.ctx).Err()
}

func (db *DB) Close() error {
	return db.rdb.Close()
}

// addToList adds an item to the start of a list and trims the list to a max length.
func (db *DB) addToList(ctx context.Context, key string, value interface{}, maxLength int64) error {
	pipe := db.rdb.Pipeline()
	pipe.LPush(ctx, key, value)
	pipe.LTrim(ctx, key, 0, maxLength-1)
	_, err := pipe.Exec(ctx)
	return err
}

// AddRequest records a processed request at the head of the history list.
func (db *DB) AddRequest(ctx context.Context, ev utils.RequestEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("could not marshal request event: %w", err)
	}
	return db.addToList(ctx, keyPrefix+HistoryKey, data, maxHistory)
}

// RecentRequests returns up to limit history entries, newest first.
func (db *DB) RecentRequests(ctx context.Context, limit int64) ([]utils.RequestEvent, error) {
	if limit <= 0 || limit > maxHistory {
		limit = maxHistory
	}
	vals, err := db.rdb.LRange(ctx, keyPrefix+HistoryKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("could not load request history: %w", err)
	}
	events := make([]utils.RequestEvent, 0, len(vals))
	for _, v := range vals {
		var ev utils.RequestEvent
		if err := json.Unmarshal([]byte(v), &ev); err != nil {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

// PublishEvent publishes an event to the event stream.
func (db *DB) PublishEvent(ctx context.Context, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not marshal event: %w", err)
	}
	return db.rdb.Publish(ctx, EventStreamChannel, data).Err()
}

// GetTransliteration looks up a cached conversion.
func (db *DB) GetTransliteration(ctx context.Context, key string) (string, bool, error) {
	val, err := db.rdb.Get(ctx, keyPrefix+translitNS+key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		return "", false, fmt.Errorf("could not load cached conversion: %w", err)
	}
	return val, true, nil
}

// SetTransliteration stores a conversion result for ttl.
func (db *DB) SetTransliteration(ctx context.Context, key, value string, ttl time.Duration) error {
	return db.rdb.Set(ctx, keyPrefix+translitNS+key, value, ttl).Err()
}

// AppendLog keeps the most recent service log lines.
func (db *DB) AppendLog(ctx context.Context, line string) error {
	return db.addToList(ctx, keyPrefix+LogsKey, line, maxLogs)
}

// Keys lists every key owned by the service, without the prefix.
func (db *DB) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := db.rdb.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), keyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// Type returns the Redis type of a service key.
func (db *DB) Type(ctx context.Context, key string) (string, error) {
	return db.rdb.Type(ctx, keyPrefix+key).Result()
}

// Get returns a string value by service key.
func (db *DB) Get(ctx context.Context, key string) (string, error) {
	return db.rdb.Get(ctx, keyPrefix+key).Result()
}

// LRange returns a range of a list by service key.
func (db *DB) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	return db.rdb.LRange(ctx, keyPrefix+key, start, stop).Result()
}

// CleanConversions deletes every cached conversion.
func (db *DB) CleanConversions(ctx context.Context) (int64, error) {
	var keys []string
	iter := db.rdb.Scan(ctx, 0, keyPrefix+translitNS+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}
	return db.rdb.Del(ctx, keys...).Result()
}
