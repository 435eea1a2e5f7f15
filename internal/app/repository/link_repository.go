package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/reddaiahsirigireddy/shortt/internal/app/model"
)

var (
	// ErrLinkNotFound signals that the requested short link does not exist.
	ErrLinkNotFound = errors.New("link not found")
	// ErrLinkExists signals a creation conflict: the slug is already taken.
	// The caller has to pick a different slug; no auto-suffixing happens.
	ErrLinkExists = errors.New("link already exists")
)

// LinkStore defines the key-value access contract for short links.
type LinkStore interface {
	// GetBySlug loads and decodes the record stored under the slug.
	GetBySlug(ctx context.Context, slug string) (*model.Link, error)
	// CreateIfAbsent writes the record unless the key already holds a value.
	// The presence check and the write are two round trips; two concurrent
	// creators of the same slug may both pass the check. The store's own
	// single-put atomicity is the only guarantee relied upon.
	CreateIfAbsent(ctx context.Context, link *model.Link) error
	// Slugs walks every stored link key and returns the slugs. Used to seed
	// the in-process slug filter at boot.
	Slugs(ctx context.Context) ([]string, error)
}

type linkStore struct {
	rdb *redis.Client
}

// NewLinkStore returns a Redis-backed LinkStore.
func NewLinkStore(rdb *redis.Client) LinkStore {
	return &linkStore{rdb: rdb}
}

func (s *linkStore) GetBySlug(ctx context.Context, slug string) (*model.Link, error) {
	val, err := s.rdb.Get(ctx, linkKey(slug)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("link store: get %s: %w", slug, err)
	}

	var link model.Link
	if err := json.Unmarshal([]byte(val), &link); err != nil {
		return nil, fmt.Errorf("link store: decode %s: %w", slug, err)
	}
	return &link, nil
}

func (s *linkStore) CreateIfAbsent(ctx context.Context, link *model.Link) error {
	key := linkKey(link.Slug)

	// Any existing value is a conflict; the content is not inspected.
	n, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("link store: exists %s: %w", link.Slug, err)
	}
	if n > 0 {
		return ErrLinkExists
	}

	payload, err := json.Marshal(link)
	if err != nil {
		return fmt.Errorf("link store: encode %s: %w", link.Slug, err)
	}

	ttl := ttlUntil(link.Expiration, time.Now())

	// The record and its metadata hash are written in one transaction and
	// share the same TTL. The metadata hash exists so the resolution path
	// and analytics can read expiration/url/comment without decoding JSON.
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, key, payload, ttl)

	meta := map[string]interface{}{
		"url":     link.URL,
		"comment": link.Comment,
	}
	if link.Expiration != nil {
		meta["expiration"] = *link.Expiration
	}
	mk := metaKey(link.Slug)
	pipe.HSet(ctx, mk, meta)
	if ttl > 0 {
		pipe.Expire(ctx, mk, ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("link store: put %s: %w", link.Slug, err)
	}
	return nil
}

func (s *linkStore) Slugs(ctx context.Context) ([]string, error) {
	var slugs []string
	iter := s.rdb.Scan(ctx, 0, model.KeyPrefix+"*", 512).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if strings.HasPrefix(key, model.MetaKeyPrefix) {
			continue
		}
		slugs = append(slugs, strings.TrimPrefix(key, model.KeyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("link store: scan: %w", err)
	}
	return slugs, nil
}

func linkKey(slug string) string {
	return model.KeyPrefix + slug
}

func metaKey(slug string) string {
	return model.MetaKeyPrefix + slug
}

// ttlUntil converts an absolute Unix expiration into a relative TTL.
// Expirations in the past are rejected upstream; clamp anyway so SET never
// receives a non-positive duration.
func ttlUntil(expiration *int64, now time.Time) time.Duration {
	if expiration == nil {
		return 0
	}
	d := time.Unix(*expiration, 0).Sub(now)
	if d <= 0 {
		return time.Second
	}
	return d
}
