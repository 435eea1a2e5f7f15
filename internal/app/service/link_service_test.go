package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/reddaiahsirigireddy/shortt/config"
	"github.com/reddaiahsirigireddy/shortt/internal/app/model"
	"github.com/reddaiahsirigireddy/shortt/internal/app/repository"
)

type mockLinkStore struct {
	getFn    func(ctx context.Context, slug string) (*model.Link, error)
	createFn func(ctx context.Context, link *model.Link) error
	slugsFn  func(ctx context.Context) ([]string, error)
}

func (m *mockLinkStore) GetBySlug(ctx context.Context, slug string) (*model.Link, error) {
	if m.getFn != nil {
		return m.getFn(ctx, slug)
	}
	return nil, repository.ErrLinkNotFound
}

func (m *mockLinkStore) CreateIfAbsent(ctx context.Context, link *model.Link) error {
	if m.createFn != nil {
		return m.createFn(ctx, link)
	}
	return nil
}

func (m *mockLinkStore) Slugs(ctx context.Context) ([]string, error) {
	if m.slugsFn != nil {
		return m.slugsFn(ctx)
	}
	return nil, nil
}

func newTestService(store repository.LinkStore, cfg config.LinkConfig, now time.Time) *linkService {
	svc := NewLinkService(store, nil, cfg).(*linkService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestLinkService_CreateLink_PublicCapsExpiration(t *testing.T) {
	var stored *model.Link
	store := &mockLinkStore{
		createFn: func(ctx context.Context, link *model.Link) error {
			stored = link
			return nil
		},
	}
	cfg := config.LinkConfig{SiteToken: "s3cr3t", CaseSensitive: false}
	svc := newTestService(store, cfg, time.Unix(1000, 0))

	result, err := svc.CreateLink(context.Background(), CreateLinkInput{
		Slug:   "Foo",
		URL:    "https://a.example",
		Scheme: "https",
		Host:   "s.example",
	})
	if err != nil {
		t.Fatalf("CreateLink returned error: %v", err)
	}

	if stored == nil {
		t.Fatal("expected a store write")
	}
	if stored.Slug != "foo" {
		t.Fatalf("expected normalized slug %q, got %q", "foo", stored.Slug)
	}
	if stored.Expiration == nil || *stored.Expiration != 15400 {
		t.Fatalf("expected expiration 15400, got %v", stored.Expiration)
	}
	if result.ShortLink != "https://s.example/foo" {
		t.Fatalf("unexpected short link %q", result.ShortLink)
	}
	if result.Tier != model.TierPublic {
		t.Fatalf("expected public tier, got %v", result.Tier)
	}
}

func TestLinkService_CreateLink_Conflict(t *testing.T) {
	store := &mockLinkStore{
		createFn: func(ctx context.Context, link *model.Link) error {
			return repository.ErrLinkExists
		},
	}
	svc := newTestService(store, config.LinkConfig{SiteToken: "s3cr3t"}, time.Unix(1000, 0))

	_, err := svc.CreateLink(context.Background(), CreateLinkInput{
		Slug:   "foo",
		URL:    "https://b.example",
		Scheme: "https",
		Host:   "s.example",
	})
	if !errors.Is(err, repository.ErrLinkExists) {
		t.Fatalf("expected ErrLinkExists, got %v", err)
	}
}

func TestLinkService_CreateLink_CaseFoldTargetsSameKey(t *testing.T) {
	written := make(map[string]bool)
	store := &mockLinkStore{
		createFn: func(ctx context.Context, link *model.Link) error {
			if written[link.Slug] {
				return repository.ErrLinkExists
			}
			written[link.Slug] = true
			return nil
		},
	}
	svc := newTestService(store, config.LinkConfig{}, time.Unix(1000, 0))

	input := CreateLinkInput{URL: "https://a.example", Scheme: "https", Host: "h"}

	input.Slug = "Foo"
	if _, err := svc.CreateLink(context.Background(), input); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	input.Slug = "foo"
	if _, err := svc.CreateLink(context.Background(), input); !errors.Is(err, repository.ErrLinkExists) {
		t.Fatalf("expected ErrLinkExists for folded duplicate, got %v", err)
	}
}

func TestLinkService_CreateLink_CaseSensitivePreservesSlug(t *testing.T) {
	var stored *model.Link
	store := &mockLinkStore{
		createFn: func(ctx context.Context, link *model.Link) error {
			stored = link
			return nil
		},
	}
	svc := newTestService(store, config.LinkConfig{CaseSensitive: true}, time.Unix(1000, 0))

	if _, err := svc.CreateLink(context.Background(), CreateLinkInput{
		Slug: "Foo", URL: "https://a.example", Scheme: "https", Host: "h",
	}); err != nil {
		t.Fatalf("CreateLink returned error: %v", err)
	}
	if stored.Slug != "Foo" {
		t.Fatalf("expected case-preserved slug, got %q", stored.Slug)
	}
}

func TestLinkService_CreateLink_PrivilegedNoExpiration(t *testing.T) {
	var stored *model.Link
	store := &mockLinkStore{
		createFn: func(ctx context.Context, link *model.Link) error {
			stored = link
			return nil
		},
	}
	svc := newTestService(store, config.LinkConfig{SiteToken: "s3cr3t"}, time.Unix(1000, 0))

	result, err := svc.CreateLink(context.Background(), CreateLinkInput{
		Slug:       "perm",
		URL:        "https://c.example",
		Credential: "s3cr3t",
		Scheme:     "https",
		Host:       "s.example",
	})
	if err != nil {
		t.Fatalf("CreateLink returned error: %v", err)
	}
	if result.Tier != model.TierPrivileged {
		t.Fatalf("expected privileged tier, got %v", result.Tier)
	}
	if stored.Expiration != nil {
		t.Fatalf("expected no expiration, got %d", *stored.Expiration)
	}
}

func TestLinkService_CreateLink_PublicStricterExpirationHonored(t *testing.T) {
	now := time.Unix(5000, 0)
	requested := now.Unix() + 60

	var stored *model.Link
	store := &mockLinkStore{
		createFn: func(ctx context.Context, link *model.Link) error {
			stored = link
			return nil
		},
	}
	svc := newTestService(store, config.LinkConfig{SiteToken: "s3cr3t"}, now)

	if _, err := svc.CreateLink(context.Background(), CreateLinkInput{
		Slug: "brief", URL: "https://d.example", Expiration: &requested,
		Scheme: "https", Host: "h",
	}); err != nil {
		t.Fatalf("CreateLink returned error: %v", err)
	}
	if stored.Expiration == nil || *stored.Expiration != requested {
		t.Fatalf("expected expiration %d, got %v", requested, stored.Expiration)
	}
}

func TestLinkService_CreateLink_EmptyURLRejected(t *testing.T) {
	writes := 0
	store := &mockLinkStore{
		createFn: func(ctx context.Context, link *model.Link) error {
			writes++
			return nil
		},
	}
	svc := newTestService(store, config.LinkConfig{}, time.Unix(1000, 0))

	_, err := svc.CreateLink(context.Background(), CreateLinkInput{Slug: "x", Scheme: "https", Host: "h"})
	if !errors.Is(err, ErrInvalidLink) {
		t.Fatalf("expected ErrInvalidLink, got %v", err)
	}
	if writes != 0 {
		t.Fatalf("expected no store writes, got %d", writes)
	}
}

func TestLinkService_GetLink_NotFound(t *testing.T) {
	store := &mockLinkStore{
		getFn: func(ctx context.Context, slug string) (*model.Link, error) {
			return nil, repository.ErrLinkNotFound
		},
	}
	svc := newTestService(store, config.LinkConfig{}, time.Unix(1000, 0))

	_, err := svc.GetLink(context.Background(), "missing")
	if !errors.Is(err, repository.ErrLinkNotFound) {
		t.Fatalf("expected ErrLinkNotFound, got %v", err)
	}
}

func TestLinkService_GetLink_FoldsSlug(t *testing.T) {
	store := &mockLinkStore{
		getFn: func(ctx context.Context, slug string) (*model.Link, error) {
			if slug != "foo" {
				t.Fatalf("expected lookup of %q, got %q", "foo", slug)
			}
			return &model.Link{Slug: slug, URL: "https://a.example"}, nil
		},
	}
	svc := newTestService(store, config.LinkConfig{}, time.Unix(1000, 0))

	if _, err := svc.GetLink(context.Background(), "FOO"); err != nil {
		t.Fatalf("GetLink returned error: %v", err)
	}
}
