package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/reddaiahsirigireddy/shortt/config"
	"github.com/reddaiahsirigireddy/shortt/internal/app/model"
	"github.com/reddaiahsirigireddy/shortt/internal/app/repository"
)

// ErrInvalidLink signals a malformed candidate that must never reach the
// store. Schema validation happens at the HTTP edge; this is the one
// defensive invariant the service re-checks.
var ErrInvalidLink = errors.New("invalid link record")

// LinkService is the creation orchestrator: normalize, classify, apply the
// expiration policy, then conditionally insert.
type LinkService interface {
	CreateLink(ctx context.Context, input CreateLinkInput) (*CreateLinkResult, error)
	GetLink(ctx context.Context, slug string) (*model.Link, error)
}

// CreateLinkInput captures an already schema-valid candidate plus the request
// context needed for classification and the derived short link.
type CreateLinkInput struct {
	Slug       string
	URL        string
	Comment    string
	Expiration *int64

	// Credential is the bearer token extracted from the Authorization
	// header, empty when absent.
	Credential string

	// Scheme and Host come from the incoming request and shape the returned
	// short link.
	Scheme string
	Host   string
}

// CreateLinkResult is the public outcome of a successful creation.
type CreateLinkResult struct {
	Link      *model.Link
	ShortLink string
	Tier      model.Tier
}

type linkService struct {
	store  repository.LinkStore
	filter *SlugFilter
	cfg    config.LinkConfig
	now    func() time.Time
}

// NewLinkService returns the orchestrator backed by the given store. The
// filter may be nil when the resolution fast path is not wanted.
func NewLinkService(store repository.LinkStore, filter *SlugFilter, cfg config.LinkConfig) LinkService {
	return &linkService{
		store:  store,
		filter: filter,
		cfg:    cfg,
		now:    time.Now,
	}
}

func (s *linkService) CreateLink(ctx context.Context, input CreateLinkInput) (*CreateLinkResult, error) {
	if input.URL == "" {
		return nil, fmt.Errorf("create link: %w: url is required", ErrInvalidLink)
	}
	if input.Slug == "" {
		return nil, fmt.Errorf("create link: %w: slug is required", ErrInvalidLink)
	}

	slug := NormalizeSlug(input.Slug, s.cfg.CaseSensitive)
	tier := ClassifyTier(input.Credential, s.cfg.SiteToken)

	link := &model.Link{
		Slug:       slug,
		URL:        input.URL,
		Comment:    input.Comment,
		Expiration: EffectiveExpiration(tier, input.Expiration, s.now()),
	}

	// Existence check and conditional write live in the store gateway. On
	// conflict nothing is written.
	if err := s.store.CreateIfAbsent(ctx, link); err != nil {
		return nil, fmt.Errorf("create link: %w", err)
	}

	if s.filter != nil {
		s.filter.Add(slug)
	}

	return &CreateLinkResult{
		Link:      link,
		ShortLink: fmt.Sprintf("%s://%s/%s", input.Scheme, input.Host, slug),
		Tier:      tier,
	}, nil
}

func (s *linkService) GetLink(ctx context.Context, slug string) (*model.Link, error) {
	normalized := NormalizeSlug(slug, s.cfg.CaseSensitive)

	// A definitive filter miss saves the store round trip.
	if s.filter != nil && !s.filter.MightContain(normalized) {
		return nil, fmt.Errorf("get link: %w", repository.ErrLinkNotFound)
	}

	link, err := s.store.GetBySlug(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("get link: %w", err)
	}
	return link, nil
}
