package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/reddaiahsirigireddy/shortt/config"
)

var (
	// ErrSlugInvalid is returned when a slug does not match the configured pattern.
	ErrSlugInvalid = errors.New("slug does not match the allowed pattern")
	// ErrSlugReserved is returned when a slug collides with a reserved route.
	ErrSlugReserved = errors.New("slug is reserved and cannot be used")
)

// NormalizeSlug canonicalizes a candidate slug: it folds to lowercase unless
// the deployment preserves case. No other mutation happens here; format and
// reserved-word checks are the validator's job.
func NormalizeSlug(slug string, caseSensitive bool) string {
	if caseSensitive {
		return slug
	}
	return strings.ToLower(slug)
}

// SlugValidator enforces the slug format pattern and the reserved-slug set
// before a candidate reaches the creation flow.
type SlugValidator struct {
	pattern  *regexp.Regexp
	reserved map[string]bool
}

// NewSlugValidator compiles the configured pattern (falling back to the
// default) and indexes the reserved set. Matching ignores case so that
// case-preserving deployments still accept mixed-case slugs.
func NewSlugValidator(cfg config.LinkConfig) (*SlugValidator, error) {
	pattern := cfg.SlugPattern
	if pattern == "" {
		pattern = config.DefaultSlugPattern
	}

	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("slug validator: compile pattern %q: %w", pattern, err)
	}

	reserved := make(map[string]bool, len(cfg.ReservedSlugs))
	for _, s := range cfg.ReservedSlugs {
		reserved[strings.ToLower(s)] = true
	}

	return &SlugValidator{pattern: re, reserved: reserved}, nil
}

// Validate checks format and reserved words. Uniqueness is not checked here,
// that is the store's conflict check.
func (v *SlugValidator) Validate(slug string) error {
	if !v.pattern.MatchString(slug) {
		return fmt.Errorf("%w: %q", ErrSlugInvalid, slug)
	}
	if v.reserved[strings.ToLower(slug)] {
		return fmt.Errorf("%w: %q", ErrSlugReserved, slug)
	}
	return nil
}

const (
	slugAlphabet      = "abcdefghijklmnopqrstuvwxyz0123456789"
	defaultSlugLength = 6
)

// GenerateSlug produces a random slug from the lowercase alphanumeric
// alphabet, used when the caller did not supply one.
func GenerateSlug(length int) (string, error) {
	if length <= 0 {
		length = defaultSlugLength
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate slug: %w", err)
	}
	for i, b := range buf {
		buf[i] = slugAlphabet[int(b)%len(slugAlphabet)]
	}
	return string(buf), nil
}
