package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/reddaiahsirigireddy/shortt/config"
)

func TestNormalizeSlug(t *testing.T) {
	if got := NormalizeSlug("FooBar", false); got != "foobar" {
		t.Fatalf("expected folded slug, got %q", got)
	}
	if got := NormalizeSlug("FooBar", true); got != "FooBar" {
		t.Fatalf("expected preserved slug, got %q", got)
	}
}

func TestSlugValidator_Format(t *testing.T) {
	v, err := NewSlugValidator(config.LinkConfig{})
	if err != nil {
		t.Fatalf("NewSlugValidator: %v", err)
	}

	valid := []string{"foo", "foo-bar", "a1-b2-c3", "Foo"}
	for _, s := range valid {
		if err := v.Validate(s); err != nil {
			t.Fatalf("expected %q to be valid, got %v", s, err)
		}
	}

	invalid := []string{"", "-foo", "foo-", "foo--bar", "foo_bar", "foo bar", "füü"}
	for _, s := range invalid {
		if err := v.Validate(s); !errors.Is(err, ErrSlugInvalid) {
			t.Fatalf("expected %q to fail with ErrSlugInvalid, got %v", s, err)
		}
	}
}

func TestSlugValidator_Reserved(t *testing.T) {
	v, err := NewSlugValidator(config.LinkConfig{ReservedSlugs: []string{"dashboard"}})
	if err != nil {
		t.Fatalf("NewSlugValidator: %v", err)
	}

	if err := v.Validate("dashboard"); !errors.Is(err, ErrSlugReserved) {
		t.Fatalf("expected ErrSlugReserved, got %v", err)
	}
	if err := v.Validate("Dashboard"); !errors.Is(err, ErrSlugReserved) {
		t.Fatalf("expected reserved check to ignore case, got %v", err)
	}
	if err := v.Validate("dash"); err != nil {
		t.Fatalf("expected %q to be valid, got %v", "dash", err)
	}
}

func TestSlugValidator_BadPattern(t *testing.T) {
	if _, err := NewSlugValidator(config.LinkConfig{SlugPattern: "("}); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

func TestGenerateSlug(t *testing.T) {
	v, err := NewSlugValidator(config.LinkConfig{})
	if err != nil {
		t.Fatalf("NewSlugValidator: %v", err)
	}

	slug, err := GenerateSlug(0)
	if err != nil {
		t.Fatalf("GenerateSlug: %v", err)
	}
	if len(slug) != defaultSlugLength {
		t.Fatalf("expected length %d, got %d", defaultSlugLength, len(slug))
	}
	for _, r := range slug {
		if !strings.ContainsRune(slugAlphabet, r) {
			t.Fatalf("unexpected character %q in generated slug %q", r, slug)
		}
	}
	if err := v.Validate(slug); err != nil {
		t.Fatalf("generated slug %q failed validation: %v", slug, err)
	}
}
