package service

import (
	"context"
	"testing"
)

func TestSlugFilter_AddAndTest(t *testing.T) {
	f := NewSlugFilter()

	if f.MightContain("foo") {
		t.Fatal("empty filter should not contain anything")
	}

	f.Add("foo")
	if !f.MightContain("foo") {
		t.Fatal("filter must never report false negatives for added slugs")
	}
}

func TestSlugFilter_Seed(t *testing.T) {
	store := &mockLinkStore{
		slugsFn: func(ctx context.Context) ([]string, error) {
			return []string{"a", "b", "c"}, nil
		},
	}

	f := NewSlugFilter()
	n, err := f.Seed(context.Background(), store)
	if err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 seeded slugs, got %d", n)
	}
	for _, slug := range []string{"a", "b", "c"} {
		if !f.MightContain(slug) {
			t.Fatalf("expected filter to contain %q after seeding", slug)
		}
	}
}
