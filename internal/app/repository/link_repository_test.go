package repository

import (
	"testing"
	"time"
)

func TestLinkKeys(t *testing.T) {
	if got := linkKey("foo"); got != "link:foo" {
		t.Fatalf("expected %q, got %q", "link:foo", got)
	}
	if got := metaKey("foo"); got != "link:meta:foo" {
		t.Fatalf("expected %q, got %q", "link:meta:foo", got)
	}
}

func TestTTLUntil(t *testing.T) {
	now := time.Unix(1000, 0)

	if got := ttlUntil(nil, now); got != 0 {
		t.Fatalf("nil expiration: expected 0, got %v", got)
	}

	future := int64(1060)
	if got := ttlUntil(&future, now); got != time.Minute {
		t.Fatalf("future expiration: expected 1m, got %v", got)
	}

	past := int64(900)
	if got := ttlUntil(&past, now); got != time.Second {
		t.Fatalf("past expiration: expected 1s clamp, got %v", got)
	}
}
