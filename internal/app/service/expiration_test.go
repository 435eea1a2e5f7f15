package service

import (
	"testing"
	"time"

	"github.com/reddaiahsirigireddy/shortt/internal/app/model"
)

func TestEffectiveExpiration_PublicAbsentClampedToCap(t *testing.T) {
	now := time.Unix(1000, 0)

	got := EffectiveExpiration(model.TierPublic, nil, now)
	if got == nil || *got != 15400 {
		t.Fatalf("expected 15400, got %v", got)
	}
}

func TestEffectiveExpiration_PublicTooGenerousClampedToCap(t *testing.T) {
	now := time.Unix(1000, 0)
	requested := int64(1_000_000)

	got := EffectiveExpiration(model.TierPublic, &requested, now)
	if got == nil || *got != 15400 {
		t.Fatalf("expected 15400, got %v", got)
	}
}

func TestEffectiveExpiration_PublicStricterHonored(t *testing.T) {
	now := time.Unix(1000, 0)
	requested := now.Unix() + 60

	got := EffectiveExpiration(model.TierPublic, &requested, now)
	if got == nil || *got != requested {
		t.Fatalf("expected %d, got %v", requested, got)
	}
}

func TestEffectiveExpiration_PublicExactlyCapHonored(t *testing.T) {
	now := time.Unix(1000, 0)
	requested := now.Unix() + int64(PublicLinkTTL/time.Second)

	got := EffectiveExpiration(model.TierPublic, &requested, now)
	if got == nil || *got != requested {
		t.Fatalf("expected %d, got %v", requested, got)
	}
}

func TestEffectiveExpiration_PublicCapTruncatesSubsecondNow(t *testing.T) {
	// 1000.9s must truncate, not round, when deriving the cap.
	now := time.Unix(1000, 900_000_000)

	got := EffectiveExpiration(model.TierPublic, nil, now)
	if got == nil || *got != 15400 {
		t.Fatalf("expected truncated cap 15400, got %v", got)
	}
}

func TestEffectiveExpiration_PrivilegedPassThrough(t *testing.T) {
	now := time.Unix(1000, 0)
	requested := int64(99_999_999)

	got := EffectiveExpiration(model.TierPrivileged, &requested, now)
	if got == nil || *got != requested {
		t.Fatalf("expected %d, got %v", requested, got)
	}
}

func TestEffectiveExpiration_PrivilegedAbsentStaysAbsent(t *testing.T) {
	got := EffectiveExpiration(model.TierPrivileged, nil, time.Unix(1000, 0))
	if got != nil {
		t.Fatalf("expected nil expiration, got %d", *got)
	}
}

func TestClassifyTier(t *testing.T) {
	const secret = "s3cr3t"

	if got := ClassifyTier("s3cr3t", secret); got != model.TierPrivileged {
		t.Fatalf("matching credential: expected privileged, got %v", got)
	}
	if got := ClassifyTier("", secret); got != model.TierPublic {
		t.Fatalf("absent credential: expected public, got %v", got)
	}
	if got := ClassifyTier("wrong", secret); got != model.TierPublic {
		t.Fatalf("mismatched credential: expected public, got %v", got)
	}
	if got := ClassifyTier("S3CR3T", secret); got != model.TierPublic {
		t.Fatalf("case-variant credential: expected public, got %v", got)
	}
}
