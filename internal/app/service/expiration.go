package service

import (
	"time"

	"github.com/reddaiahsirigireddy/shortt/internal/app/model"
)

// PublicLinkTTL caps how long an unauthenticated caller can keep a link
// alive. Privileged callers are not constrained.
const PublicLinkTTL = 4 * time.Hour

// EffectiveExpiration applies the tier policy to a caller-requested
// expiration (absolute Unix seconds, nil = no limit requested).
//
// Public tier: the result is at most now+PublicLinkTTL; an absent or
// too-generous request is clamped to that cap, a stricter request is honored
// verbatim. Privileged tier: the request passes through untouched, including
// nil, which stores the record without a TTL.
func EffectiveExpiration(tier model.Tier, requested *int64, now time.Time) *int64 {
	if tier == model.TierPrivileged {
		return requested
	}

	limit := now.Unix() + int64(PublicLinkTTL/time.Second)
	if requested == nil || *requested > limit {
		return &limit
	}
	return requested
}
