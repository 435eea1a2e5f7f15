package service

import "github.com/reddaiahsirigireddy/shortt/internal/app/model"

// ClassifyTier compares a presented credential with the configured site
// token. Only an exact match counts as privileged; an absent, empty, or
// mismatched credential is public. The result selects the expiration policy
// and is not an access-control decision, that gate lives in the routing
// middleware.
func ClassifyTier(credential, siteToken string) model.Tier {
	if credential != "" && credential == siteToken {
		return model.TierPrivileged
	}
	return model.TierPublic
}
