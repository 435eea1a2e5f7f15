package model

// Link is the core short-link record. It is serialized to JSON and stored in
// Redis under KeyPrefix+slug; Expiration is an absolute Unix timestamp in
// seconds and nil means the record carries no TTL.
type Link struct {
	Slug       string `json:"slug"`
	URL        string `json:"url"`
	Comment    string `json:"comment,omitempty"`
	Expiration *int64 `json:"expiration,omitempty"`
}

const (
	// KeyPrefix namespaces link records in the store.
	KeyPrefix = "link:"
	// MetaKeyPrefix namespaces the metadata hash kept next to each record so
	// that consumers can inspect expiration/url/comment without decoding the
	// full JSON value.
	MetaKeyPrefix = "link:meta:"
)

// Tier is the caller's authorization classification. It selects the
// expiration policy and nothing else; access control proper happens in the
// routing middleware.
type Tier int

const (
	TierPublic Tier = iota
	TierPrivileged
)

func (t Tier) String() string {
	if t == TierPrivileged {
		return "privileged"
	}
	return "public"
}
