package util

import "strings"

// ExtractBearer pulls the credential out of an Authorization header value,
// stripping a leading "Bearer" scheme marker and surrounding whitespace. It
// returns "" when no credential is present. Pure string transform so tier
// classification can be tested without header plumbing.
func ExtractBearer(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}

	const scheme = "bearer"
	if len(header) > len(scheme) && strings.EqualFold(header[:len(scheme)], scheme) {
		rest := header[len(scheme):]
		if trimmed := strings.TrimLeft(rest, " \t"); trimmed != rest {
			return strings.TrimSpace(trimmed)
		}
	}
	return header
}
