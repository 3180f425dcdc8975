package ai

import "strings"

// ResolveCredential picks the credential for one call: the caller's own value
// when it is not blank, otherwise the process-wide fallback.
func ResolveCredential(explicit, fallback string) (string, error) {
	if key := strings.TrimSpace(explicit); key != "" {
		return key, nil
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", ErrMissingCredential
}
