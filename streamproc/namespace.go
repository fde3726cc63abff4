package streamproc

import "strings"

// preparedNamespaces holds the deduplicated, validated form of a
// TokenStreamingConfig's namespace pattern sets, built once at construction
// time rather than on every eligibility check.
type preparedNamespaces struct {
	enabled    []string // deduplicated, excluding the "all" sentinel
	excluded   map[string]struct{}
	enabledSet map[string]struct{}
	allEnabled bool
}

func prepareNamespaces(enabled, excluded []string) (preparedNamespaces, error) {
	p := preparedNamespaces{
		excluded:   dedupeSet(excluded),
		enabledSet: dedupeSet(enabled),
	}
	for pattern := range p.enabledSet {
		if pattern == SentinelAll {
			p.allEnabled = true
			continue
		}
		if err := validatePattern(pattern); err != nil {
			return preparedNamespaces{}, err
		}
		p.enabled = append(p.enabled, pattern)
	}
	for pattern := range p.excluded {
		if err := validatePattern(pattern); err != nil {
			return preparedNamespaces{}, err
		}
	}
	return p, nil
}

func dedupeSet(patterns []string) map[string]struct{} {
	set := make(map[string]struct{}, len(patterns))
	for _, p := range patterns {
		set[p] = struct{}{}
	}
	return set
}

// validatePattern rejects a malformed namespace pattern: an empty pattern,
// a pattern with an empty ":"-separated component, or a prefix wildcard
// with nothing before the "*".
func validatePattern(pattern string) error {
	if pattern == "" {
		return newConfigError("namespace pattern must not be empty")
	}
	body := pattern
	if strings.HasSuffix(pattern, ":*") {
		body = strings.TrimSuffix(pattern, ":*")
		if body == "" {
			return newConfigErrorf("namespace pattern %q has no prefix before \":*\"", pattern)
		}
	}
	for _, part := range strings.Split(body, ":") {
		if part == "" {
			return newConfigErrorf("namespace pattern %q has an empty component", pattern)
		}
	}
	return nil
}

// eligible reports whether an already-extracted namespace pattern (not a
// display name) is enabled for token streaming: exclusions always win,
// then the "all" sentinel, then an exact or wildcard-prefix match.
func (p preparedNamespaces) eligible(pattern string) bool {
	if _, excluded := p.excluded[pattern]; excluded {
		return false
	}
	if p.allEnabled {
		return true
	}
	for _, entry := range p.enabled {
		if strings.HasSuffix(entry, ":*") {
			prefix := strings.TrimSuffix(entry, ":*")
			if pattern == prefix || strings.HasPrefix(pattern, prefix+":") {
				return true
			}
			continue
		}
		if entry == pattern {
			return true
		}
	}
	return false
}
