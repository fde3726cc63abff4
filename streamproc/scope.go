package streamproc

import "strings"

// MainScope is the reserved display name and pattern for the empty scope
// (root execution, no subgraphs).
const MainScope = "main"

// SentinelAll enables token streaming for every namespace pattern when
// present in a TokenStreamingConfig's EnabledNamespaces.
const SentinelAll = "all"

// Scope identifies a nested execution context as an ordered sequence of
// (type, id) pairs, flattened into Components (type, id, type, id, ...).
// The empty sequence denotes the root.
type Scope struct {
	Components []string
}

// NewScope builds a Scope from a flattened (type, id, type, id, ...)
// component sequence, typically taken verbatim from runtime metadata.
func NewScope(components []string) Scope {
	if len(components) == 0 {
		return Scope{}
	}
	cp := make([]string, len(components))
	copy(cp, components)
	return Scope{Components: cp}
}

// DisplayName is the ":"-joined concatenation of all components, or "main"
// for the empty scope.
func (s Scope) DisplayName() string {
	if len(s.Components) == 0 {
		return MainScope
	}
	return strings.Join(s.Components, ":")
}

// Pattern is the ":"-joined concatenation of only the type components
// (indices 0, 2, 4, ...), or "main" for the empty scope.
func (s Scope) Pattern() string {
	if len(s.Components) == 0 {
		return MainScope
	}
	types := make([]string, 0, (len(s.Components)+1)/2)
	for i := 0; i < len(s.Components); i += 2 {
		types = append(types, s.Components[i])
	}
	return strings.Join(types, ":")
}

// NodeName is the type component of the leaf (type, id) pair, or "" for the
// empty scope.
func (s Scope) NodeName() string {
	if len(s.Components) < 2 {
		return ""
	}
	return s.Components[len(s.Components)-2]
}

// TaskID is the id component of the leaf (type, id) pair, or "" for the
// empty scope.
func (s Scope) TaskID() string {
	if len(s.Components) == 0 {
		return ""
	}
	return s.Components[len(s.Components)-1]
}

// TaskIDOrDefault returns TaskID, falling back to "default" for the empty
// scope, matching the token accumulator's key convention.
func (s Scope) TaskIDOrDefault() string {
	if id := s.TaskID(); id != "" {
		return id
	}
	return "default"
}

// ExtractPattern splits a display name on ":" and rejoins the components at
// even indices (0, 2, ...). It is the pattern-extraction half of namespace
// pattern matching, usable directly on a display name without a Scope.
func ExtractPattern(displayName string) string {
	if displayName == "" || displayName == MainScope {
		return MainScope
	}
	parts := strings.Split(displayName, ":")
	kept := make([]string, 0, (len(parts)+1)/2)
	for i := 0; i < len(parts); i += 2 {
		kept = append(kept, parts[i])
	}
	return strings.Join(kept, ":")
}
