// Package assoc defines the GO association data model and its GAF 2.2
// text representation.
package assoc

import (
	"fmt"
	"strings"
)

// Curie is a namespace-prefixed compact identifier, e.g. "MGI:95773".
// Two curies are equal iff namespace and identity both match.
type Curie struct {
	Namespace string
	Identity  string
}

// ParseCurie splits a compact identifier on its first colon.
func ParseCurie(s string) (Curie, error) {
	ns, id, ok := strings.Cut(s, ":")
	if !ok || ns == "" || id == "" {
		return Curie{}, fmt.Errorf("malformed curie %q", s)
	}
	return Curie{Namespace: ns, Identity: id}, nil
}

// MustParseCurie is ParseCurie for identifiers known to be well formed.
// It panics on malformed input.
func MustParseCurie(s string) Curie {
	c, err := ParseCurie(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the curie in NS:ID form. The zero curie renders as "".
func (c Curie) String() string {
	if c.IsZero() {
		return ""
	}
	return c.Namespace + ":" + c.Identity
}

// IsZero reports whether the curie is unset.
func (c Curie) IsZero() bool {
	return c.Namespace == "" && c.Identity == ""
}

// NormalizeDoublePrefix collapses identifiers of the form "MGI:MGI:95773"
// to "MGI:95773". MGI ids carry the namespace inside the local part in
// several upstream files.
func NormalizeDoublePrefix(s string) string {
	ns, rest, ok := strings.Cut(s, ":")
	if ok && strings.HasPrefix(rest, ns+":") {
		return rest
	}
	return s
}

// ConjunctiveSet is one comma-joined group of identifiers in the GAF
// with/from column. Groups are pipe-joined in the serialized form.
type ConjunctiveSet struct {
	Elements []Curie
}

// String renders the group as a comma-joined list.
func (cs ConjunctiveSet) String() string {
	parts := make([]string, len(cs.Elements))
	for i, e := range cs.Elements {
		parts[i] = e.String()
	}
	return strings.Join(parts, ",")
}
