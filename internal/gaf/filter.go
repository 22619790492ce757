package gaf

import "github.com/inodb/ortho-gaf/internal/assoc"

// FilterOptions restricts a parsed annotation stream to the records
// eligible for cross-species transfer. The zero value accepts
// everything.
type FilterOptions struct {
	// Namespaces accepted for the subject id. Empty means any.
	Namespaces []string

	// ExcludeProvidedBy drops records already attributed to the target
	// species' own curators, so transferred records never feed back.
	ExcludeProvidedBy string

	// ExcludeExperimental drops records with direct experimental
	// evidence; those stay with the species they were curated in.
	ExcludeExperimental bool

	// RequireReferenceNamespace keeps only records citing at least one
	// reference in this namespace (typically "PMID").
	RequireReferenceNamespace string
}

// Eligible reports whether the association passes the filter.
func (f FilterOptions) Eligible(a *assoc.Association) bool {
	if len(f.Namespaces) > 0 {
		found := false
		for _, ns := range f.Namespaces {
			if a.Subject.ID.Namespace == ns {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.ExcludeExperimental && assoc.ExperimentalEvidence()[a.Evidence.Type] {
		return false
	}

	if f.ExcludeProvidedBy != "" && a.ProvidedBy == f.ExcludeProvidedBy {
		return false
	}

	if f.RequireReferenceNamespace != "" {
		found := false
		for _, ref := range a.Evidence.HasSupportingReference {
			if ref.Namespace == f.RequireReferenceNamespace {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}
