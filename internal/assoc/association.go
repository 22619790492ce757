package assoc

import "fmt"

// Subject is the annotated gene or gene product.
type Subject struct {
	ID       Curie
	Taxon    Curie
	Label    string   // symbol, e.g. "Kras"
	FullName string   // descriptive name
	Type     []Curie  // ontology terms for the product type, first element significant
	Synonyms []string
}

// Term is the ontology term the subject is annotated to.
type Term struct {
	ID    Curie
	Taxon Curie
}

// Evidence describes how an association was derived.
type Evidence struct {
	Type                   Curie // ECO term
	HasSupportingReference []Curie
	WithSupportFrom        []ConjunctiveSet
}

// Association is one functional assertion about a gene, the unit of a
// GAF file.
type Association struct {
	Subject           Subject
	Qualifiers        []string
	Term              Term
	Evidence          Evidence
	Aspect            string // P, F or C
	Date              string // YYYYMMDD
	ProvidedBy        string // attribution label, e.g. "RGD"
	Extensions        string // annotation extension column, kept verbatim
	GeneProductFormID string
}

// ValidationError reports an association missing a required field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid association: missing %s", e.Field)
}

// Validate checks the fields every association must carry before it can
// be translated or serialized.
func (a *Association) Validate() error {
	switch {
	case a.Subject.ID.IsZero():
		return &ValidationError{Field: "subject id"}
	case a.Term.ID.IsZero():
		return &ValidationError{Field: "term id"}
	case a.Evidence.Type.IsZero():
		return &ValidationError{Field: "evidence type"}
	}
	return nil
}

// Clone returns a deep copy. The copy shares no slices with the
// original, so mutating one never corrupts the other.
func (a *Association) Clone() *Association {
	out := *a

	if a.Subject.Type != nil {
		out.Subject.Type = make([]Curie, len(a.Subject.Type))
		copy(out.Subject.Type, a.Subject.Type)
	}
	if a.Subject.Synonyms != nil {
		out.Subject.Synonyms = make([]string, len(a.Subject.Synonyms))
		copy(out.Subject.Synonyms, a.Subject.Synonyms)
	}
	if a.Qualifiers != nil {
		out.Qualifiers = make([]string, len(a.Qualifiers))
		copy(out.Qualifiers, a.Qualifiers)
	}
	if a.Evidence.HasSupportingReference != nil {
		out.Evidence.HasSupportingReference = make([]Curie, len(a.Evidence.HasSupportingReference))
		copy(out.Evidence.HasSupportingReference, a.Evidence.HasSupportingReference)
	}
	if a.Evidence.WithSupportFrom != nil {
		out.Evidence.WithSupportFrom = make([]ConjunctiveSet, len(a.Evidence.WithSupportFrom))
		for i, cs := range a.Evidence.WithSupportFrom {
			elems := make([]Curie, len(cs.Elements))
			copy(elems, cs.Elements)
			out.Evidence.WithSupportFrom[i] = ConjunctiveSet{Elements: elems}
		}
	}

	return &out
}
