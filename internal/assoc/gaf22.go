package assoc

import "strings"

// GAFVersionHeader is the metadata line that opens every GAF 2.2 file.
const GAFVersionHeader = "!gaf-version: 2.2"

// gafColumns is the fixed GAF 2.2 column count.
const gafColumns = 17

// GAF22Row renders the association as the 17 GAF 2.2 columns, in order:
// DB, DB Object ID, Symbol, Qualifier, GO ID, Reference, Evidence code,
// With/From, Aspect, Name, Synonyms, Type, Taxon, Date, Assigned By,
// Annotation Extension, Gene Product Form ID.
func (a *Association) GAF22Row() []string {
	row := make([]string, gafColumns)

	row[0] = a.Subject.ID.Namespace
	row[1] = a.Subject.ID.Identity
	row[2] = a.Subject.Label
	row[3] = strings.Join(a.Qualifiers, "|")
	row[4] = a.Term.ID.String()

	refs := make([]string, len(a.Evidence.HasSupportingReference))
	for i, r := range a.Evidence.HasSupportingReference {
		refs[i] = r.String()
	}
	row[5] = strings.Join(refs, "|")
	row[6] = ShortEvidenceCode(a.Evidence.Type)

	groups := make([]string, len(a.Evidence.WithSupportFrom))
	for i, cs := range a.Evidence.WithSupportFrom {
		groups[i] = cs.String()
	}
	row[7] = strings.Join(groups, "|")

	row[8] = a.Aspect
	row[9] = a.Subject.FullName
	row[10] = strings.Join(a.Subject.Synonyms, "|")

	if len(a.Subject.Type) > 0 {
		row[11] = TypeLabel(a.Subject.Type[0])
	} else {
		row[11] = "gene_product"
	}

	row[12] = gafTaxon(a.Subject.Taxon, a.Term.Taxon)
	row[13] = a.Date
	row[14] = a.ProvidedBy
	row[15] = a.Extensions
	row[16] = a.GeneProductFormID

	return row
}

// gafTaxon formats GAF column 13. The interacting taxon is appended
// only when it differs from the subject taxon.
func gafTaxon(subject, object Curie) string {
	s := "taxon:" + subject.Identity
	if !object.IsZero() && object != subject {
		s += "|taxon:" + object.Identity
	}
	return s
}
