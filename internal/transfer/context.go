// Package transfer translates annotations from a source species to a
// target species over a precomputed gene correspondence map.
package transfer

import "github.com/inodb/ortho-gaf/internal/assoc"

// Providers maps taxon curie strings to the organization that curates
// that species' annotations.
type Providers map[string]string

// DefaultProviders returns the attribution labels for the species this
// pipeline is normally run against.
func DefaultProviders() Providers {
	return Providers{
		"NCBITaxon:10090": "MGI",
		"NCBITaxon:10116": "RGD",
		"NCBITaxon:9606":  "UniProtKB",
	}
}

// For returns the attribution label for a taxon, or "" when unknown.
func (p Providers) For(taxon assoc.Curie) string {
	return p[taxon.String()]
}

// Context holds the per-run configuration of a translation. It is
// assembled by the driver and read-only for the duration of a run.
type Context struct {
	TargetTaxon assoc.Curie
	SourceTaxon assoc.Curie

	// Reference identifies the evidentiary basis of the transfer,
	// e.g. GO_REF:0000096 for Alliance ortholog-based transfer.
	Reference assoc.Curie

	// EvidenceCode is the ECO term stamped on every transferred
	// record, e.g. ECO:0000266 (inferred from sequence orthology).
	EvidenceCode assoc.Curie

	// TargetNamespace is the gene database namespace rewritten
	// subjects live in, e.g. "MGI".
	TargetNamespace string

	// SourceAttribution/TargetAttribution drive the provenance
	// rewrite: provided_by equal to the source attribution becomes
	// the target attribution; any other value passes through.
	SourceAttribution string
	TargetAttribution string
}

// ContextForTaxa builds a Context with attribution labels resolved
// from the provider table.
func ContextForTaxa(target, source assoc.Curie, providers Providers, reference, evidenceCode assoc.Curie) Context {
	return Context{
		TargetTaxon:       target,
		SourceTaxon:       source,
		Reference:         reference,
		EvidenceCode:      evidenceCode,
		TargetNamespace:   providers.For(target),
		SourceAttribution: providers.For(source),
		TargetAttribution: providers.For(target),
	}
}
