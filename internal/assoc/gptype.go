package assoc

import "strings"

// Gene-product type labels from GPI files mapped to ontology terms.
// GAF 2.2 column 12 carries the label; the typed model carries the curie.

// DefaultGeneProductType is the fallback for unrecognized type labels,
// CHEBI "information biomacromolecule".
var DefaultGeneProductType = Curie{Namespace: "CHEBI", Identity: "33695"}

var typeLabelToCurie = map[string]Curie{
	"gene":                {Namespace: "SO", Identity: "0000704"},
	"protein_coding_gene": {Namespace: "SO", Identity: "0001217"},
	"ncrna_gene":          {Namespace: "SO", Identity: "0001263"},
	"pseudogene":          {Namespace: "SO", Identity: "0000336"},
	"protein":             {Namespace: "PR", Identity: "000000001"},
	"transcript":          {Namespace: "SO", Identity: "0000673"},
	"mrna":                {Namespace: "SO", Identity: "0000234"},
	"ncrna":               {Namespace: "SO", Identity: "0000655"},
	"rrna":                {Namespace: "SO", Identity: "0000252"},
	"trna":                {Namespace: "SO", Identity: "0000253"},
	"snrna":               {Namespace: "SO", Identity: "0000274"},
	"snorna":              {Namespace: "SO", Identity: "0000275"},
	"mirna":               {Namespace: "SO", Identity: "0000276"},
	"lnc_rna":             {Namespace: "SO", Identity: "0001877"},
	"scrna":               {Namespace: "SO", Identity: "0000013"},
	"gene_product":        DefaultGeneProductType,
}

var curieToTypeLabel = func() map[Curie]string {
	m := make(map[Curie]string, len(typeLabelToCurie))
	for label, c := range typeLabelToCurie {
		m[c] = label
	}
	m[DefaultGeneProductType] = "gene_product"
	return m
}()

// TypeLabelCurie maps a gene-product type label to its ontology term.
// Labels are matched case-insensitively with spaces treated as
// underscores; unknown labels map to DefaultGeneProductType.
func TypeLabelCurie(label string) Curie {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(label), " ", "_"))
	if c, ok := typeLabelToCurie[key]; ok {
		return c
	}
	return DefaultGeneProductType
}

// TypeLabel renders a gene-product type term back to its GPI label.
func TypeLabel(c Curie) string {
	if label, ok := curieToTypeLabel[c]; ok {
		return label
	}
	return "gene_product"
}
