// Package gpi parses GPI gene-product information files into a gene
// metadata index.
package gpi

// GeneRecord holds the metadata for one gene. The first entry of Types
// is the significant gene-product type label.
type GeneRecord struct {
	Label    string
	FullName string
	Types    []string
}

// FirstType returns the significant type label, or "" when none is
// recorded.
func (r *GeneRecord) FirstType() string {
	if len(r.Types) == 0 {
		return ""
	}
	return r.Types[0]
}

// GeneIndex maps gene curie strings to their metadata. Built once per
// run and treated as read-only afterwards.
type GeneIndex map[string]*GeneRecord

// Lookup returns the record for a gene id.
func (idx GeneIndex) Lookup(id string) (*GeneRecord, bool) {
	r, ok := idx[id]
	return r, ok
}

// Len returns the number of genes in the index.
func (idx GeneIndex) Len() int {
	return len(idx)
}
