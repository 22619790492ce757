// Package ortho builds the gene correspondence map from Alliance
// combined-orthology files.
package ortho

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/inodb/ortho-gaf/internal/assoc"
	"github.com/inodb/ortho-gaf/internal/gpi"
)

// Pair is one ortholog assertion from the Alliance file. Gene1 belongs
// to the first species of the pairing, Gene2 to the second.
type Pair struct {
	Gene1ID             string `json:"Gene1ID"`
	Gene1SpeciesTaxonID string `json:"Gene1SpeciesTaxonID"`
	Gene2ID             string `json:"Gene2ID"`
	Gene2SpeciesTaxonID string `json:"Gene2SpeciesTaxonID"`
}

type document struct {
	Data []Pair `json:"data"`
}

// Map is the gene correspondence map: source gene curie string to
// target gene local identity. Forward lookups only; duplicate source
// keys resolve last-write-wins.
type Map map[string]string

// Load reads an Alliance orthology JSON file (plain or gzipped) and
// keeps the pairs where Gene1 is in the target taxon and Gene2 in the
// source taxon.
func Load(path string, targetTaxon, sourceTaxon assoc.Curie) (Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open orthology file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return Parse(reader, targetTaxon, sourceTaxon)
}

// Parse decodes orthology JSON content into a correspondence map.
func Parse(r io.Reader, targetTaxon, sourceTaxon assoc.Curie) (Map, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode orthology json: %w", err)
	}

	target := targetTaxon.String()
	source := sourceTaxon.String()

	m := make(Map)
	for _, pair := range doc.Data {
		if pair.Gene1SpeciesTaxonID != target || pair.Gene2SpeciesTaxonID != source {
			continue
		}
		m[pair.Gene2ID] = localIdentity(pair.Gene1ID)
	}

	return m, nil
}

// FilterByGenes returns a copy restricted to entries whose target gene
// (under the given namespace) is present in the metadata index. Keeps
// the correspondence map and the metadata store on a shared key space.
func (m Map) FilterByGenes(idx gpi.GeneIndex, targetNamespace string) Map {
	out := make(Map, len(m))
	for src, identity := range m {
		if _, ok := idx.Lookup(targetNamespace + ":" + identity); ok {
			out[src] = identity
		}
	}
	return out
}

// localIdentity strips the namespace from a gene curie, normalizing
// doubled prefixes first.
func localIdentity(id string) string {
	id = assoc.NormalizeDoublePrefix(id)
	if _, rest, ok := strings.Cut(id, ":"); ok {
		return rest
	}
	return id
}
