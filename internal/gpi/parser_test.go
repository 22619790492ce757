package gpi

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGPI = `!gpi-version: 1.2
MGI	MGI:95773	Kras	KRAS proto-oncogene, GTPase	K-ras|Kras2	protein_coding_gene	taxon:10090		UniProtKB:P32883
MGI	MGI:5678	Abc1	abc protein 1		gene	taxon:10090		UniProtKB:P12345|RefSeq:NM_001
MGI	MGI:88190	Braf	Braf transforming gene	BRaf	protein_coding_gene	taxon:10090		UniProtKB:P28028
`

func TestParse(t *testing.T) {
	idx, err := Parse(strings.NewReader(sampleGPI))
	require.NoError(t, err)
	require.Equal(t, 3, idx.Len())

	rec, ok := idx.Lookup("MGI:95773")
	require.True(t, ok)
	assert.Equal(t, "Kras", rec.Label)
	assert.Equal(t, "KRAS proto-oncogene, GTPase", rec.FullName)
	assert.Equal(t, []string{"protein_coding_gene"}, rec.Types)
	assert.Equal(t, "protein_coding_gene", rec.FirstType())

	_, ok = idx.Lookup("MGI:0000000")
	assert.False(t, ok)
}

func TestParseNormalizesDoublePrefix(t *testing.T) {
	// Keys come out single-prefixed even though MGI repeats the
	// namespace in the object id column.
	idx, err := Parse(strings.NewReader(sampleGPI))
	require.NoError(t, err)

	_, ok := idx.Lookup("MGI:MGI:95773")
	assert.False(t, ok)
	_, ok = idx.Lookup("MGI:95773")
	assert.True(t, ok)
}

func TestParseShortLine(t *testing.T) {
	_, err := Parse(strings.NewReader("MGI\tMGI:1\tKras\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "columns")
}

func TestParseXrefs(t *testing.T) {
	xrefs, err := ParseXrefs(strings.NewReader(sampleGPI), "UniProtKB")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"UniProtKB:P32883": "MGI:95773",
		"UniProtKB:P12345": "MGI:5678",
		"UniProtKB:P28028": "MGI:88190",
	}, xrefs)
}

func TestParseXrefsIgnoresOtherNamespaces(t *testing.T) {
	xrefs, err := ParseXrefs(strings.NewReader(sampleGPI), "RefSeq")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"RefSeq:NM_001": "MGI:5678"}, xrefs)
}

func TestLoadGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.gpi.gz")

	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(sampleGPI))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	idx, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Len())

	xrefs, err := LoadXrefs(path, "UniProtKB")
	require.NoError(t, err)
	assert.Len(t, xrefs, 3)
}

func TestFirstTypeEmpty(t *testing.T) {
	rec := &GeneRecord{}
	assert.Equal(t, "", rec.FirstType())
}
