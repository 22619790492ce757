package output

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/ortho-gaf/internal/assoc"
)

func translatedAssociation() *assoc.Association {
	return &assoc.Association{
		Subject: assoc.Subject{
			ID:       assoc.MustParseCurie("MGI:5678"),
			Taxon:    assoc.MustParseCurie("NCBITaxon:10090"),
			Label:    "Abc1",
			FullName: "abc protein 1",
			Type:     []assoc.Curie{assoc.TypeLabelCurie("gene")},
		},
		Qualifiers: []string{"enables"},
		Term: assoc.Term{
			ID:    assoc.MustParseCurie("GO:0008150"),
			Taxon: assoc.MustParseCurie("NCBITaxon:10090"),
		},
		Evidence: assoc.Evidence{
			Type:                   assoc.ECOSequenceOrthology,
			HasSupportingReference: []assoc.Curie{assoc.MustParseCurie("GO_REF:0000096")},
			WithSupportFrom: []assoc.ConjunctiveSet{
				{Elements: []assoc.Curie{assoc.MustParseCurie("RGD:1234")}},
			},
		},
		Aspect:     "P",
		Date:       "20240101",
		ProvidedBy: "MGI",
	}
}

func TestGAFWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewGAFWriter(&buf)

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Write(translatedAssociation()))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "!gaf-version: 2.2", lines[0])

	fields := strings.Split(lines[1], "\t")
	require.Len(t, fields, 17)
	assert.Equal(t, "MGI", fields[0])
	assert.Equal(t, "5678", fields[1])
	assert.Equal(t, "Abc1", fields[2])
	assert.Equal(t, "GO:0008150", fields[4])
	assert.Equal(t, "GO_REF:0000096", fields[5])
	assert.Equal(t, "ISO", fields[6])
	assert.Equal(t, "RGD:1234", fields[7])
	assert.Equal(t, "taxon:10090", fields[12])
	assert.Equal(t, "MGI", fields[14])
}

func TestGAFWriterExtraHeaderLines(t *testing.T) {
	var buf bytes.Buffer
	w := NewGAFWriter(&buf)

	require.NoError(t, w.WriteHeader(
		"Generated by: MGI preprocess pipeline",
		"!Date Generated: 2024-01-01",
	))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "!Generated by: MGI preprocess pipeline", lines[1])
	assert.Equal(t, "!Date Generated: 2024-01-01", lines[2])
}

func TestArtifactNames(t *testing.T) {
	bulk, sample := ArtifactNames("MGI", "RGD")
	assert.Equal(t, "mgi-rgd-ortho.gaf.gz", bulk)
	assert.Equal(t, "mgi-rgd-ortho.gaf", sample)
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	anns := []*assoc.Association{translatedAssociation(), translatedAssociation()}

	bulk, sample, err := WriteArtifacts(dir, "MGI", "RGD", anns, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mgi-rgd-ortho.gaf.gz"), bulk)
	assert.Equal(t, filepath.Join(dir, "mgi-rgd-ortho.gaf"), sample)

	sampleBytes, err := os.ReadFile(sample)
	require.NoError(t, err)

	f, err := os.Open(bulk)
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	bulkBytes, err := io.ReadAll(gz)
	require.NoError(t, err)

	// Same records, same ordering, in both artifacts.
	assert.Equal(t, sampleBytes, bulkBytes)

	lines := strings.Split(strings.TrimRight(string(sampleBytes), "\n"), "\n")
	assert.Len(t, lines, 3) // header + 2 records
	assert.Equal(t, "!gaf-version: 2.2", lines[0])

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestWriteGAF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "mgi-p2g-converted.gaf")
	anns := []*assoc.Association{translatedAssociation()}

	require.NoError(t, WriteGAF(path, anns, []string{"Generated by: test"}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "!gaf-version: 2.2", lines[0])
	assert.Equal(t, "!Generated by: test", lines[1])
}

func TestWriteArtifactsEmptySet(t *testing.T) {
	dir := t.TempDir()

	_, sample, err := WriteArtifacts(dir, "MGI", "RGD", nil, nil)
	require.NoError(t, err)

	content, err := os.ReadFile(sample)
	require.NoError(t, err)
	assert.Equal(t, "!gaf-version: 2.2\n", string(content))
}
