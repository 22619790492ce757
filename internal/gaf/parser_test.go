package gaf

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/ortho-gaf/internal/assoc"
)

// gafLine builds a 17-column GAF 2.2 line from the given overrides.
func gafLine(overrides map[int]string) string {
	fields := []string{
		"RGD", "1234", "Abc1", "enables", "GO:0008150", "PMID:1", "ISS", "",
		"P", "abc protein 1", "abc-1|Abc1l", "gene", "taxon:10116", "20240101",
		"RGD", "", "",
	}
	for i, v := range overrides {
		fields[i] = v
	}
	return strings.Join(fields, "\t")
}

func TestParserNext(t *testing.T) {
	content := strings.Join([]string{
		"!gaf-version: 2.2",
		"!generated-by: RGD",
		gafLine(nil),
		gafLine(map[int]string{1: "5678", 6: "ISO", 7: "UniProtKB:P12345|RGD:1,RGD:2"}),
	}, "\n") + "\n"

	p := NewParserFromReader(strings.NewReader(content))

	first, err := p.Next()
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, assoc.MustParseCurie("RGD:1234"), first.Subject.ID)
	assert.Equal(t, assoc.MustParseCurie("NCBITaxon:10116"), first.Subject.Taxon)
	assert.Equal(t, assoc.MustParseCurie("NCBITaxon:10116"), first.Term.Taxon)
	assert.Equal(t, "Abc1", first.Subject.Label)
	assert.Equal(t, "abc protein 1", first.Subject.FullName)
	assert.Equal(t, []string{"abc-1", "Abc1l"}, first.Subject.Synonyms)
	assert.Equal(t, []string{"enables"}, first.Qualifiers)
	assert.Equal(t, assoc.MustParseCurie("GO:0008150"), first.Term.ID)
	assert.Equal(t, assoc.MustParseCurie("ECO:0000250"), first.Evidence.Type)
	assert.Equal(t, []assoc.Curie{assoc.MustParseCurie("PMID:1")}, first.Evidence.HasSupportingReference)
	assert.Empty(t, first.Evidence.WithSupportFrom)
	assert.Equal(t, "P", first.Aspect)
	assert.Equal(t, "20240101", first.Date)
	assert.Equal(t, "RGD", first.ProvidedBy)

	second, err := p.Next()
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, assoc.ECOSequenceOrthology, second.Evidence.Type)
	require.Len(t, second.Evidence.WithSupportFrom, 2)
	assert.Equal(t, "UniProtKB:P12345", second.Evidence.WithSupportFrom[0].String())
	assert.Equal(t, "RGD:1,RGD:2", second.Evidence.WithSupportFrom[1].String())

	done, err := p.Next()
	require.NoError(t, err)
	assert.Nil(t, done)
}

func TestParserDoublePrefixSubject(t *testing.T) {
	line := gafLine(map[int]string{0: "MGI", 1: "MGI:95773"})
	p := NewParserFromReader(strings.NewReader(line + "\n"))

	a, err := p.Next()
	require.NoError(t, err)
	assert.Equal(t, assoc.MustParseCurie("MGI:95773"), a.Subject.ID)
}

func TestParserInteractingTaxon(t *testing.T) {
	line := gafLine(map[int]string{12: "taxon:10116|taxon:5664"})
	p := NewParserFromReader(strings.NewReader(line + "\n"))

	a, err := p.Next()
	require.NoError(t, err)
	assert.Equal(t, "10116", a.Subject.Taxon.Identity)
	assert.Equal(t, "5664", a.Term.Taxon.Identity)
}

func TestParserMissingFinalNewline(t *testing.T) {
	p := NewParserFromReader(strings.NewReader(gafLine(nil)))

	a, err := p.Next()
	require.NoError(t, err)
	require.NotNil(t, a)

	a, err = p.Next()
	require.NoError(t, err)
	assert.Nil(t, a)
}

func TestParserErrors(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		message string
	}{
		{"too few columns", "RGD\t1234\tAbc1", "columns"},
		{"bad evidence code", gafLine(map[int]string{6: "ZZZ"}), "evidence code"},
		{"bad term id", gafLine(map[int]string{4: "notacurie"}), "curie"},
		{"bad taxon", gafLine(map[int]string{12: "taxon:"}), "taxon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParserFromReader(strings.NewReader(tt.line + "\n"))

			_, err := p.Next()
			require.Error(t, err)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, 1, perr.Line)
			assert.Contains(t, perr.Message, tt.message)
		})
	}
}

func TestParserGzipFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.gaf.gz")

	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte("!gaf-version: 2.2\n" + gafLine(nil) + "\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	p, err := NewParser(path)
	require.NoError(t, err)
	defer p.Close()

	a, err := p.Next()
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, assoc.MustParseCurie("RGD:1234"), a.Subject.ID)
}

func TestParserPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.gaf")
	require.NoError(t, os.WriteFile(path, []byte(gafLine(nil)+"\n"), 0644))

	p, err := NewParser(path)
	require.NoError(t, err)
	defer p.Close()

	a, err := p.Next()
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, 1, p.LineNumber())
}

func TestFilterEligible(t *testing.T) {
	base := func() *assoc.Association {
		p := NewParserFromReader(strings.NewReader(gafLine(nil) + "\n"))
		a, err := p.Next()
		require.NoError(t, err)
		return a
	}

	filter := FilterOptions{
		Namespaces:                []string{"RGD", "UniProtKB"},
		ExcludeProvidedBy:         "MGI",
		ExcludeExperimental:       true,
		RequireReferenceNamespace: "PMID",
	}

	t.Run("accepts eligible record", func(t *testing.T) {
		assert.True(t, filter.Eligible(base()))
	})

	t.Run("rejects foreign namespace", func(t *testing.T) {
		a := base()
		a.Subject.ID = assoc.MustParseCurie("FB:0001")
		assert.False(t, filter.Eligible(a))
	})

	t.Run("rejects experimental evidence", func(t *testing.T) {
		a := base()
		a.Evidence.Type, _ = assoc.EvidenceCodeFor("IDA")
		assert.False(t, filter.Eligible(a))
	})

	t.Run("rejects target species' own records", func(t *testing.T) {
		a := base()
		a.ProvidedBy = "MGI"
		assert.False(t, filter.Eligible(a))
	})

	t.Run("rejects records without a PMID reference", func(t *testing.T) {
		a := base()
		a.Evidence.HasSupportingReference = []assoc.Curie{assoc.MustParseCurie("GO_REF:0000002")}
		assert.False(t, filter.Eligible(a))
	})

	t.Run("zero filter accepts everything", func(t *testing.T) {
		a := base()
		a.ProvidedBy = "MGI"
		assert.True(t, FilterOptions{}.Eligible(a))
	})
}

func TestParserAppliesFilter(t *testing.T) {
	content := strings.Join([]string{
		gafLine(map[int]string{1: "1", 6: "IDA"}), // experimental, skipped
		gafLine(map[int]string{1: "2"}),
		gafLine(map[int]string{1: "3", 14: "MGI"}), // tail eating, skipped
		gafLine(map[int]string{1: "4"}),
	}, "\n") + "\n"

	p := NewParserFromReader(strings.NewReader(content))
	p.SetFilter(FilterOptions{
		Namespaces:                []string{"RGD"},
		ExcludeProvidedBy:         "MGI",
		ExcludeExperimental:       true,
		RequireReferenceNamespace: "PMID",
	})

	var ids []string
	for {
		a, err := p.Next()
		require.NoError(t, err)
		if a == nil {
			break
		}
		ids = append(ids, a.Subject.ID.Identity)
	}

	assert.Equal(t, []string{"2", "4"}, ids)
}
