package gpi

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/inodb/ortho-gaf/internal/assoc"
)

// GPI 1.2 column layout.
const (
	colDB       = 0
	colObjectID = 1
	colSymbol   = 2
	colName     = 3
	colSynonyms = 4
	colType     = 5
	colTaxon    = 6
	colParent   = 7
	colXrefs    = 8

	minColumns = 9
)

// Load reads a GPI 1.2 file (plain or gzipped) into a GeneIndex.
// Identifiers are normalized so "MGI\tMGI:95773" keys as "MGI:95773".
func Load(path string) (GeneIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gpi file: %w", err)
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

	return Parse(reader)
}

// Parse reads GPI 1.2 content into a GeneIndex.
func Parse(r io.Reader) (GeneIndex, error) {
	idx := make(GeneIndex)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < minColumns {
			return nil, fmt.Errorf("gpi line %d: expected at least %d columns, got %d", lineNumber, minColumns, len(fields))
		}

		id := assoc.NormalizeDoublePrefix(fields[colDB] + ":" + fields[colObjectID])
		idx[id] = &GeneRecord{
			Label:    fields[colSymbol],
			FullName: fields[colName],
			Types:    splitNonEmpty(fields[colType]),
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read gpi: %w", err)
	}

	return idx, nil
}

// LoadXrefs reads a GPI 1.2 file and returns the cross-reference map
// for one xref namespace: xref curie string -> gene curie string. Used
// by the cross-reference transfer variant, where e.g. UniProtKB protein
// ids resolve to the genes that encode them.
func LoadXrefs(path, namespace string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gpi file: %w", err)
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

	return ParseXrefs(reader, namespace)
}

// ParseXrefs reads GPI 1.2 content into a cross-reference map.
func ParseXrefs(r io.Reader, namespace string) (map[string]string, error) {
	xrefs := make(map[string]string)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < minColumns {
			return nil, fmt.Errorf("gpi line %d: expected at least %d columns, got %d", lineNumber, minColumns, len(fields))
		}

		geneID := assoc.NormalizeDoublePrefix(fields[colDB] + ":" + fields[colObjectID])
		for _, xref := range splitNonEmpty(fields[colXrefs]) {
			if strings.HasPrefix(xref, namespace+":") {
				xrefs[xref] = geneID
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read gpi: %w", err)
	}

	return xrefs, nil
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
