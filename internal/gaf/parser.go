// Package gaf provides streaming GAF 2.x file parsing.
package gaf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/inodb/ortho-gaf/internal/assoc"
)

// minColumns is the shortest GAF line we accept. GAF 2.2 has 17 columns
// but column 16 and 17 are optional in older producers.
const minColumns = 15

// ParseError reports a malformed GAF line.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("gaf parse error at line %d: %s", e.Line, e.Message)
}

// Parser reads associations from a GAF file one line at a time.
// Supports both plain and gzipped (.gaf.gz) files.
type Parser struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
	filter     *FilterOptions
}

// NewParser creates a parser for the given file path. Use "-" for stdin.
func NewParser(path string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gaf file: %w", err)
	}

	p := &Parser{file: file}

	// Check for gzip magic bytes, then rewind.
	buf := make([]byte, 2)
	if _, err := file.Read(buf); err != nil && err != io.EOF {
		file.Close()
		return nil, fmt.Errorf("read gaf header: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek gaf file: %w", err)
	}

	if buf[0] == 0x1f && buf[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.reader = bufio.NewReader(p.gzipReader)
	} else {
		p.reader = bufio.NewReader(file)
	}

	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader.
func NewParserFromReader(r io.Reader) *Parser {
	return &Parser{reader: bufio.NewReader(r)}
}

// SetFilter installs an eligibility filter; lines it rejects are
// skipped silently rather than returned.
func (p *Parser) SetFilter(f FilterOptions) {
	p.filter = &f
}

// Next reads the next (eligible) association.
// Returns nil, nil when there are no more lines.
func (p *Parser) Next() (*assoc.Association, error) {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read gaf line: %w", err)
		}
		atEOF := err == io.EOF

		line = strings.TrimRight(line, "\r\n")
		if line != "" {
			p.lineNumber++
			if !strings.HasPrefix(line, "!") {
				a, perr := p.parseLine(line)
				if perr != nil {
					return nil, perr
				}
				if p.filter == nil || p.filter.Eligible(a) {
					return a, nil
				}
			}
		}

		if atEOF {
			return nil, nil
		}
	}
}

// Close closes the parser and releases resources.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

func (p *Parser) parseLine(line string) (*assoc.Association, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < minColumns {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("expected at least %d columns, got %d", minColumns, len(fields)),
		}
	}

	subjectID, err := assoc.ParseCurie(assoc.NormalizeDoublePrefix(fields[0] + ":" + fields[1]))
	if err != nil {
		return nil, &ParseError{Line: p.lineNumber, Message: err.Error()}
	}
	termID, err := assoc.ParseCurie(fields[4])
	if err != nil {
		return nil, &ParseError{Line: p.lineNumber, Message: err.Error()}
	}
	evidence, ok := assoc.EvidenceCodeFor(fields[6])
	if !ok {
		return nil, &ParseError{Line: p.lineNumber, Message: fmt.Sprintf("unknown evidence code %q", fields[6])}
	}
	subjectTaxon, objectTaxon, err := parseTaxon(fields[12])
	if err != nil {
		return nil, &ParseError{Line: p.lineNumber, Message: err.Error()}
	}

	a := &assoc.Association{
		Subject: assoc.Subject{
			ID:       subjectID,
			Taxon:    subjectTaxon,
			Label:    fields[2],
			FullName: fields[9],
			Synonyms: splitNonEmpty(fields[10], "|"),
			Type:     []assoc.Curie{assoc.TypeLabelCurie(fields[11])},
		},
		Qualifiers: splitNonEmpty(fields[3], "|"),
		Term:       assoc.Term{ID: termID, Taxon: objectTaxon},
		Evidence: assoc.Evidence{
			Type:                   evidence,
			HasSupportingReference: parseCurieList(fields[5]),
			WithSupportFrom:        parseWithFrom(fields[7]),
		},
		Aspect:     fields[8],
		Date:       fields[13],
		ProvidedBy: fields[14],
	}
	if len(fields) > 15 {
		a.Extensions = fields[15]
	}
	if len(fields) > 16 {
		a.GeneProductFormID = fields[16]
	}

	return a, nil
}

// parseTaxon splits GAF column 13 ("taxon:10116" or
// "taxon:10116|taxon:10090") into subject and object taxa. The object
// taxon defaults to the subject taxon when no interacting taxon is given.
func parseTaxon(field string) (subject, object assoc.Curie, err error) {
	parts := strings.Split(field, "|")
	ids := make([]assoc.Curie, 0, len(parts))
	for _, part := range parts {
		id := strings.TrimPrefix(strings.TrimSpace(part), "taxon:")
		if id == "" {
			continue
		}
		ids = append(ids, assoc.Curie{Namespace: "NCBITaxon", Identity: id})
	}
	if len(ids) == 0 {
		return assoc.Curie{}, assoc.Curie{}, fmt.Errorf("malformed taxon column %q", field)
	}
	subject = ids[0]
	object = ids[0]
	if len(ids) > 1 {
		object = ids[1]
	}
	return subject, object, nil
}

func parseCurieList(field string) []assoc.Curie {
	var out []assoc.Curie
	for _, part := range splitNonEmpty(field, "|") {
		if c, err := assoc.ParseCurie(part); err == nil {
			out = append(out, c)
		}
	}
	return out
}

func parseWithFrom(field string) []assoc.ConjunctiveSet {
	var out []assoc.ConjunctiveSet
	for _, group := range splitNonEmpty(field, "|") {
		cs := assoc.ConjunctiveSet{Elements: parseCurieList(strings.ReplaceAll(group, ",", "|"))}
		if len(cs.Elements) > 0 {
			out = append(out, cs)
		}
	}
	return out
}

func splitNonEmpty(s, sep string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
