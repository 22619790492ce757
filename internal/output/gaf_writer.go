// Package output serializes translated associations to GAF 2.2 files.
package output

import (
	"bufio"
	"io"
	"strings"

	"github.com/inodb/ortho-gaf/internal/assoc"
)

// GAFWriter writes associations in GAF 2.2 tab-separated format.
type GAFWriter struct {
	w *bufio.Writer
}

// NewGAFWriter creates a writer over w.
func NewGAFWriter(w io.Writer) *GAFWriter {
	return &GAFWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the gaf-version line followed by any extra
// metadata comment lines.
func (g *GAFWriter) WriteHeader(extra ...string) error {
	if _, err := g.w.WriteString(assoc.GAFVersionHeader + "\n"); err != nil {
		return err
	}
	for _, line := range extra {
		if !strings.HasPrefix(line, "!") {
			line = "!" + line
		}
		if _, err := g.w.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// Write writes a single association as one GAF line.
func (g *GAFWriter) Write(a *assoc.Association) error {
	_, err := g.w.WriteString(strings.Join(a.GAF22Row(), "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (g *GAFWriter) Flush() error {
	return g.w.Flush()
}
