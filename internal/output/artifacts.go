package output

import (
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/inodb/ortho-gaf/internal/assoc"
)

// ArtifactNames returns the bulk and sample file names for a provider
// pair, e.g. ("mgi-rgd-ortho.gaf.gz", "mgi-rgd-ortho.gaf").
func ArtifactNames(targetProvider, sourceProvider string) (bulk, sample string) {
	base := strings.ToLower(targetProvider) + "-" + strings.ToLower(sourceProvider) + "-ortho.gaf"
	return base + ".gz", base
}

// WriteArtifacts writes the translated set twice under dir: a gzipped
// bulk file and an uncompressed sample, identical record ordering.
// Each file is written to a temp path and renamed into place, so a
// failed run leaves no partial artifact behind.
func WriteArtifacts(dir, targetProvider, sourceProvider string, anns []*assoc.Association, header []string) (bulkPath, samplePath string, err error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("create output directory: %w", err)
	}

	bulkName, sampleName := ArtifactNames(targetProvider, sourceProvider)
	bulkPath = filepath.Join(dir, bulkName)
	samplePath = filepath.Join(dir, sampleName)

	if err := writeFile(bulkPath, true, anns, header); err != nil {
		return "", "", err
	}
	if err := writeFile(samplePath, false, anns, header); err != nil {
		return "", "", err
	}

	return bulkPath, samplePath, nil
}

// WriteGAF writes the translated set to a single uncompressed file.
func WriteGAF(path string, anns []*assoc.Association, header []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return writeFile(path, false, anns, header)
}

func writeFile(path string, compressed bool, anns []*assoc.Association, header []string) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	err = func() error {
		var gz *gzip.Writer
		w := NewGAFWriter(f)
		if compressed {
			gz = gzip.NewWriter(f)
			w = NewGAFWriter(gz)
		}

		if err := w.WriteHeader(header...); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		for _, a := range anns {
			if err := w.Write(a); err != nil {
				return fmt.Errorf("write association: %w", err)
			}
		}
		if err := w.Flush(); err != nil {
			return fmt.Errorf("flush output: %w", err)
		}
		if gz != nil {
			if err := gz.Close(); err != nil {
				return fmt.Errorf("close gzip stream: %w", err)
			}
		}
		return nil
	}()

	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename output file: %w", err)
	}
	return nil
}
