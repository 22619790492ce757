// Package fetch stages remote input files under a local data
// directory, downloading and decompressing them once per run setup.
package fetch

import (
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultDirName is the per-user staging directory under $HOME.
const DefaultDirName = ".ortho-gaf"

// Stager downloads and stages input files, one subdirectory per key.
type Stager struct {
	root   string
	client *http.Client
	logger *zap.Logger
}

// NewStager creates a stager rooted at dir. An empty dir resolves to
// ~/.ortho-gaf.
func NewStager(dir string) (*Stager, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("determine home directory: %w", err)
		}
		dir = filepath.Join(home, DefaultDirName)
	}
	return &Stager{
		root: dir,
		client: &http.Client{
			Timeout: 30 * time.Minute, // large annotation dumps
		},
		logger: zap.NewNop(),
	}, nil
}

// SetLogger sets the logger for download progress messages.
func (s *Stager) SetLogger(l *zap.Logger) {
	s.logger = l
}

// Root returns the staging root directory.
func (s *Stager) Root() string {
	return s.root
}

// EnsureGunzip downloads url into the key's subdirectory if not
// already present and decompresses .gz payloads. Returns the path of
// the staged, uncompressed file. Existing files are reused, so repeat
// runs skip the network entirely.
func (s *Stager) EnsureGunzip(key, url string) (string, error) {
	dir := filepath.Join(s.root, key)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create staging directory: %w", err)
	}

	base := filepath.Base(url)
	finalName := strings.TrimSuffix(base, ".gz")
	finalPath := filepath.Join(dir, finalName)

	if _, err := os.Stat(finalPath); err == nil {
		s.logger.Debug("staged file exists, skipping download",
			zap.String("key", key),
			zap.String("path", finalPath))
		return finalPath, nil
	}

	rawPath := filepath.Join(dir, base)
	if _, err := os.Stat(rawPath); err != nil {
		if err := s.download(url, rawPath); err != nil {
			return "", err
		}
	}

	if !strings.HasSuffix(base, ".gz") {
		return rawPath, nil
	}

	if err := gunzip(rawPath, finalPath); err != nil {
		return "", err
	}
	return finalPath, nil
}

// download fetches url to destPath via a temp file so interrupted
// transfers leave nothing behind.
func (s *Stager) download(url, destPath string) error {
	s.logger.Info("downloading", zap.String("url", url))
	start := time.Now()

	resp, err := s.client.Get(url)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("http error fetching %s: %s", url, resp.Status)
	}

	tmpPath := destPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	n, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("download failed: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename file: %w", err)
	}

	s.logger.Info("download complete",
		zap.String("path", destPath),
		zap.String("size", formatSize(n)),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func gunzip(srcPath, destPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open compressed file: %w", err)
	}
	defer src.Close()

	gz, err := gzip.NewReader(src)
	if err != nil {
		return fmt.Errorf("open gzip reader: %w", err)
	}
	defer gz.Close()

	tmpPath := destPath + ".tmp"
	dest, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	_, err = io.Copy(dest, gz)
	if cerr := dest.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("decompress failed: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename file: %w", err)
	}
	return nil
}

// formatSize formats bytes as human-readable size.
func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
