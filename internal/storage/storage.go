package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
)

// Storage reads the dashboard build output and the AI analysis artifact from disk.
// Both are produced by other tools; Storage never writes.
type Storage struct {
	root         string
	indexFile    string
	analysisPath string
}

func NewStorage(root, indexFile, analysisPath string) (*Storage, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dashboard directory: %w", err)
	}

	absAnalysis, err := filepath.Abs(analysisPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve analysis path: %w", err)
	}

	return &Storage{
		root:         absRoot,
		indexFile:    indexFile,
		analysisPath: absAnalysis,
	}, nil
}

// Root returns the absolute dashboard directory
func (s *Storage) Root() string {
	return s.root
}

// AnalysisPath returns the absolute location of the analysis artifact
func (s *Storage) AnalysisPath() string {
	return s.analysisPath
}

// IndexPath returns the absolute location of the SPA entry file
func (s *Storage) IndexPath() string {
	return filepath.Join(s.root, s.indexFile)
}

// AssetPath maps a URL path onto the dashboard directory. "/" maps to the
// index file and ".." segments are resolved before joining, so the result
// always stays under the root.
func (s *Storage) AssetPath(urlPath string) string {
	if urlPath == "/" {
		return s.IndexPath()
	}
	clean := path.Clean("/" + urlPath)
	return filepath.Join(s.root, filepath.FromSlash(clean))
}

// ReadAsset reads the file a URL path maps to
func (s *Storage) ReadAsset(ctx context.Context, urlPath string) ([]byte, error) {
	return read(ctx, s.AssetPath(urlPath))
}

// ReadIndex reads the SPA entry file
func (s *Storage) ReadIndex(ctx context.Context) ([]byte, error) {
	return read(ctx, s.IndexPath())
}

// ReadAnalysis reads the AI analysis artifact
func (s *Storage) ReadAnalysis(ctx context.Context) ([]byte, error) {
	return read(ctx, s.analysisPath)
}

// read returns the *fs.PathError from os.ReadFile untouched so callers can
// tell a missing file from any other failure.
func read(ctx context.Context, name string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		return os.ReadFile(name)
	}
}
