package catalogsource

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/yanqian/skinfit/internal/domain/catalog"
)

// FileSource reads the catalog from the local filesystem.
type FileSource struct {
	path string
}

// NewFileSource constructs a source for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Open implements catalog.Source.
func (s *FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	return f, nil
}

// Describe implements catalog.Source.
func (s *FileSource) Describe() string {
	return "file:" + s.path
}

var _ catalog.Source = (*FileSource)(nil)
