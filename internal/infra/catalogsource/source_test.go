package catalogsource

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileSourceOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte("product_name,brand\nGel,Acme\n"), 0o600))

	src := NewFileSource(path)
	rc, err := src.Open(context.Background())
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Contains(t, string(data), "Gel,Acme")
	require.Equal(t, "file:"+path, src.Describe())
}

func TestFileSourceMissing(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "missing.csv")).Open(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSanitizeEndpoint(t *testing.T) {
	require.Equal(t, "abc.r2.cloudflarestorage.com", sanitizeEndpoint(" https://abc.r2.cloudflarestorage.com/bucket "))
	require.Equal(t, "localhost:9000", sanitizeEndpoint("http://localhost:9000"))
	require.Equal(t, "", sanitizeEndpoint(""))
}

func TestNewObjectSourceDescribe(t *testing.T) {
	src, err := NewObjectSource(ObjectOptions{
		Endpoint: "http://localhost:9000",
		Bucket:   "catalogs",
		Key:      "skincare.csv",
		Region:   "auto",
	}, nil)
	require.NoError(t, err)
	require.Equal(t, "object:catalogs/skincare.csv", src.Describe())
}
