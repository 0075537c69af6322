package permmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadEntriesFile_YAML(t *testing.T) {
	path := writeFile(t, "mapping.yaml", `
mappings:
  - backend: getAllProducts
    frontend: viewProduct
  - backend: deleteProduct
    frontend: deleteProduct
  - backend: getProductById
    frontend: viewProduct
`)

	entries, err := LoadEntriesFile(path)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Backend: "getAllProducts", Frontend: "viewProduct"},
		{Backend: "deleteProduct", Frontend: "deleteProduct"},
		{Backend: "getProductById", Frontend: "viewProduct"},
	}, entries)
}

func TestLoadEntriesFile_JSON(t *testing.T) {
	path := writeFile(t, "mapping.json", `{"mappings": [{"backend": "createProduct", "frontend": "createProduct"}]}`)

	entries, err := LoadEntriesFile(path)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Backend: "createProduct", Frontend: "createProduct"}}, entries)
}

func TestLoadEntriesFile_EmptyPathUsesDefault(t *testing.T) {
	entries, err := LoadEntriesFile("")
	require.NoError(t, err)
	assert.Equal(t, DefaultEntries(), entries)
}

func TestLoadEntriesFile_Errors(t *testing.T) {
	_, err := LoadEntriesFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadEntriesFile(writeFile(t, "empty.yaml", "mappings: []\n"))
	assert.ErrorContains(t, err, "has no mappings")
}
