package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreSaveOpenRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	name, err := store.Save("reports/out.csv", []byte("a,b\n1,2\n"))
	require.NoError(t, err)
	require.Equal(t, "reports/out.csv", name)

	f, err := store.Open(name)
	require.NoError(t, err)
	defer f.Close()

	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(content))
}

func TestFileStoreConfinesNamesToBaseDir(t *testing.T) {
	parent := t.TempDir()
	base := filepath.Join(parent, "exports")
	store, err := NewFileStore(base)
	require.NoError(t, err)

	secret := filepath.Join(parent, "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("nope"), 0o644))

	_, err = store.Open("../secret.txt")
	require.Error(t, err, "traversal segments resolve inside the base dir")

	_, err = store.Open(secret)
	require.Error(t, err, "absolute names resolve inside the base dir")

	for _, name := range []string{"../secret.txt", secret, "a/../../secret.txt"} {
		path := store.Path(name)
		assert.True(t, strings.HasPrefix(path, base+string(filepath.Separator)),
			"%q resolved outside the base dir: %s", name, path)
	}
}
