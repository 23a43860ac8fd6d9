package fs

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/PlakarLabs/hoard/compression"
	"github.com/PlakarLabs/hoard/exporter"
	"github.com/PlakarLabs/hoard/pile"
	"github.com/stretchr/testify/require"
)

func TestStoreFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "exports")
	backend, err := NewFSExporter("fs://" + root)
	require.NoError(t, err)
	require.Equal(t, root, backend.Root())

	require.NoError(t, backend.StoreFile("a/b", bytes.NewReader([]byte("hello"))))
	data, err := os.ReadFile(filepath.Join(root, "a", "b"))
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))

	// names cannot escape the root
	require.NoError(t, backend.StoreFile("../../escape", bytes.NewReader([]byte("x"))))
	_, err = os.Stat(filepath.Join(root, "escape"))
	require.NoError(t, err)
}

func TestExportPile(t *testing.T) {
	root := t.TempDir()
	exp, err := exporter.NewExporter(root, nil)
	require.NoError(t, err)
	defer exp.Close()

	store := pile.NewMemory()
	_, err = store.Append(bytes.Repeat([]byte{1, 2, 3}, 1000))
	require.NoError(t, err)

	name, err := exp.ExportPile(store, "pile", "lz4")
	require.NoError(t, err)
	require.Equal(t, "pile.lz4", name)

	fp, err := os.Open(filepath.Join(root, name))
	require.NoError(t, err)
	defer fp.Close()
	rd, err := compression.InflateStream("lz4", fp)
	require.NoError(t, err)

	restored := pile.NewMemory()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(rd)
	require.NoError(t, err)
	_, err = restored.Append(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, store.Bytes(), restored.Bytes())
}
