package exporter

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

type memoryBackend struct {
	files map[string][]byte
}

func (m *memoryBackend) Root() string { return "memory" }

func (m *memoryBackend) StoreFile(name string, fp io.Reader) error {
	data, err := io.ReadAll(fp)
	if err != nil {
		return err
	}
	m.files[name] = data
	return nil
}

func (m *memoryBackend) Close() error { return nil }

func TestNewExporter(t *testing.T) {
	backend := &memoryBackend{files: make(map[string][]byte)}
	Register("fs", func(location string) (ExporterBackend, error) {
		return backend, nil
	})
	require.Contains(t, Backends(), "fs")

	exp, err := NewExporter("/tmp/somewhere", nil)
	require.NoError(t, err)
	require.Equal(t, "memory", exp.Root())

	require.NoError(t, exp.StoreFile("x", bytes.NewReader([]byte("data"))))
	require.Equal(t, []byte("data"), backend.files["x"])

	_, err = NewExporter("ftp://host/dir", nil)
	require.Error(t, err)

	_, err = NewExporter("s3://host/bucket", nil)
	require.Error(t, err)
}
