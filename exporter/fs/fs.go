package fs

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PlakarLabs/hoard/exporter"
)

type FSExporter struct {
	rootDir string
}

func init() {
	exporter.Register("fs", NewFSExporter)
}

func NewFSExporter(location string) (exporter.ExporterBackend, error) {
	rootDir := strings.TrimPrefix(location, "fs://")
	if err := os.MkdirAll(rootDir, 0700); err != nil {
		return nil, err
	}
	return &FSExporter{rootDir: rootDir}, nil
}

func (p *FSExporter) Root() string {
	return p.rootDir
}

// StoreFile writes under a temporary name and renames into place.
func (p *FSExporter) StoreFile(name string, fp io.Reader) error {
	pathname := filepath.Join(p.rootDir, filepath.Clean("/"+name))
	if err := os.MkdirAll(filepath.Dir(pathname), 0700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(pathname), ".export-*")
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, fp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), pathname)
}

func (p *FSExporter) Close() error {
	return nil
}
