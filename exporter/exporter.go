package exporter

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PlakarLabs/hoard/compression"
	"github.com/PlakarLabs/hoard/logging"
	"github.com/PlakarLabs/hoard/pile"
	"github.com/PlakarLabs/hoard/profiler"
)

// ExporterBackend is a destination for exported piles.
type ExporterBackend interface {
	Root() string
	StoreFile(name string, fp io.Reader) error
	Close() error
}

type Exporter struct {
	backend ExporterBackend
	logger  *logging.Logger
}

var muBackends sync.Mutex
var backends map[string]func(location string) (ExporterBackend, error) = make(map[string]func(location string) (ExporterBackend, error))

func Register(name string, backend func(location string) (ExporterBackend, error)) {
	muBackends.Lock()
	defer muBackends.Unlock()

	if _, ok := backends[name]; ok {
		log.Fatalf("backend '%s' registered twice", name)
	}
	backends[name] = backend
}

func Backends() []string {
	muBackends.Lock()
	defer muBackends.Unlock()

	ret := make([]string, 0)
	for backendName := range backends {
		ret = append(ret, backendName)
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i] < ret[j]
	})
	return ret
}

func NewExporter(location string, logger *logging.Logger) (*Exporter, error) {
	muBackends.Lock()
	defer muBackends.Unlock()

	var backendName string
	if strings.HasPrefix(location, "s3://") {
		backendName = "s3"
	} else if strings.HasPrefix(location, "fs://") || !strings.Contains(location, "://") {
		backendName = "fs"
	} else {
		return nil, fmt.Errorf("unsupported exporter protocol")
	}

	backend, exists := backends[backendName]
	if !exists {
		return nil, fmt.Errorf("backend '%s' does not exist", backendName)
	}
	backendInstance, err := backend(location)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &Exporter{backend: backendInstance, logger: logger}, nil
}

func (exporter *Exporter) Root() string {
	return exporter.backend.Root()
}

func (exporter *Exporter) StoreFile(name string, fp io.Reader) error {
	t0 := time.Now()
	defer func() {
		profiler.RecordEvent("exporter.StoreFile", time.Since(t0))
		exporter.logger.Trace("export", "exporter.StoreFile(%s): %s", name, time.Since(t0))
	}()

	return exporter.backend.StoreFile(name, fp)
}

// ExportPile stores a compressed copy of store as name. The name gets the
// compression method appended as an extension.
func (exporter *Exporter) ExportPile(store pile.Store, name string, method string) (string, error) {
	rd, err := compression.DeflateStream(method, pile.NewReader(store))
	if err != nil {
		return "", err
	}
	filename := name + "." + method
	if err := exporter.StoreFile(filename, rd); err != nil {
		return "", err
	}
	exporter.logger.Info("exported %d bytes to %s/%s", store.Size(), exporter.Root(), filename)
	return filename, nil
}

func (exporter *Exporter) Close() error {
	t0 := time.Now()
	defer func() {
		profiler.RecordEvent("exporter.Close", time.Since(t0))
		exporter.logger.Trace("export", "exporter.Close(): %s", time.Since(t0))
	}()
	return exporter.backend.Close()
}
