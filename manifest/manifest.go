// Package manifest names the tree roots saved in a pile.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/PlakarLabs/hoard/commit"
	"github.com/gobwas/glob"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

const VERSION = "0.1.0"

var (
	ErrRootExists   = errors.New("root already exists")
	ErrRootNotFound = errors.New("root not found")
)

type Root struct {
	Name    string
	Offset  uint64
	Height  uint8
	Digest  commit.Digest
	Created time.Time
}

type Manifest struct {
	Version   string
	ID        uuid.UUID
	Created   time.Time
	Location  string
	Algorithm string
	Roots     []Root
}

func New(location string, algorithm string) *Manifest {
	return &Manifest{
		Version:   VERSION,
		ID:        uuid.New(),
		Created:   time.Now(),
		Location:  location,
		Algorithm: algorithm,
		Roots:     make([]Root, 0),
	}
}

func NewFromBytes(serialized []byte) (*Manifest, error) {
	var m Manifest
	if err := msgpack.Unmarshal(serialized, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) Serialize() ([]byte, error) {
	return msgpack.Marshal(m)
}

func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewFromBytes(data)
}

// Save replaces the file at path atomically.
func (m *Manifest) Save(path string) error {
	data, err := m.Serialize()
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".manifest-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (m *Manifest) AddRoot(root Root) error {
	if _, exists := m.Lookup(root.Name); exists {
		return fmt.Errorf("%s: %w", root.Name, ErrRootExists)
	}
	if root.Created.IsZero() {
		root.Created = time.Now()
	}
	m.Roots = append(m.Roots, root)
	sort.Slice(m.Roots, func(i, j int) bool {
		return m.Roots[i].Name < m.Roots[j].Name
	})
	return nil
}

func (m *Manifest) RemoveRoot(name string) error {
	for i, root := range m.Roots {
		if root.Name == name {
			m.Roots = append(m.Roots[:i], m.Roots[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%s: %w", name, ErrRootNotFound)
}

func (m *Manifest) Lookup(name string) (Root, bool) {
	for _, root := range m.Roots {
		if root.Name == name {
			return root, true
		}
	}
	return Root{}, false
}

// Match returns the roots whose name matches a glob pattern, '/' being
// the separator.
func (m *Manifest) Match(pattern string) ([]Root, error) {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, err
	}
	ret := make([]Root, 0)
	for _, root := range m.Roots {
		if g.Match(root.Name) {
			ret = append(ret, root)
		}
	}
	return ret, nil
}
