package pebble

import (
	"path/filepath"
	"testing"

	"github.com/PlakarLabs/hoard/pile"
	"github.com/PlakarLabs/hoard/pile/piletest"
	"github.com/stretchr/testify/require"
)

func TestPile(t *testing.T) {
	piletest.Run(t, func(t *testing.T) pile.Store {
		p, err := Open(filepath.Join(t.TempDir(), "pile"))
		require.NoError(t, err)
		return p
	})
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pile")
	piletest.RunReopen(t, func(t *testing.T) pile.Store {
		p, err := Open(path)
		require.NoError(t, err)
		return p
	})
}

func TestRegistered(t *testing.T) {
	store, err := pile.Open("pebble://" + filepath.Join(t.TempDir(), "pile"))
	require.NoError(t, err)
	defer store.Close()
	_, ok := store.(*Pile)
	require.True(t, ok)
}
