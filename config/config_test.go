package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	api := NewConfigAPI(filepath.Join(t.TempDir(), "hoard.yaml"))
	cfg, err := api.Load()
	require.NoError(t, err)
	require.Equal(t, "sha256", cfg.Hashing)
	require.Equal(t, "lz4", cfg.Compression)
	require.Equal(t, 1024, cfg.CacheSize)
}

func TestSetGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hoard.yaml")
	api := NewConfigAPI(path)

	require.NoError(t, api.SetParameter("pile", "leveldb:///var/hoard"))
	require.NoError(t, api.SetParameter("cache_size", "16"))
	require.Error(t, api.SetParameter("cache_size", "many"))
	require.ErrorIs(t, api.SetParameter("colour", "blue"), ErrUnknownParameter)
	require.Error(t, api.SetParameter("hashing", "md5"))
	require.NoError(t, api.SetExport("backup", "s3://minio:9000/piles"))

	other := NewConfigAPI(path)
	value, err := other.GetParameter("pile")
	require.NoError(t, err)
	require.Equal(t, "leveldb:///var/hoard", value)

	value, err = other.GetParameter("cache_size")
	require.NoError(t, err)
	require.Equal(t, "16", value)

	value, err = other.GetExport("backup")
	require.NoError(t, err)
	require.Equal(t, "s3://minio:9000/piles", value)

	_, err = other.GetExport("nowhere")
	require.ErrorIs(t, err, ErrUnknownParameter)

	params, err := other.ListParameters()
	require.NoError(t, err)
	require.Contains(t, params, "exports.backup: s3://minio:9000/piles")
}

func TestInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hoard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("compression: zstd\n"), 0600))

	_, err := NewConfigAPI(path).Load()
	require.Error(t, err)
}
