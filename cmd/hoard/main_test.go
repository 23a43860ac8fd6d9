package main

import (
	"path/filepath"
	"testing"

	"github.com/PlakarLabs/hoard/config"
	"github.com/PlakarLabs/hoard/logging"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) *appContext {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Pile = "mem://"
	return &appContext{
		configDir: dir,
		configAPI: config.NewConfigAPI(filepath.Join(dir, "hoard.yaml")),
		config:    cfg,
		logger:    logging.NewDiscard(),
	}
}

func TestResolve(t *testing.T) {
	ctx := &appContext{configDir: "/etc/hoard"}
	require.Equal(t, "/etc/hoard/pile", ctx.resolve("pile"))
	require.Equal(t, "/var/pile", ctx.resolve("/var/pile"))
	require.Equal(t, "leveldb://data", ctx.resolve("leveldb://data"))
}

func TestPutGetVerify(t *testing.T) {
	ctx := newTestContext(t)
	defer ctx.Close()

	require.Equal(t, 0, cmd_put(ctx, []string{"numbers", "10", "11", "12", "13"}))
	require.Equal(t, 1, cmd_put(ctx, []string{"numbers", "1", "2"}))
	require.Equal(t, 1, cmd_put(ctx, []string{"odd", "1", "2", "3"}))

	root, ok := ctx.Manifest().Lookup("numbers")
	require.True(t, ok)
	require.Equal(t, uint8(2), root.Height)

	zone := ctx.Zone()
	tree, err := loadRoot(ctx, zone, "numbers")
	require.NoError(t, err)
	v, ok, err := tree.Get(zone, 2)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(12), v)

	require.Equal(t, 0, cmd_get(ctx, []string{"numbers", "0", "3"}))
	require.Equal(t, 1, cmd_get(ctx, []string{"numbers", "4"}))
	require.Equal(t, 1, cmd_get(ctx, []string{"missing", "0"}))
	require.Equal(t, 0, cmd_verify(ctx, nil))
}

func TestManifestPersisted(t *testing.T) {
	ctx := newTestContext(t)
	require.Equal(t, 0, cmd_put(ctx, []string{"a", "1", "2"}))

	again := &appContext{configDir: ctx.configDir, config: ctx.config, logger: ctx.logger}
	_, ok := again.Manifest().Lookup("a")
	require.True(t, ok)
}
