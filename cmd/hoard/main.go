package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PlakarLabs/hoard/blob"
	"github.com/PlakarLabs/hoard/commit"
	"github.com/PlakarLabs/hoard/config"
	"github.com/PlakarLabs/hoard/logging"
	"github.com/PlakarLabs/hoard/manifest"
	"github.com/PlakarLabs/hoard/perfecttree"
	"github.com/PlakarLabs/hoard/pile"
	"github.com/PlakarLabs/hoard/profiler"

	_ "github.com/PlakarLabs/hoard/exporter/fs"
	_ "github.com/PlakarLabs/hoard/exporter/s3"
	_ "github.com/PlakarLabs/hoard/pile/backends/fs"
	_ "github.com/PlakarLabs/hoard/pile/backends/leveldb"
	_ "github.com/PlakarLabs/hoard/pile/backends/pebble"
	_ "github.com/PlakarLabs/hoard/pile/backends/sqlite"
)

const VERSION = "0.1.0"

type appContext struct {
	configDir string
	configAPI *config.ConfigAPI
	config    config.Configuration
	logger    *logging.Logger

	store        pile.Store
	manifestPath string
	manifest     *manifest.Manifest
}

var commands map[string]func(*appContext, []string) int = make(map[string]func(*appContext, []string) int)

func registerCommand(command string, fn func(*appContext, []string) int) {
	commands[command] = fn
}

// resolve makes bare relative paths relative to the configuration
// directory; locations with a scheme are left alone.
func (ctx *appContext) resolve(location string) string {
	if filepath.IsAbs(location) || filepath.VolumeName(location) != "" {
		return location
	}
	if strings.Contains(location, "://") {
		return location
	}
	return filepath.Join(ctx.configDir, location)
}

func (ctx *appContext) Store() pile.Store {
	if ctx.store != nil {
		return ctx.store
	}
	store, err := pile.Open(ctx.resolve(ctx.config.Pile))
	if err != nil {
		log.Fatalf("%s: could not open pile %s: %s", flag.CommandLine.Name(), ctx.config.Pile, err)
	}
	if ctx.config.CacheSize > 0 {
		if store, err = pile.NewCachedStore(store, ctx.config.CacheSize); err != nil {
			log.Fatalf("%s: %s", flag.CommandLine.Name(), err)
		}
	}
	ctx.store = store
	return store
}

func (ctx *appContext) Manifest() *manifest.Manifest {
	if ctx.manifest != nil {
		return ctx.manifest
	}
	ctx.manifestPath = ctx.resolve(ctx.config.Manifest)
	m, err := manifest.Load(ctx.manifestPath)
	if os.IsNotExist(err) {
		m = manifest.New(ctx.config.Pile, ctx.config.Hashing)
	} else if err != nil {
		log.Fatalf("%s: could not load manifest: %s", flag.CommandLine.Name(), err)
	}
	if m.Algorithm != ctx.config.Hashing {
		log.Fatalf("%s: manifest uses %s, configuration says %s", flag.CommandLine.Name(), m.Algorithm, ctx.config.Hashing)
	}
	ctx.manifest = m
	return m
}

func (ctx *appContext) SaveManifest() error {
	return ctx.Manifest().Save(ctx.manifestPath)
}

func (ctx *appContext) Zone() *perfecttree.Zone[uint64] {
	hasher, err := commit.NewHasher(ctx.config.Hashing)
	if err != nil {
		log.Fatalf("%s: %s", flag.CommandLine.Name(), err)
	}
	return perfecttree.NewZone[uint64](ctx.Store(), blob.Uint64{}).WithHasher(hasher).WithLogger(ctx.logger)
}

func (ctx *appContext) Close() {
	if ctx.store != nil {
		if err := ctx.store.Close(); err != nil {
			ctx.logger.Warn("closing pile: %s", err)
		}
	}
}

func main() {
	os.Exit(entryPoint())
}

func entryPoint() int {
	var opt_config string
	var opt_pile string
	var opt_trace string
	var opt_verbose bool
	var opt_profiling bool

	defaultConfigDir := ".hoard"
	if home, err := os.UserHomeDir(); err == nil {
		defaultConfigDir = filepath.Join(home, ".hoard")
	}

	flag.StringVar(&opt_config, "config", filepath.Join(defaultConfigDir, "hoard.yaml"), "configuration file")
	flag.StringVar(&opt_pile, "pile", "", "pile location, overrides the configuration")
	flag.StringVar(&opt_trace, "trace", "", "display trace logs, comma-separated (all, save, load, pile, cache, verify, export)")
	flag.BoolVar(&opt_verbose, "verbose", false, "display informational messages")
	flag.BoolVar(&opt_profiling, "profiling", false, "display profiling logs")
	flag.Parse()

	ctx := &appContext{
		configDir: filepath.Dir(opt_config),
		configAPI: config.NewConfigAPI(opt_config),
		logger:    logging.NewLogger(os.Stdout, os.Stderr),
	}
	if err := os.MkdirAll(ctx.configDir, 0700); err != nil {
		log.Fatalf("%s: %s", flag.CommandLine.Name(), err)
	}

	cfg, err := ctx.configAPI.Load()
	if err != nil {
		log.Fatalf("%s: %s", flag.CommandLine.Name(), err)
	}
	if opt_pile != "" {
		cfg.Pile = opt_pile
	}
	if opt_trace == "" {
		opt_trace = cfg.Trace
	}
	ctx.config = cfg

	if opt_verbose {
		ctx.logger.EnableInfo()
	}
	if opt_trace != "" {
		ctx.logger.EnableTrace(opt_trace)
	}
	pile.SetLogger(ctx.logger)

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "%s: missing command\n", flag.CommandLine.Name())
		names := make([]string, 0, len(commands))
		for name := range commands {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintln(os.Stderr, "valid subcommands:")
		for _, name := range names {
			fmt.Fprintf(os.Stderr, "\t%s\n", name)
		}
		return 1
	}

	command, args := flag.Arg(0), flag.Args()[1:]
	fn, exists := commands[command]
	if !exists {
		fmt.Fprintf(os.Stderr, "%s: unsupported command: %s\n", flag.CommandLine.Name(), command)
		return 1
	}

	status := fn(ctx, args)
	ctx.Close()

	if opt_profiling {
		profiler.Display(ctx.logger)
	}
	return status
}
