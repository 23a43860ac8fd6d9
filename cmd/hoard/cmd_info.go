package main

import (
	"flag"
	"fmt"

	"github.com/PlakarLabs/hoard/pile"
	"github.com/dustin/go-humanize"
)

func init() {
	registerCommand("info", cmd_info)
}

func cmd_info(ctx *appContext, args []string) int {
	flags := flag.NewFlagSet("info", flag.ExitOnError)
	flags.Parse(args)

	if flags.NArg() == 0 {
		return info_pile(ctx)
	}

	zone := ctx.Zone()
	for _, name := range flags.Args() {
		tree, err := loadRoot(ctx, zone, name)
		if err != nil {
			ctx.logger.Error("info: %s", err)
			return 1
		}
		root, _ := ctx.Manifest().Lookup(name)
		digest, _ := tree.Digest()
		fmt.Printf("Name: %s\n", root.Name)
		fmt.Printf("Created: %s\n", root.Created)
		fmt.Printf("Offset: %d\n", root.Offset)
		fmt.Printf("Height: %d\n", tree.Height())
		fmt.Printf("Leaves: %s\n", humanize.Comma(int64(tree.Len())))
		fmt.Printf("Digest: %s\n", digest)
	}
	return 0
}

func info_pile(ctx *appContext) int {
	store := ctx.Store()
	m := ctx.Manifest()

	fmt.Printf("Version: %s\n", m.Version)
	fmt.Printf("ID: %s\n", m.ID)
	fmt.Printf("Created: %s\n", m.Created)
	fmt.Printf("Pile: %s\n", ctx.config.Pile)
	fmt.Printf("Hashing: %s\n", m.Algorithm)
	fmt.Printf("Roots: %d\n", len(m.Roots))
	fmt.Printf("Size: %s (%d bytes)\n", humanize.Bytes(store.Size()), store.Size())
	if cached, ok := store.(*pile.CachedStore); ok {
		hits, misses := cached.Stats()
		fmt.Printf("Cache: %d hits, %d misses\n", hits, misses)
	}
	return 0
}
