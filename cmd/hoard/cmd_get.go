package main

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/PlakarLabs/hoard/perfecttree"
	"github.com/PlakarLabs/hoard/ptr"
)

func init() {
	registerCommand("get", cmd_get)
}

func loadRoot(ctx *appContext, zone *perfecttree.Zone[uint64], name string) (perfecttree.Tree[uint64], error) {
	root, exists := ctx.Manifest().Lookup(name)
	if !exists {
		return perfecttree.Tree[uint64]{}, fmt.Errorf("%s: no such root", name)
	}
	off, ok := ptr.NewOffset(root.Offset)
	if !ok {
		return perfecttree.Tree[uint64]{}, fmt.Errorf("%s: offset %d out of range", name, root.Offset)
	}
	tree, err := perfecttree.Load(zone, off)
	if err != nil {
		return perfecttree.Tree[uint64]{}, err
	}
	if uint8(tree.Height()) != root.Height {
		return perfecttree.Tree[uint64]{}, fmt.Errorf("%s: manifest says height %d, pile says %d", name, root.Height, tree.Height())
	}
	if digest, _ := tree.Digest(); digest != root.Digest {
		return perfecttree.Tree[uint64]{}, fmt.Errorf("%s: manifest digest %s does not match pile digest %s", name, root.Digest, digest)
	}
	return tree, nil
}

func cmd_get(ctx *appContext, args []string) int {
	flags := flag.NewFlagSet("get", flag.ExitOnError)
	flags.Parse(args)

	if flags.NArg() < 2 {
		fmt.Fprintf(flags.Output(), "usage: get <name> <index> [<index> ...]\n")
		return 1
	}

	zone := ctx.Zone()
	tree, err := loadRoot(ctx, zone, flags.Arg(0))
	if err != nil {
		ctx.logger.Error("get: %s", err)
		return 1
	}

	status := 0
	for _, arg := range flags.Args()[1:] {
		idx, err := strconv.ParseUint(arg, 0, 64)
		if err != nil {
			ctx.logger.Error("get: %s", err)
			return 1
		}
		v, ok, err := tree.Get(zone, idx)
		if err != nil {
			ctx.logger.Error("get: %d: %s", idx, err)
			return 1
		}
		if !ok {
			ctx.logger.Warn("get: %d: index out of range (%d leaves)", idx, tree.Len())
			status = 1
			continue
		}
		fmt.Printf("%d: %d\n", idx, v)
	}
	return status
}
