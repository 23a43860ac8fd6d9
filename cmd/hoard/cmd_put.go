package main

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/PlakarLabs/hoard/manifest"
	"github.com/PlakarLabs/hoard/perfecttree"
)

func init() {
	registerCommand("put", cmd_put)
}

func cmd_put(ctx *appContext, args []string) int {
	flags := flag.NewFlagSet("put", flag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: put <name> <value> [<value> ...]\n")
		fmt.Fprintf(flags.Output(), "the number of values must be a power of two\n")
	}
	flags.Parse(args)

	if flags.NArg() < 2 {
		flags.Usage()
		return 1
	}
	name := flags.Arg(0)
	if _, exists := ctx.Manifest().Lookup(name); exists {
		ctx.logger.Error("put: %s: %s", name, manifest.ErrRootExists)
		return 1
	}

	values := make([]uint64, 0, flags.NArg()-1)
	for _, arg := range flags.Args()[1:] {
		v, err := strconv.ParseUint(arg, 0, 64)
		if err != nil {
			ctx.logger.Error("put: %s", err)
			return 1
		}
		values = append(values, v)
	}

	tree, err := perfecttree.Build(values)
	if err != nil {
		ctx.logger.Error("put: %s", err)
		return 1
	}

	zone := ctx.Zone()
	off, err := tree.Save(zone)
	if err != nil {
		ctx.logger.Error("put: %s", err)
		return 1
	}
	digest, err := tree.Commit(zone)
	if err != nil {
		ctx.logger.Error("put: %s", err)
		return 1
	}

	err = ctx.Manifest().AddRoot(manifest.Root{
		Name:   name,
		Offset: off.Get(),
		Height: uint8(tree.Height()),
		Digest: digest,
	})
	if err == nil {
		err = ctx.SaveManifest()
	}
	if err != nil {
		ctx.logger.Error("put: %s", err)
		return 1
	}

	ctx.logger.Info("put: %s saved %d leaves", name, tree.Len())
	fmt.Printf("%s %s %s\n", name, off, digest)
	return 0
}
