package main

import (
	"flag"
	"fmt"

	"github.com/dustin/go-humanize"
)

func init() {
	registerCommand("roots", cmd_roots)
}

func cmd_roots(ctx *appContext, args []string) int {
	flags := flag.NewFlagSet("roots", flag.ExitOnError)
	flags.Parse(args)

	pattern := "**"
	if flags.NArg() > 0 {
		pattern = flags.Arg(0)
	}

	roots, err := ctx.Manifest().Match(pattern)
	if err != nil {
		ctx.logger.Error("roots: %s", err)
		return 1
	}
	for _, root := range roots {
		fmt.Printf("%s %10s h%-2d @%-10d %s\n", root.Digest.String()[:16], humanize.Time(root.Created), root.Height, root.Offset, root.Name)
	}
	return 0
}
