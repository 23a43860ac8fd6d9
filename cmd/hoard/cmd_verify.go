package main

import (
	"flag"
	"fmt"
)

func init() {
	registerCommand("verify", cmd_verify)
}

func cmd_verify(ctx *appContext, args []string) int {
	flags := flag.NewFlagSet("verify", flag.ExitOnError)
	flags.Parse(args)

	names := flags.Args()
	if len(names) == 0 {
		for _, root := range ctx.Manifest().Roots {
			names = append(names, root.Name)
		}
	}

	zone := ctx.Zone()
	failures := 0
	for _, name := range names {
		tree, err := loadRoot(ctx, zone, name)
		if err == nil {
			err = tree.Verify(zone)
		}
		if err != nil {
			ctx.logger.Error("verify: %s: %s", name, err)
			failures++
			continue
		}
		fmt.Printf("%s: ok\n", name)
	}
	if failures != 0 {
		return 1
	}
	return 0
}
