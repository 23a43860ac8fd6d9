package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/PlakarLabs/hoard/exporter"
	"github.com/PlakarLabs/hoard/pile"
	"github.com/dustin/go-humanize"
)

func init() {
	registerCommand("export", cmd_export)
	registerCommand("import", cmd_import)
}

func cmd_export(ctx *appContext, args []string) int {
	var opt_compression string
	var opt_output string
	var opt_name string

	flags := flag.NewFlagSet("export", flag.ExitOnError)
	flags.StringVar(&opt_compression, "compression", ctx.config.Compression, "compression method")
	flags.StringVar(&opt_output, "o", "", "write the export to this file instead of a destination")
	flags.StringVar(&opt_name, "name", "pile", "object name at the destination")
	flags.Parse(args)

	store := ctx.Store()

	if opt_output != "" {
		fp, err := os.Create(opt_output)
		if err != nil {
			ctx.logger.Error("export: %s", err)
			return 1
		}
		n, err := pile.Export(store, fp, opt_compression)
		if cerr := fp.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			ctx.logger.Error("export: %s", err)
			return 1
		}
		fmt.Printf("%s: %s (%s compressed)\n", opt_output, humanize.Bytes(store.Size()), humanize.Bytes(uint64(n)))
		return 0
	}

	if flags.NArg() != 1 {
		fmt.Fprintf(flags.Output(), "usage: export [-compression method] [-name name] <destination>\n")
		fmt.Fprintf(flags.Output(), "       export [-compression method] -o <file>\n")
		return 1
	}

	location := flags.Arg(0)
	if named, err := ctx.configAPI.GetExport(location); err == nil {
		location = named
	}

	exp, err := exporter.NewExporter(location, ctx.logger)
	if err != nil {
		ctx.logger.Error("export: %s", err)
		return 1
	}
	defer exp.Close()

	name, err := exp.ExportPile(store, opt_name, opt_compression)
	if err != nil {
		ctx.logger.Error("export: %s", err)
		return 1
	}
	fmt.Printf("%s/%s\n", strings.TrimSuffix(exp.Root(), "/"), name)
	return 0
}

func cmd_import(ctx *appContext, args []string) int {
	var opt_compression string

	flags := flag.NewFlagSet("import", flag.ExitOnError)
	flags.StringVar(&opt_compression, "compression", ctx.config.Compression, "compression method")
	flags.Parse(args)

	if flags.NArg() != 1 {
		fmt.Fprintf(flags.Output(), "usage: import [-compression method] <file>\n")
		return 1
	}

	fp, err := os.Open(flags.Arg(0))
	if err != nil {
		ctx.logger.Error("import: %s", err)
		return 1
	}
	defer fp.Close()

	n, err := pile.Import(fp, opt_compression, ctx.Store())
	if err != nil {
		ctx.logger.Error("import: %s", err)
		return 1
	}
	fmt.Printf("imported %s\n", humanize.Bytes(n))
	return 0
}
