package main

import (
	"flag"
	"fmt"
	"strings"
)

func init() {
	registerCommand("config", cmd_config)
	registerCommand("version", cmd_version)
}

func cmd_config(ctx *appContext, args []string) int {
	flags := flag.NewFlagSet("config", flag.ExitOnError)
	flags.Parse(args)

	switch flags.NArg() {
	case 0:
		params, err := ctx.configAPI.ListParameters()
		if err != nil {
			ctx.logger.Error("config: %s", err)
			return 1
		}
		for _, param := range params {
			fmt.Println(param)
		}

	case 1:
		key := flags.Arg(0)
		var value string
		var err error
		if name, ok := strings.CutPrefix(key, "exports."); ok {
			value, err = ctx.configAPI.GetExport(name)
		} else {
			value, err = ctx.configAPI.GetParameter(key)
		}
		if err != nil {
			ctx.logger.Error("config: %s", err)
			return 1
		}
		fmt.Println(value)

	case 2:
		key, value := flags.Arg(0), flags.Arg(1)
		var err error
		if name, ok := strings.CutPrefix(key, "exports."); ok {
			err = ctx.configAPI.SetExport(name, value)
		} else {
			err = ctx.configAPI.SetParameter(key, value)
		}
		if err != nil {
			ctx.logger.Error("config: %s", err)
			return 1
		}

	default:
		fmt.Fprintf(flags.Output(), "usage: config [<key> [<value>]]\n")
		return 1
	}
	return 0
}

func cmd_version(ctx *appContext, args []string) int {
	fmt.Println(VERSION)
	return 0
}
