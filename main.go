package main

import (
	"github.com/alecthomas/kong"
	"github.com/yunusemregokdag/kadim-savaslar-sub002/internal/cli"
)

// version is substituted during the build with -ldflags.
var version = "dev"

func main() {
	parsed := &cli.CLI{}
	ctx := kong.Parse(parsed,
		kong.Name("kadim-anticheat"),
		kong.Description("Server-side anti-cheat gateway for Kadim Savaşlar."),
		kong.Vars{
			"version": version,
		})

	ctx.FatalIfErrorf(ctx.Run(parsed, version))
}
