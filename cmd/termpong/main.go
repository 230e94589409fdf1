package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play a local two-player game"`
	Watch    WatchCmd         `cmd:"" help:"Watch a game served with --spectate-addr"`
	Simulate SimulateCmd      `cmd:"" help:"Soak the simulation with random input and check its invariants"`
	Replay   ReplayCmd        `cmd:"" help:"Re-simulate a recorded session"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("termpong"),
		kong.Description("Two-player pong in the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
