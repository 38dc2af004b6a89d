package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Play    PlayCmd          `cmd:"" default:"withargs" help:"Simulate rounds and print the event log"`
	Watch   WatchCmd         `cmd:"" help:"Watch a session street by street in a terminal UI"`
	Eval    EvalCmd          `cmd:"" help:"Evaluate the best hand from hole and community cards"`
	Serve   ServeCmd         `cmd:"" help:"Serve an advisor to other simulators over WebSocket"`
}

// Globals are flags shared by every command
type Globals struct {
	Config   string `short:"c" default:"aipoker.hcl" type:"path" help:"HCL configuration file"`
	LogLevel string `enum:",debug,info,warn,error" default:"" help:"Log level (debug|info|warn|error)"`
	NoColor  bool   `help:"Disable colour output"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("aipoker"),
		kong.Description("Texas Hold'em round simulator for AI players"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
