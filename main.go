package main

import (
	"fmt"
	"log/slog"
	"os"

	"microct/convert"
	"microct/geometry"
	"microct/parallel"
	"microct/scene"

	"github.com/alecthomas/kong"
)

type cli struct {
	Workers  int    `help:"Number of worker goroutines, 0 for one per CPU" default:"0"`
	LogLevel string `help:"Log level" enum:"debug,info,warn,error" default:"info"`

	Inspect convert.InspectCmd `cmd:"" help:"Print the header of BMP textures"`
	Convert convert.CLICmd     `cmd:"" help:"Convert BMP textures to other formats"`
	Points  geometry.CLICmd    `cmd:"" help:"Generate point array files"`
	Scene   scene.SceneCmd     `cmd:"" help:"Render the light source and detector arrays"`
	Plane   scene.PlaneCmd     `cmd:"" help:"Render a BMP texture on a plane"`
}

func (c *cli) AfterApply() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	slog.SetLogLoggerLevel(level)
	return nil
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("microct"),
		kong.Description("Micro-CT simulation geometry and texture tools"),
		kong.UsageOnError(),
	)

	slog.Debug("running", "command", kctx.Command())

	pool := parallel.Start(c.Workers)
	err := kctx.Run(pool, pool.Do, pool.Wait)
	pool.Wait(true)
	if err != nil {
		slog.Error("command failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}
