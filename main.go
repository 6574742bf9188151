package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Level       string `help:"Course file; embedded courses are looked up by base name." default:"levels/tutorial.json"`
	Config      string `help:"Controller prefab in prefabs/." default:"controller.yaml"`
	Script      string `help:"Checkpoint script in prefabs/scripts/." default:"checkpoints.tengo"`
	Debug       bool   `help:"Whether to enable debug logging and the debug HUD."`
	Mute        bool   `help:"Disable sound cues."`
	BaseMonitor bool   `help:"Use the base monitor instead of the primary one." short:"m"`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	kong.Parse(&CLI,
		kong.Name("blockrunner"),
		kong.Description("run and jump across a block course"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	if CLI.BaseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("blockrunner")

	game, err := NewGame(Options{
		Level:  CLI.Level,
		Config: CLI.Config,
		Script: CLI.Script,
		Debug:  CLI.Debug,
		Mute:   CLI.Mute,
	})
	if err != nil {
		writeError(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Error().Err(err).Msg("game exited")
	}
}
