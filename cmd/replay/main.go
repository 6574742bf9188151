package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/milk9111/blockrunner/checkpoint"
	"github.com/milk9111/blockrunner/course"
	"github.com/milk9111/blockrunner/levels"
	"github.com/milk9111/blockrunner/physics"
	"github.com/milk9111/blockrunner/prefabs"
	"github.com/milk9111/blockrunner/replay"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Tape   string  `arg:"" name:"tape" help:"Replay tape (YAML)." type:"existingfile"`
	Level  string  `help:"Course file; overrides the tape's course." short:"l"`
	Config string  `help:"Controller prefab." default:"controller.yaml"`
	Script string  `help:"Checkpoint script." default:"checkpoints.tengo"`
	DT     float64 `help:"Fixed step in seconds; overrides the tape's dt." name:"dt"`
	Every  int     `help:"Log a snapshot every N ticks, 0 for only the summary." default:"0"`
	Debug  bool    `help:"Whether to enable debug logging."`
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
		kong.Name("replay"),
		kong.Description("run a recorded input tape against a course headlessly"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	if err := run(); err != nil {
		writeError(err)
	}
}

func run() error {
	tape, err := replay.LoadTape(CLI.Tape)
	if err != nil {
		return err
	}
	if CLI.DT > 0 {
		tape.DT = CLI.DT
	}

	levelPath := tape.Course
	if CLI.Level != "" {
		levelPath = CLI.Level
	}
	c, err := levels.Load(levelPath)
	if err != nil {
		return err
	}
	if c.Skipped > 0 {
		log.Warn().Int("skipped", c.Skipped).Str("course", c.Name).Msg("dropped blocks with no volume")
	}

	cfg, err := prefabs.LoadControllerConfig(CLI.Config)
	if err != nil {
		return err
	}
	rt, err := checkpoint.Load(CLI.Script)
	if err != nil {
		return err
	}

	s, err := course.NewSession(cfg, c, rt)
	if err != nil {
		return err
	}
	s.SetLogger(log.Logger)

	res := replay.Run(s, tape, func(tick int, snap physics.Snapshot, events []physics.Event) {
		if CLI.Every <= 0 || tick%CLI.Every != 0 {
			return
		}
		log.Info().
			Int("tick", tick).
			Float64("x", snap.Position.X).
			Float64("y", snap.Position.Y).
			Float64("z", snap.Position.Z).
			Bool("grounded", snap.Grounded).
			Str("anim", string(snap.Anim)).
			Msg("snapshot")
	})

	log.Info().
		Str("course", c.Name).
		Int("ticks", res.Ticks).
		Int("deaths", res.Deaths).
		Int("respawns", res.Respawns).
		Bool("completed", res.Completed).
		Uint64("completed_at", res.CompletedAt).
		Msg("replay finished")
	return nil
}
