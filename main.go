package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/decker502/stickwalk/pkg/app"
	"github.com/decker502/stickwalk/pkg/config"
	"github.com/decker502/stickwalk/pkg/embedded"
	"github.com/decker502/stickwalk/pkg/locomotion"
)

var CLI struct {
	Profile    string `help:"Locomotion profile to start with (plane, terrain, moon, ...)." short:"p"`
	Config     string `help:"Locomotion profiles file." default:"data/locomotion.yaml"`
	Mesh       string `help:"Use this OBJ file as the ground for every profile."`
	Script     string `help:"Drive the character with an input script, e.g. 'forward+run:120,jump,idle:60'."`
	Parity     bool   `help:"Use fixed per-frame steps instead of delta-time scaling."`
	Fullscreen bool   `help:"Start in fullscreen mode."`
	Font       string `help:"TrueType/OpenType font file for the HUD."`
	Verbose    bool   `help:"Enable debug logging." short:"v"`
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	kong.Parse(&CLI,
		kong.Name("stickwalk"),
		kong.Description("a stick figure that walks, runs, turns and jumps"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Debug().Msg("debug logging enabled")
	}

	embedded.Init(assetsFS, dataFS)

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run() error {
	profiles, err := config.LoadLocomotionProfiles(CLI.Config)
	if err != nil {
		return err
	}
	log.Info().Strs("profiles", profiles.Names()).Str("default", profiles.Default).Msg("[Config] locomotion profiles loaded")

	cfg := app.Config{
		Profiles:     profiles,
		Profile:      CLI.Profile,
		MeshOverride: CLI.Mesh,
		Parity:       CLI.Parity,
		HUDFont:      CLI.Font,
	}
	if CLI.Script != "" {
		script, err := locomotion.ParseInputScript(CLI.Script)
		if err != nil {
			return err
		}
		cfg.Script = &script
	}

	game, err := app.NewApp(cfg)
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	defer game.GetSceneManager().Close()

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.TicksPerSecond)
	ebiten.SetFullscreen(CLI.Fullscreen)

	return ebiten.RunGame(game)
}
