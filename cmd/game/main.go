package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/city-walk/internal/config"
	"github.com/Garsondee/city-walk/internal/game"
	"github.com/Garsondee/city-walk/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the process exit code so deferred cleanup, including the
// rotating log file, completes before exit.
func run(args []string) int {
	fs := flag.NewFlagSet("game", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a YAML/JSON/TOML config file")
	seed := fs.Int64("seed", 0, "city seed (overrides city.seed; 0 picks one from the clock)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Print(err)
		return 1
	}
	logger, closer := logging.Setup(os.Stdout, cfg.Log.Level, cfg.Log.File)
	defer closer.Close()

	s := cfg.City.Seed
	if *seed != 0 {
		s = *seed
	}
	if s == 0 {
		s = time.Now().UnixNano()
	}

	ebiten.SetWindowTitle("City Walk")
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	if err := ebiten.RunGame(game.New(cfg, s, logger)); err != nil {
		logger.Error("game exited", "error", err)
		return 1
	}
	return 0
}
