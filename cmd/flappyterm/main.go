package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/flappydefender/internal/dice"
	"chosenoffset.com/flappydefender/internal/simulation"
	"chosenoffset.com/flappydefender/internal/term"
)

func main() {
	configPath := flag.String("config", "flappy.json", "simulation rules (JSON); defaults are used if the file is missing")
	seed := flag.Int64("seed", 0, "random seed; 0 picks one from the clock")
	tps := flag.Int("tps", 30, "simulation ticks per second")
	logPath := flag.String("log", "", "write log output to this file while the terminal is in use")
	flag.Parse()

	cfg, err := simulation.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to initialize screen: %v", err)
	}
	screen.HideCursor()

	// The screen owns the terminal from here on.
	out, closeLog, err := logOutput(*logPath)
	if err != nil {
		screen.Fini()
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer closeLog()
	log.SetOutput(out)
	log.Printf("Using seed %d", *seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := &term.Runner{
		Screen: screen,
		Engine: simulation.New(cfg, dice.NewSeeded(*seed)),
		TPS:    *tps,
	}
	err = runner.Run(ctx)
	screen.Fini()
	log.SetOutput(os.Stderr)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}

// logOutput opens the log destination used while the screen is active. An
// empty path discards log output.
func logOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return io.Discard, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
