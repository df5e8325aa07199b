package main

import (
	"flag"
	"log"
	"time"

	"chosenoffset.com/flappydefender/internal/dice"
	"chosenoffset.com/flappydefender/internal/game"
	ebitenrender "chosenoffset.com/flappydefender/internal/render/ebiten"
	"chosenoffset.com/flappydefender/internal/simulation"
	"chosenoffset.com/flappydefender/internal/ui/hud"
)

func main() {
	configPath := flag.String("config", "flappy.json", "simulation rules (JSON); defaults are used if the file is missing")
	seed := flag.Int64("seed", 0, "random seed; 0 picks one from the clock")
	tps := flag.Int("tps", 60, "simulation ticks per second")
	scale := flag.Int("scale", 1, "window scale factor")
	showTick := flag.Bool("show-tick", false, "show the tick counter in the HUD")
	flag.Parse()

	cfg, err := simulation.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	log.Printf("Using seed %d", *seed)

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	hudConfig := hud.DefaultConfig()
	hudConfig.ShowTick = *showTick

	sim := simulation.New(cfg, dice.NewSeeded(*seed))
	gameManager := game.NewManager(sim, renderer, inputMgr, hudConfig)

	// Set up the window
	engine.SetWindowSize(gameManager.ScreenWidth*(*scale), gameManager.ScreenHeight*(*scale))
	engine.SetWindowTitle("Flappy Defender")
	engine.SetWindowResizable(true)
	engine.SetTPS(*tps)

	log.Println("Starting game...")
	if err := engine.RunGame(gameManager); err != nil {
		log.Fatal(err)
	}
}
