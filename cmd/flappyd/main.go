// Command flappyd runs a headless simulation and streams it to websocket
// spectators.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chosenoffset.com/flappydefender/internal/dice"
	"chosenoffset.com/flappydefender/internal/simulation"
	"chosenoffset.com/flappydefender/internal/spectate"
)

func main() {
	def := spectate.DefaultOptions()
	addr := flag.String("addr", ":8080", "HTTP listen address")
	configPath := flag.String("config", "flappy.json", "simulation rules (JSON); defaults are used if the file is missing")
	seed := flag.Int64("seed", 0, "random seed; 0 picks one from the clock")
	tps := flag.Int("tps", def.TPS, "simulation ticks per second")
	every := flag.Int("every", def.Every, "broadcast one snapshot every N ticks")
	restart := flag.Int("restart", def.AutoRestart, "ticks to wait after game over before restarting; 0 waits for a remote reset")
	flag.Parse()

	log.Println("[FLAPPYD] Initializing headless server...")

	cfg, err := simulation.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("[FLAPPYD] Failed to load config: %v", err)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	log.Printf("[FLAPPYD] Using seed %d", *seed)

	engine := simulation.New(cfg, dice.NewSeeded(*seed))
	server := spectate.NewServer(engine, spectate.Options{TPS: *tps, Every: *every, AutoRestart: *restart})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("[FLAPPYD] Simulation stopped: %v", err)
		}
	}()

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("[FLAPPYD] Listening on %s (ws: /ws, status: /status)", *addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[FLAPPYD] Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[FLAPPYD] Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("[FLAPPYD] Forced shutdown: %v", err)
	}
	log.Println("[FLAPPYD] Server exited")
}
