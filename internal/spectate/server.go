package spectate

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"chosenoffset.com/flappydefender/internal/simulation"
)

// Options tunes a Server.
type Options struct {
	// TPS is the number of ticks per second.
	TPS int
	// Every broadcasts one snapshot out of every N steps. Steps that
	// produced events are always broadcast.
	Every int
	// AutoRestart resets the run after it has been over for this many
	// steps. Zero waits for a remote reset.
	AutoRestart int
}

// DefaultOptions returns 60 ticks per second, every second snapshot and a
// three second pause before restarting.
func DefaultOptions() Options {
	return Options{TPS: 60, Every: 2, AutoRestart: 180}
}

// Status is the JSON body served on /status.
type Status struct {
	Tick     uint64 `json:"tick"`
	Score    int    `json:"score"`
	GameOver bool   `json:"game_over"`
	Entities int    `json:"entities"`
	Clients  int    `json:"clients"`
}

// Server drives one engine on a fixed-rate ticker and streams msgpack
// encoded snapshots to every connected spectator. Only the Run goroutine
// touches the engine; remote commands arrive through a channel.
type Server struct {
	engine   *simulation.Engine
	hub      *Hub
	opts     Options
	commands chan simulation.Command
	upgrader websocket.Upgrader

	steps uint64
	idle  int

	mu     sync.RWMutex
	latest simulation.Snapshot
}

// NewServer wraps engine. Zero fields in opts fall back to DefaultOptions.
func NewServer(engine *simulation.Engine, opts Options) *Server {
	def := DefaultOptions()
	if opts.TPS <= 0 {
		opts.TPS = def.TPS
	}
	if opts.Every <= 0 {
		opts.Every = def.Every
	}
	if opts.AutoRestart < 0 {
		opts.AutoRestart = 0
	}
	return &Server{
		engine:   engine,
		hub:      NewHub(),
		opts:     opts,
		commands: make(chan simulation.Command, 64),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // spectators may connect from anywhere
			},
		},
		latest: engine.Snapshot(),
	}
}

// Handler serves /ws for spectators and /status for a JSON summary.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	mux.HandleFunc("/status", s.serveStatus)
	return mux
}

// Latest returns the most recent snapshot.
func (s *Server) Latest() simulation.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// Clients returns the number of connected spectators.
func (s *Server) Clients() int {
	return s.hub.Count()
}

// Run ticks the engine until ctx is done and returns ctx.Err().
func (s *Server) Run(ctx context.Context) error {
	go s.hub.Run(ctx)

	ticker := time.NewTicker(time.Second / time.Duration(s.opts.TPS))
	defer ticker.Stop()

	log.Printf("[FLAPPYD] Ticking at %d TPS, broadcasting every %d", s.opts.TPS, s.opts.Every)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			frame, err := s.step()
			if err != nil {
				log.Printf("[FLAPPYD] Failed to encode snapshot: %v", err)
				continue
			}
			if frame != nil {
				s.hub.Broadcast(frame)
			}
		}
	}
}

// step applies queued remote commands, advances the engine once and returns
// the encoded frame to broadcast, or nil when this step is skipped.
func (s *Server) step() ([]byte, error) {
	s.drainCommands()

	snap := s.engine.Tick()
	s.steps++

	for _, ev := range snap.Events {
		if ev.Kind == simulation.EventGameOver {
			log.Printf("[FLAPPYD] Game over at tick %d, score %d", snap.Tick, snap.Score)
		}
	}

	if snap.GameOver {
		s.idle++
		if s.opts.AutoRestart > 0 && s.idle >= s.opts.AutoRestart {
			log.Println("[FLAPPYD] Restarting run")
			s.engine.Reset()
			s.idle = 0
			snap = s.engine.Snapshot()
		}
	} else {
		s.idle = 0
	}

	s.mu.Lock()
	s.latest = snap
	s.mu.Unlock()

	if len(snap.Events) == 0 && s.steps%uint64(s.opts.Every) != 0 {
		return nil, nil
	}
	frame, err := msgpack.Marshal(&snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot %d: %w", snap.Tick, err)
	}
	return frame, nil
}

func (s *Server) drainCommands() {
	for {
		select {
		case cmd := <-s.commands:
			s.engine.Enqueue(cmd)
		default:
			return
		}
	}
}

func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[FLAPPYD] Upgrade failed: %v", err)
		return
	}
	client := NewClient(s.hub, conn, s.commands)
	s.hub.add(client)

	go client.WritePump()
	go client.ReadPump()
}

func (s *Server) serveStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	snap := s.Latest()
	status := Status{
		Tick:     snap.Tick,
		Score:    snap.Score,
		GameOver: snap.GameOver,
		Entities: len(snap.Entities),
		Clients:  s.Clients(),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		log.Printf("[FLAPPYD] Failed to write status: %v", err)
	}
}
