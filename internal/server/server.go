// Package server streams the simulation to browser clients over a
// websocket: one hello message with the drum geometry, then a fixed-rate
// feed of ball pose and collision events in canvas coordinates.
//
// The simulation itself runs on a single loop goroutine; handlers only
// register connections, so the engine's no-concurrent-access contract
// holds.
package server

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/soundphys/tumbler/internal/drum"
	"github.com/soundphys/tumbler/internal/notes"
)

// CanvasSize is the square pixel space frames are expressed in.
const CanvasSize = 600.0

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type helloMsg struct {
	Type       string          `json:"type"` // "hello"
	Canvas     float64         `json:"canvas"`
	DrumRadius float64         `json:"drum_radius"` // pixels
	Vanes      []drum.VaneLine `json:"vanes"`
	Surfaces   []surfaceMsg    `json:"surfaces"`
}

type surfaceMsg struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Index int    `json:"index"`
	Color string `json:"color"`
	Note  int    `json:"note"`
}

type frameMsg struct {
	Type   string     `json:"type"` // "frame"
	Time   float64    `json:"time"`
	Angle  float64    `json:"angle"`
	Ball   [2]float64 `json:"ball"`
	Events []eventMsg `json:"events,omitempty"`
}

type eventMsg struct {
	Surface string  `json:"surface"`
	Kind    string  `json:"kind"`
	Index   int     `json:"index"`
	Speed   float64 `json:"speed"`
	Note    int     `json:"note"`
}

// Server owns the simulation loop and the connection set.
type Server struct {
	sim       *drum.Simulation
	mapper    *notes.Mapper
	frameRate int

	mu      sync.Mutex
	conns   map[*websocket.Conn]bool
	fresh   []*websocket.Conn // connected since last frame, owed a hello
	pending []eventMsg
}

func New(sim *drum.Simulation, mapper *notes.Mapper, frameRate int) *Server {
	if frameRate <= 0 {
		frameRate = 30
	}
	srv := &Server{
		sim:       sim,
		mapper:    mapper,
		frameRate: frameRate,
		conns:     make(map[*websocket.Conn]bool),
	}
	sim.OnCollision(func(sf drum.Surface, speed float64) {
		note, _ := mapper.Note(sf.ID)
		srv.pending = append(srv.pending, eventMsg{
			Surface: sf.ID,
			Kind:    sf.Kind.String(),
			Index:   sf.Index,
			Speed:   speed,
			Note:    note,
		})
	})
	return srv
}

// ListenAndServe runs the HTTP server and the simulation loop until ctx is
// done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)

	httpSrv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		httpSrv.Close()
	}()
	go s.loop(ctx)

	log.Printf("streaming on ws://%s/ws at %d fps", addr, s.frameRate)
	err := httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("upgrade failed: %v", err)
		return
	}

	s.mu.Lock()
	s.conns[conn] = true
	s.fresh = append(s.fresh, conn)
	s.mu.Unlock()

	// Drain the read side so close frames are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.drop(conn)
				return
			}
		}
	}()
}

func (s *Server) drop(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conns[conn] {
		delete(s.conns, conn)
		conn.Close()
	}
}

// loop is the only goroutine touching the simulation.
func (s *Server) loop(ctx context.Context) {
	interval := time.Second / time.Duration(s.frameRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var simTime float64
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			s.sim.Advance(dt)
			simTime += dt

			bx, by := s.sim.BallPosition(CanvasSize)
			frame := frameMsg{
				Type:  "frame",
				Time:  simTime,
				Angle: s.sim.Angle(),
				Ball:  [2]float64{bx, by},
			}
			frame.Events, s.pending = s.pending, nil

			s.broadcast(frame)
		}
	}
}

func (s *Server) hello() helloMsg {
	surfaces := s.sim.Surfaces()
	msg := helloMsg{
		Type:       "hello",
		Canvas:     CanvasSize,
		DrumRadius: s.sim.DrumCanvasRadius(CanvasSize),
		Vanes:      s.sim.VanePositions(CanvasSize),
		Surfaces:   make([]surfaceMsg, 0, len(surfaces)),
	}
	for _, sf := range surfaces {
		note, _ := s.mapper.Note(sf.ID)
		msg.Surfaces = append(msg.Surfaces, surfaceMsg{
			ID:    sf.ID,
			Kind:  sf.Kind.String(),
			Index: sf.Index,
			Color: sf.ColorTag,
			Note:  note,
		})
	}
	return msg
}

func (s *Server) broadcast(frame frameMsg) {
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	fresh := s.fresh
	s.fresh = nil
	s.mu.Unlock()

	for _, c := range fresh {
		if err := c.WriteJSON(s.hello()); err != nil {
			s.drop(c)
		}
	}
	for _, c := range conns {
		if err := c.WriteJSON(frame); err != nil {
			s.drop(c)
		}
	}
}
