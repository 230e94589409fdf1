package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/lox/termpong/internal/game"
)

// Server broadcasts frames to every connected viewer. It implements
// game.Observer so it can be attached directly to an engine.
type Server struct {
	hello       HelloData
	upgrader    websocket.Upgrader
	clock       quartz.Clock
	logger      *log.Logger
	mu          sync.RWMutex
	connections map[*Connection]bool
	closed      bool
}

// NewServer creates a feed for the session described by hello.
func NewServer(hello HelloData, clock quartz.Clock, logger *log.Logger) *Server {
	return &Server{
		hello: hello,
		upgrader: websocket.Upgrader{
			// Spectating is read-only, any origin may watch.
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		clock:       clock,
		logger:      logger.WithPrefix("spectate"),
		connections: make(map[*Connection]bool),
	}
}

// Handler returns the HTTP routes of the feed.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// ListenAndServe serves the feed on addr until ctx is cancelled, then
// disconnects every viewer.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting spectator feed", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Stopping spectator feed")
		s.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("spectator feed shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("spectator feed: %w", err)
	}
}

// Close disconnects all viewers and refuses new ones.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for c := range s.connections {
		c.shutdown()
		delete(s.connections, c)
	}
}

// Viewers returns the number of connected viewers.
func (s *Server) Viewers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

// ObserveFrame broadcasts f to every viewer without blocking.
func (s *Server) ObserveFrame(f game.Frame) {
	s.mu.RLock()
	n := len(s.connections)
	s.mu.RUnlock()
	if n == 0 {
		return
	}

	msg, err := s.encode(MessageTypeFrame, FrameData{
		Seq:      f.Seq,
		Result:   f.Result,
		Snapshot: f.Snapshot,
	})
	if err != nil {
		s.logger.Error("Failed to encode frame", "error", err)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for c := range s.connections {
		_ = c.enqueue(msg)
	}
}

func (s *Server) encode(t MessageType, data any) ([]byte, error) {
	msg, err := NewMessage(t, data, s.clock.Now())
	if err != nil {
		return nil, err
	}
	return json.Marshal(msg)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.isClosed() {
		http.Error(w, "spectator feed closed", http.StatusServiceUnavailable)
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	c := newConnection(ws, s.logger)

	hello, err := s.encode(MessageTypeHello, s.hello)
	if err != nil {
		s.logger.Error("Failed to encode hello", "error", err)
		_ = c.Close()
		return
	}
	// Queue the hello before registering so it is always the first message.
	_ = c.enqueue(hello)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = c.Close()
		s.logger.Debug("Rejected viewer after close", "viewer", c.ID())
		return
	}
	s.connections[c] = true
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Viewer connected", "viewer", c.ID(), "total", total)

	c.start()

	go func() {
		<-c.Done()
		s.mu.Lock()
		delete(s.connections, c)
		total := len(s.connections)
		s.mu.Unlock()
		s.logger.Info("Viewer disconnected", "viewer", c.ID(), "total", total)
	}()
}

func (s *Server) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}
