package advisor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/ProhibitedTV/AIPoker/internal/deck"
	"github.com/ProhibitedTV/AIPoker/internal/game"
)

// Server answers DecisionRequests over WebSocket with a local decider. It
// is the counterpart of WSClient and lets one advisor serve several
// simulator processes.
type Server struct {
	decider  game.Decider
	upgrader websocket.Upgrader
	logger   *log.Logger
	timeout  time.Duration

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewServer creates a decision server backed by decider
func NewServer(decider game.Decider, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		decider: decider,
		upgrader: websocket.Upgrader{
			// Decision clients are simulators, not browsers.
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:  logger.WithPrefix("advisor-server"),
		timeout: game.DefaultDecisionTimeout,
		conns:   make(map[*websocket.Conn]struct{}),
	}
}

// Handler returns the server's routes: /ws for decisions and /health
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Close closes every open connection
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		_ = conn.Close()
		delete(s.conns, conn)
	}
	return nil
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	s.track(conn, true)
	defer s.track(conn, false)

	s.logger.Info("Client connected", "remote", r.RemoteAddr)
	s.serve(r.Context(), conn)
	s.logger.Info("Client disconnected", "remote", r.RemoteAddr)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

func (s *Server) track(conn *websocket.Conn, open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if open {
		s.conns[conn] = struct{}{}
		return
	}
	if _, ok := s.conns[conn]; ok {
		delete(s.conns, conn)
		_ = conn.Close()
	}
}

// serve answers requests on conn until the client goes away
func (s *Server) serve(ctx context.Context, conn *websocket.Conn) {
	for {
		var req DecisionRequest
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("Read failed", "error", err)
			}
			return
		}

		if err := conn.WriteJSON(s.answer(ctx, req)); err != nil {
			s.logger.Debug("Write failed", "error", err)
			return
		}
	}
}

// answer decides one request. Requests without cards cannot be decided
// locally and get an error reply.
func (s *Server) answer(ctx context.Context, req DecisionRequest) DecisionReply {
	if req.Type != "decide" {
		return DecisionReply{Error: fmt.Sprintf("unknown request type %q", req.Type)}
	}
	if len(req.Hole) != 2 {
		return DecisionReply{Error: "request must carry two hole cards"}
	}

	hole, err := parseCodes(req.Hole)
	if err != nil {
		return DecisionReply{Error: err.Error()}
	}
	community, err := parseCodes(req.Community)
	if err != nil {
		return DecisionReply{Error: err.Error()}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	action, err := s.decider.Decide(ctx, hole, community)
	if err != nil {
		s.logger.Warn("Decider failed", "error", err)
		return DecisionReply{Error: err.Error()}
	}
	return DecisionReply{Content: action.String()}
}

func parseCodes(codes []string) ([]deck.Card, error) {
	cards := make([]deck.Card, 0, len(codes))
	for _, code := range codes {
		c, err := deck.ParseCard(code)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}
