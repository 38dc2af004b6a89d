package advisor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/ProhibitedTV/AIPoker/internal/deck"
	"github.com/ProhibitedTV/AIPoker/internal/game"
)

// DecisionRequest is sent to a remote decision service for every prompt.
// Cards use the ASCII form read by deck.ParseCard.
type DecisionRequest struct {
	Type      string   `json:"type"`
	Prompt    string   `json:"prompt"`
	Hole      []string `json:"hole,omitempty"`
	Community []string `json:"community,omitempty"`
}

// DecisionReply is the service's answer. Content is free text and goes
// through the same sanitisation as model replies.
type DecisionReply struct {
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
}

// WSClient sends prompts over a single WebSocket connection, one request
// at a time. The connection is dialled lazily and re-dialled after a
// failure.
type WSClient struct {
	serverURL string
	logger    *log.Logger
	dialer    *websocket.Dialer

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewWSClient creates a client for serverURL. http and https schemes are
// converted to ws and wss.
func NewWSClient(serverURL string, logger *log.Logger) (*WSClient, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return nil, fmt.Errorf("invalid server URL scheme %q", u.Scheme)
	}

	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &WSClient{
		serverURL: u.String(),
		logger:    logger.WithPrefix("ws-advisor"),
		dialer:    &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
	}, nil
}

// Complete sends prompt and waits for the reply or ctx to end
func (c *WSClient) Complete(ctx context.Context, prompt string) (string, error) {
	return c.send(ctx, DecisionRequest{Type: "decide", Prompt: prompt})
}

// CompleteCards sends the prompt together with the cards, so services that
// decide from cards rather than text can answer too
func (c *WSClient) CompleteCards(ctx context.Context, prompt string, hole, community []deck.Card) (string, error) {
	return c.send(ctx, DecisionRequest{
		Type:      "decide",
		Prompt:    prompt,
		Hole:      deck.Codes(hole),
		Community: deck.Codes(community),
	})
}

// Decide implements game.Decider without retries; wrap the client in an
// Advisor for those.
func (c *WSClient) Decide(ctx context.Context, hole, community []deck.Card) (game.ActionKind, error) {
	reply, err := c.CompleteCards(ctx, Prompt(hole, community), hole, community)
	if err != nil {
		return game.Fold, err
	}
	return Sanitize(reply), nil
}

func (c *WSClient) send(ctx context.Context, req DecisionRequest) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := c.connect(ctx)
	if err != nil {
		return "", err
	}

	// Unblock reads and writes when ctx ends.
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetReadDeadline(time.Now())
		_ = conn.SetWriteDeadline(time.Now())
	})
	defer stop()

	if err := conn.WriteJSON(req); err != nil {
		c.drop()
		return "", fmt.Errorf("sending decision request: %w", contextOr(ctx, err))
	}

	var reply DecisionReply
	if err := conn.ReadJSON(&reply); err != nil {
		c.drop()
		return "", fmt.Errorf("reading decision reply: %w", contextOr(ctx, err))
	}
	if reply.Error != "" {
		return "", errors.New("decision service: " + reply.Error)
	}
	return reply.Content, nil
}

// Close closes the connection if one is open
func (c *WSClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	err := c.conn.Close()
	c.conn = nil
	return err
}

func (c *WSClient) connect(ctx context.Context) (*websocket.Conn, error) {
	if c.conn != nil {
		return c.conn, nil
	}

	c.logger.Debug("Connecting to decision service", "url", c.serverURL)
	conn, _, err := c.dialer.DialContext(ctx, c.serverURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	c.conn = conn
	return conn, nil
}

// drop discards a connection after an I/O error
func (c *WSClient) drop() {
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}

func contextOr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}
