package spectate

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Client follows a feed.
type Client struct {
	conn   *websocket.Conn
	logger *log.Logger
	hello  HelloData
	frames chan FrameData

	mu  sync.Mutex
	err error
}

// Dial connects to url (ws://host:port/ws) and waits for the hello message.
func Dial(ctx context.Context, url string, logger *log.Logger) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}

	c := &Client{
		conn:   conn,
		logger: logger.WithPrefix("watch"),
		frames: make(chan FrameData, 8),
	}

	_ = conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to read hello: %w", err)
	}
	if msg.Type != MessageTypeHello {
		_ = conn.Close()
		return nil, fmt.Errorf("expected hello, got %q", msg.Type)
	}
	if err := json.Unmarshal(msg.Data, &c.hello); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to decode hello: %w", err)
	}
	_ = conn.SetReadDeadline(time.Time{})

	c.logger.Info("Joined session", "session", c.hello.SessionID)
	go c.readLoop()
	return c, nil
}

// Hello returns the session description sent by the server.
func (c *Client) Hello() HelloData {
	return c.hello
}

// Frames delivers frames as they arrive. It is closed when the connection
// ends; Err then reports why.
func (c *Client) Frames() <-chan FrameData {
	return c.frames
}

// Err returns the error that ended the feed, or nil after a clean close.
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Close hangs up.
func (c *Client) Close() error {
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return c.conn.Close()
}

func (c *Client) readLoop() {
	defer close(c.frames)

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.mu.Lock()
				c.err = err
				c.mu.Unlock()
			}
			return
		}

		if msg.Type != MessageTypeFrame {
			c.logger.Debug("Ignoring message", "type", msg.Type)
			continue
		}

		var f FrameData
		if err := json.Unmarshal(msg.Data, &f); err != nil {
			c.logger.Warn("Bad frame", "error", err)
			continue
		}

		// Keep the newest frame if the reader is slow.
		select {
		case c.frames <- f:
		default:
			select {
			case <-c.frames:
			default:
			}
			c.frames <- f
		}
	}
}
