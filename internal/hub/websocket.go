package hub

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const closeWriteTimeout = 5 * time.Second

// WebsocketConn adapts a gorilla websocket connection to the registry's
// Conn interface. Writes are serialized with a mutex — gorilla supports
// at most one concurrent writer per connection.
type WebsocketConn struct {
	id      string
	ws      *websocket.Conn
	writeMu sync.Mutex
}

// NewWebsocketConn wraps an upgraded websocket connection.
func NewWebsocketConn(ws *websocket.Conn) *WebsocketConn {
	return &WebsocketConn{
		id: uuid.New().String(),
		ws: ws,
	}
}

// ID returns the connection's log identifier.
func (c *WebsocketConn) ID() string {
	return c.id
}

// Send writes one text frame.
func (c *WebsocketConn) Send(payload []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ws.WriteMessage(websocket.TextMessage, payload)
}

// ReadText blocks until the next text frame from the client and returns
// its body. Non-text frames are skipped.
func (c *WebsocketConn) ReadText() (string, error) {
	for {
		msgType, data, err := c.ws.ReadMessage()
		if err != nil {
			return "", err
		}
		if msgType == websocket.TextMessage {
			return string(data), nil
		}
	}
}

// Close closes the underlying transport.
func (c *WebsocketConn) Close() error {
	return c.ws.Close()
}

// CloseAbnormal sends a close frame with an internal-error status code,
// then closes the transport. Best effort: the close frame may not reach
// a client whose transport is already gone.
func (c *WebsocketConn) CloseAbnormal(reason string) error {
	c.writeMu.Lock()
	_ = c.ws.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseInternalServerErr, reason),
		time.Now().Add(closeWriteTimeout),
	)
	c.writeMu.Unlock()
	return c.ws.Close()
}

// IsClientClose reports whether err is a client-initiated disconnect, as
// opposed to an unexpected transport failure.
func IsClientClose(err error) bool {
	if websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived,
	) {
		return true
	}
	return errors.Is(err, io.EOF)
}
