package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"orderdesk/internal/domain"
)

// wsTestEnv runs the router on a real listener so sessions can be
// driven over actual websocket connections.
type wsTestEnv struct {
	*testEnv
	server *httptest.Server
}

func newWSTestEnv(t *testing.T) *wsTestEnv {
	t.Helper()
	env := newTestEnv()
	srv := httptest.NewServer(env.router)
	t.Cleanup(srv.Close)
	return &wsTestEnv{testEnv: env, server: srv}
}

// dial opens a notification session. Tests call waitForSessions before
// broadcasting so the registration cannot be raced.
func (env *wsTestEnv) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(env.server.URL, "http") + "/ws/orders"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

// waitForSessions polls until n sessions are registered.
func (env *wsTestEnv) waitForSessions(t *testing.T, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for env.registry.Len() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d sessions, got %d", n, env.registry.Len())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// readNotification reads the next frame and decodes the message field.
func readNotification(t *testing.T, ws *websocket.Conn) string {
	t.Helper()
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	var n domain.Notification
	if err := json.Unmarshal(payload, &n); err != nil {
		t.Fatalf("frame is not a notification: %v (%s)", err, payload)
	}
	return n.Message
}

// postOrder POSTs an order against the live server.
func (env *wsTestEnv) postOrder(t *testing.T, body map[string]any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatalf("encode body: %v", err)
	}
	resp, err := http.Post(env.server.URL+"/orders", "application/json", &buf)
	if err != nil {
		t.Fatalf("post order: %v", err)
	}
	defer resp.Body.Close()
	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func TestWebSocket_OrderCreatedBroadcast(t *testing.T) {
	env := newWSTestEnv(t)
	ws := env.dial(t)
	env.waitForSessions(t, 1)

	resp, order := env.postOrder(t, map[string]any{
		"symbol":    "food",
		"price":     150.0,
		"quantity":  5,
		"orderType": "online",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	want := fmt.Sprintf("New order created: food (Order ID: %v)", order["id"])
	if msg := readNotification(t, ws); msg != want {
		t.Fatalf("expected %q, got %q", want, msg)
	}
}

func TestWebSocket_StatusUpdateEcho(t *testing.T) {
	env := newWSTestEnv(t)
	ws1 := env.dial(t)
	ws2 := env.dial(t)
	env.waitForSessions(t, 2)

	if err := ws1.WriteMessage(websocket.TextMessage, []byte("ping")); err != nil {
		t.Fatalf("write: %v", err)
	}

	for i, ws := range []*websocket.Conn{ws1, ws2} {
		if msg := readNotification(t, ws); msg != "Order status update: ping" {
			t.Fatalf("session %d: unexpected message %q", i+1, msg)
		}
	}
}

func TestWebSocket_DisconnectBroadcast(t *testing.T) {
	env := newWSTestEnv(t)
	ws1 := env.dial(t)
	ws2 := env.dial(t)
	env.waitForSessions(t, 2)

	// Close session 1 cleanly.
	_ = ws1.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	ws1.Close()

	if msg := readNotification(t, ws2); msg != "A client disconnected" {
		t.Fatalf("expected disconnect notice, got %q", msg)
	}
	env.waitForSessions(t, 1)
}

func TestWebSocket_NoBroadcastOnValidationFailure(t *testing.T) {
	env := newWSTestEnv(t)
	ws := env.dial(t)
	env.waitForSessions(t, 1)

	resp, _ := env.postOrder(t, map[string]any{"symbol": "food"}) // missing price and quantity
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}

	// No frame may arrive; the read must time out.
	ws.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, payload, err := ws.ReadMessage(); err == nil {
		t.Fatalf("unexpected broadcast after rejected create: %s", payload)
	}
}

func TestWebSocket_CreateResponseNotBlockedBySilentClient(t *testing.T) {
	env := newWSTestEnv(t)
	// A session that never reads. Small kernel buffers mean broadcasts
	// to it may stall, but the create response must still return.
	env.dial(t)
	env.waitForSessions(t, 1)

	done := make(chan struct{})
	go func() {
		resp, _ := env.postOrder(t, map[string]any{"price": 1.0, "quantity": 1})
		if resp.StatusCode != http.StatusCreated {
			t.Errorf("expected 201, got %d", resp.StatusCode)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("create response blocked by a notification client")
	}
}
