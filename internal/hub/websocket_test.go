package hub

import (
	"errors"
	"io"
	"testing"

	"github.com/gorilla/websocket"
)

func TestIsClientClose(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"normal closure", &websocket.CloseError{Code: websocket.CloseNormalClosure}, true},
		{"going away", &websocket.CloseError{Code: websocket.CloseGoingAway}, true},
		{"no status", &websocket.CloseError{Code: websocket.CloseNoStatusReceived}, true},
		{"abnormal closure", &websocket.CloseError{Code: websocket.CloseAbnormalClosure}, false},
		{"internal error", &websocket.CloseError{Code: websocket.CloseInternalServerErr}, false},
		{"eof", io.EOF, true},
		{"plain error", errors.New("connection reset"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsClientClose(tc.err); got != tc.want {
				t.Fatalf("IsClientClose(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestNewWebsocketConn_UniqueIDs(t *testing.T) {
	a := NewWebsocketConn(nil)
	b := NewWebsocketConn(nil)
	if a.ID() == "" || a.ID() == b.ID() {
		t.Fatalf("expected distinct non-empty ids, got %q and %q", a.ID(), b.ID())
	}
}
