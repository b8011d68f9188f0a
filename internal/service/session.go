package service

import (
	"log/slog"

	"orderdesk/internal/domain"
	"orderdesk/internal/hub"
)

// SessionConn is the transport a notification session drives: a registry
// member that can also be read from and torn down abnormally.
type SessionConn interface {
	hub.Conn
	// ReadText blocks until the next client text frame.
	ReadText() (string, error)
	// CloseAbnormal closes the transport with an abnormal-closure code,
	// best-effort sending reason to the client first.
	CloseAbnormal(reason string) error
}

// sessionState is the lifecycle state of one notification session.
type sessionState int

const (
	sessionConnecting sessionState = iota
	sessionOpen
	sessionClosed
)

// RunSession drives one notification session until the connection
// closes. Connecting registers the conn; Open broadcasts a status update
// for each client text frame. A client-initiated close removes the conn
// and broadcasts a disconnect notice to the remaining sessions; any
// other read failure logs, sends a best-effort error notice to that one
// connection, and closes it abnormally without a broadcast. Closed is
// terminal — a reconnecting client gets a fresh session.
func (s *OrderService) RunSession(conn SessionConn) {
	for state := sessionConnecting; state != sessionClosed; {
		switch state {
		case sessionConnecting:
			s.registry.Connect(conn)
			state = sessionOpen

		case sessionOpen:
			text, err := conn.ReadText()
			if err != nil {
				s.closeSession(conn, err)
				state = sessionClosed
				continue
			}
			s.broadcast(domain.NewStatusUpdate(text))
		}
	}
}

// closeSession handles the Open → Closed transition for both the
// client-initiated and the unexpected-error path.
func (s *OrderService) closeSession(conn SessionConn, err error) {
	if hub.IsClientClose(err) {
		s.registry.Disconnect(conn)
		s.broadcast(domain.NewClientDisconnected())
		s.logger.Info("client disconnected", slog.String("conn_id", conn.ID()))
		return
	}

	s.logger.Error("notification session failed",
		slog.String("conn_id", conn.ID()),
		slog.String("error", err.Error()),
	)
	if notice, encErr := (domain.Notification{Message: "An error occurred"}).Encode(); encErr == nil {
		_ = conn.Send(notice)
	}
	_ = conn.CloseAbnormal("internal error")
	s.registry.Disconnect(conn)
}
