package hub

import (
	"log/slog"
	"sync"
)

// Conn is one live notification channel. The registry keys the member set
// on the handle itself; implementations must tolerate concurrent Send
// calls.
type Conn interface {
	// ID identifies the connection in logs.
	ID() string
	// Send writes one text frame to the client.
	Send(payload []byte) error
	Close() error
}

// Registry tracks the set of live notification connections and performs
// best-effort fan-out. The set is the only shared mutable state in the
// notification core; the mutex is held for mutations and snapshot copies
// only, never across a send.
type Registry struct {
	logger *slog.Logger

	mu    sync.Mutex
	conns map[Conn]struct{}
}

// NewRegistry creates an empty Registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger: logger,
		conns:  make(map[Conn]struct{}),
	}
}

// Connect adds conn to the live set. The transport handshake has already
// been accepted by the caller; a connection whose accept failed is never
// passed here.
func (r *Registry) Connect(conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[conn] = struct{}{}
}

// Disconnect removes conn from the live set. Removing a connection that
// is not a member is a no-op.
func (r *Registry) Disconnect(conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, conn)
}

// Len reports the number of live connections.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}

// Broadcast sends payload to every connection present in the set at the
// moment of the call. A failed send is logged and skipped; it never
// aborts delivery to the remaining connections and never reaches the
// caller. A connection whose send failed stays in the set — its own
// session loop observes the broken transport and disconnects it.
func (r *Registry) Broadcast(payload []byte) {
	r.mu.Lock()
	snapshot := make([]Conn, 0, len(r.conns))
	for conn := range r.conns {
		snapshot = append(snapshot, conn)
	}
	r.mu.Unlock()

	for _, conn := range snapshot {
		if err := conn.Send(payload); err != nil {
			r.logger.Warn("broadcast send failed",
				slog.String("conn_id", conn.ID()),
				slog.String("error", err.Error()),
			)
		}
	}
}
