package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/xid"
)

// Conn is the slice of *websocket.Conn a session needs.
// Close may be called concurrently with ReadMessage.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Session is owned by the goroutine running Manager.Serve for its conn.
type Session struct {
	ID       string
	OpenedAt time.Time

	conn      Conn
	state     atomic.Int32
	closeOnce sync.Once
	handled   int
}

func newSession(conn Conn) *Session {
	s := &Session{
		ID:       xid.New().String(),
		OpenedAt: time.Now(),
		conn:     conn,
	}
	s.state.Store(int32(StateConnecting))
	return s
}

func (s *Session) State() State { return State(s.state.Load()) }

func (s *Session) setState(st State) { s.state.Store(int32(st)) }

func (s *Session) send(out OutboundMessage) error {
	payload, err := encodeOutbound(out)
	if err != nil {
		return &TransportError{Op: "encode", Err: err}
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return &TransportError{Op: "write", Err: err}
	}
	s.handled++
	return nil
}

// close is safe to call from any goroutine and more than once.
func (s *Session) close() {
	s.closeOnce.Do(func() {
		s.setState(StateClosing)
		_ = s.conn.Close()
		s.setState(StateClosed)
	})
}
