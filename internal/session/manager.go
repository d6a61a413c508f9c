package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/gorilla/websocket"

	"github.com/Vovarama1992/voice_relay/internal/error_notificator"
	"github.com/Vovarama1992/voice_relay/internal/translation"
)

const serviceName = "voice_relay"

// Synthesizer is the synthesis gateway as seen by a session.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
}

// Manager runs one session per connection. Sessions share nothing but the
// gateways, which are safe for concurrent use.
type Manager struct {
	tts        Synthesizer
	translator translation.Translator
	log        *logger.ZapLogger
	notifier   error_notificator.Notificator

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
}

func NewManager(
	tts Synthesizer,
	translator translation.Translator,
	log *logger.ZapLogger,
	notifier error_notificator.Notificator,
) *Manager {
	return &Manager{
		tts:        tts,
		translator: translator,
		log:        log,
		notifier:   notifier,
		sessions:   make(map[string]*Session),
	}
}

// Serve owns conn until the session reaches StateClosed. Messages are handled
// one at a time in arrival order, so responses keep the order of requests.
// It returns nil when the peer disconnected or the manager shut down, a
// *ParseError or *TransportError on fatal faults.
func (m *Manager) Serve(ctx context.Context, conn Conn) (err error) {
	s := newSession(conn)
	if !m.register(s) {
		s.close()
		return nil
	}
	s.setState(StateOpen)
	m.logf("info", nil, "session %s opened", s.ID)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("session fault: %v", r)
		}
		s.close()
		m.unregister(s)
		m.finish(ctx, s, err)
	}()

	for {
		messageType, data, rErr := conn.ReadMessage()
		if rErr != nil {
			if s.State() >= StateClosing || isDisconnect(rErr) {
				return nil
			}
			return &TransportError{Op: "read", Err: rErr}
		}

		in, pErr := decodeInbound(messageType, data)
		if pErr != nil {
			return pErr
		}

		if sErr := s.send(m.process(ctx, s, in)); sErr != nil {
			return sErr
		}
	}
}

// process never fails: a synthesis error only drops the audio.
func (m *Manager) process(ctx context.Context, s *Session, in InboundMessage) OutboundMessage {
	lang := in.Language()

	translated, err := m.translator.Translate(ctx, in.Text, lang)
	if err != nil {
		m.logf("warn", err, "session %s translate failed, echoing", s.ID)
		translated = in.Text
	}

	audio, err := m.tts.Synthesize(ctx, translated, lang)
	if err != nil {
		m.logf("warn", err, "session %s synthesis failed lang=%s", s.ID, lang)
		audio = nil
	}

	return newOutbound(in.Text, translated, audio)
}

func (m *Manager) finish(ctx context.Context, s *Session, err error) {
	lifetime := time.Since(s.OpenedAt).Round(time.Millisecond)

	var (
		terr *TransportError
		perr *ParseError
	)
	switch {
	case err == nil:
		m.logf("info", nil, "session %s closed after %d messages (%s)", s.ID, s.handled, lifetime)
	case errors.As(err, &terr):
		m.logf("warn", err, "session %s closed on transport failure", s.ID)
	case errors.As(err, &perr):
		// client fault, not worth waking the admins
		m.logf("warn", err, "session %s closed on malformed message", s.ID)
	default:
		m.logf("error", err, "session %s closed on fault", s.ID)
		if m.notifier != nil {
			_ = m.notifier.Notify(ctx, "session", err, "session "+s.ID)
		}
	}
}

// Shutdown closes every open connection; each Serve call then returns.
// Sessions arriving afterwards are closed on registration.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	m.closed = true
	open := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		open = append(open, s)
	}
	m.mu.Unlock()

	for _, s := range open {
		s.close()
	}
	m.logf("info", nil, "closed %d sessions on shutdown", len(open))
}

// Active reports the number of sessions not yet closed.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) register(s *Session) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false
	}
	m.sessions[s.ID] = s
	return true
}

func (m *Manager) unregister(s *Session) {
	m.mu.Lock()
	delete(m.sessions, s.ID)
	m.mu.Unlock()
}

func (m *Manager) logf(level string, err error, format string, args ...any) {
	if m.log == nil {
		return
	}
	m.log.Log(logger.LogEntry{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
		Error:   err,
		Service: serviceName,
	})
}

func isDisconnect(err error) bool {
	return websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived,
		websocket.CloseAbnormalClosure,
	)
}
