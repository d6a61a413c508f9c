package delivery

import (
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/gorilla/websocket"

	"github.com/Vovarama1992/voice_relay/internal/session"
)

type SessionHandler struct {
	manager  *session.Manager
	upgrader websocket.Upgrader
	log      *logger.ZapLogger
}

func NewSessionHandler(manager *session.Manager, allowedOrigins []string, log *logger.ZapLogger) *SessionHandler {
	return &SessionHandler{
		manager: manager,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		log: log,
	}
}

// Connect upgrades the request and blocks until the session closes.
func (h *SessionHandler) Connect(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		h.log.Log(logger.LogEntry{Level: "warn", Message: "websocket upgrade failed", Error: err, Service: serviceName})
		return
	}

	_ = h.manager.Serve(r.Context(), conn)
}

// originChecker allows requests without an Origin header, any origin when
// the list holds "*", and otherwise only listed origins.
func originChecker(allowed []string) func(*http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	_, wildcard := set["*"]

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || wildcard {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
