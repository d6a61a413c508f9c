package delivery

import (
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

func RegisterRoutes(
	r chi.Router,
	hLang *LanguageHandler,
	hSpeech *SpeechHandler,
	hSession *SessionHandler,
	uploadsPerMinute int,
) {
	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Group(func(pr chi.Router) {
		pr.Use(httputil.RecoverMiddleware)

		// --- languages ---
		pr.Get("/languages", hLang.List)

		// --- speech to text ---
		upload := pr
		if uploadsPerMinute > 0 {
			upload = pr.With(httprate.Limit(
				uploadsPerMinute,
				time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				// keep the always-200 contract of /speech-to-text
				httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
					writeJSON(w, map[string]string{"error": "too many requests"})
				}),
			))
		}
		upload.Post("/speech-to-text", hSpeech.SpeechToText)

		// --- realtime channel ---
		pr.Get("/ws", hSession.Connect)
	})
}
