package delivery

import (
	"net/http"

	"github.com/Vovarama1992/voice_relay/internal/languages"
)

type LanguageHandler struct{}

func NewLanguageHandler() *LanguageHandler {
	return &LanguageHandler{}
}

func (h *LanguageHandler) List(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{"languages": languages.List()})
}
