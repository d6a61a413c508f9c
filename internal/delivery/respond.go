package delivery

import (
	"net/http"

	"github.com/goccy/go-json"
)

const serviceName = "voice_relay"

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
