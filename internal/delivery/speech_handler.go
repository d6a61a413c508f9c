package delivery

import (
	"io"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/dustin/go-humanize"

	"github.com/Vovarama1992/voice_relay/internal/upload"
)

const multipartMemory = 32 << 20

type SpeechHandler struct {
	upload   upload.Service
	maxBytes int64
	log      *logger.ZapLogger
}

func NewSpeechHandler(svc upload.Service, maxBytes int64, log *logger.ZapLogger) *SpeechHandler {
	return &SpeechHandler{
		upload:   svc,
		maxBytes: maxBytes,
		log:      log,
	}
}

// SpeechToText always answers 200: {"text": ...} on success, {"error": ...} otherwise.
func (h *SpeechHandler) SpeechToText(w http.ResponseWriter, r *http.Request) {
	// room for multipart framing around the audio part
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+1<<20)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "invalid multipart", Error: err, Service: serviceName})
		writeJSON(w, map[string]string{"error": "invalid multipart: " + err.Error()})
		return
	}
	defer r.MultipartForm.RemoveAll()

	lang := r.FormValue("language_code")
	if lang == "" {
		lang = "en"
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "missing audio", Error: err, Service: serviceName})
		writeJSON(w, map[string]string{"error": "missing audio: " + err.Error()})
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		writeJSON(w, map[string]string{"error": "failed to read audio: " + err.Error()})
		return
	}
	if int64(len(audio)) > h.maxBytes {
		writeJSON(w, map[string]string{"error": "audio exceeds " + humanize.IBytes(uint64(h.maxBytes))})
		return
	}

	text, err := h.upload.Handle(r.Context(), audio, header.Filename, lang)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "speech to text failed", Error: err, Service: serviceName})
		writeJSON(w, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, map[string]string{"text": text})
}
