package session

import (
	"bytes"
	"encoding/hex"
	"errors"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/Vovarama1992/voice_relay/internal/synthesis"
)

type InboundMessage struct {
	Text           string  `json:"text"`
	TargetLanguage *string `json:"target_language"`
}

// Language returns the requested language, "en" when absent or empty.
func (m InboundMessage) Language() string {
	if m.TargetLanguage == nil || *m.TargetLanguage == "" {
		return synthesis.DefaultLanguage
	}
	return *m.TargetLanguage
}

type OutboundMessage struct {
	OriginalText   string  `json:"original_text"`
	TranslatedText string  `json:"translated_text"`
	AudioBytes     *string `json:"audio_bytes"`
}

var (
	errNotText   = errors.New("expected a text frame")
	errNotObject = errors.New("expected a JSON object")
)

func decodeInbound(messageType int, data []byte) (InboundMessage, error) {
	var msg InboundMessage

	if messageType != websocket.TextMessage {
		return msg, &ParseError{Raw: data, Err: errNotText}
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return msg, &ParseError{Raw: data, Err: errNotObject}
	}
	if err := json.Unmarshal(trimmed, &msg); err != nil {
		return msg, &ParseError{Raw: data, Err: err}
	}
	return msg, nil
}

// newOutbound hex-encodes audio; empty audio is sent as null.
func newOutbound(original, translated string, audio []byte) OutboundMessage {
	out := OutboundMessage{
		OriginalText:   original,
		TranslatedText: translated,
	}
	if len(audio) > 0 {
		encoded := hex.EncodeToString(audio)
		out.AudioBytes = &encoded
	}
	return out
}

func encodeOutbound(msg OutboundMessage) ([]byte, error) {
	return json.Marshal(msg)
}
