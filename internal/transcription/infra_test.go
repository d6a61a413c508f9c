package transcription

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDeepgramClient_ParsesTranscript(t *testing.T) {
	var gotAuth, gotType string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":{"channels":[{"alternatives":[{"transcript":"hola mundo"}]}]}}`))
	}))
	defer srv.Close()

	c := NewDeepgramClient("secret")
	c.url = srv.URL

	text, err := c.Transcribe(context.Background(), []byte("RIFF"), "/tmp/x.unknownext")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "hola mundo" {
		t.Fatalf("expected transcript, got %q", text)
	}
	if gotAuth != "Token secret" {
		t.Fatalf("expected token auth header, got %q", gotAuth)
	}
	if gotType != "audio/wav" {
		t.Fatalf("expected default content type, got %q", gotType)
	}
	if string(gotBody) != "RIFF" {
		t.Fatalf("expected raw audio body, got %q", gotBody)
	}
}

func TestDeepgramClient_NoChannelsIsEmptyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":{"channels":[]}}`))
	}))
	defer srv.Close()

	c := NewDeepgramClient("secret")
	c.url = srv.URL

	text, err := c.Transcribe(context.Background(), []byte("RIFF"), "/tmp/x.wav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "" {
		t.Fatalf("expected empty text, got %q", text)
	}
}

func TestDeepgramClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewDeepgramClient("wrong")
	c.url = srv.URL

	if _, err := c.Transcribe(context.Background(), []byte("RIFF"), "/tmp/x.wav"); err == nil {
		t.Fatalf("expected error on 401")
	}
}

func TestWhisperClient_TextResponse(t *testing.T) {
	var gotPath, gotModel, gotFormat, gotFile string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotModel = r.FormValue("model")
		gotFormat = r.FormValue("response_format")
		if _, hdr, err := r.FormFile("file"); err == nil {
			gotFile = hdr.Filename
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(" hello from whisper \n"))
	}))
	defer srv.Close()

	c := NewWhisperClient("key", srv.URL+"/v1", DefaultGroqModel)

	text, err := c.Transcribe(context.Background(), []byte("RIFFdata"), "/tmp/staged-1.wav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(text) != "hello from whisper" {
		t.Fatalf("unexpected text %q", text)
	}
	if gotPath != "/v1/audio/transcriptions" {
		t.Fatalf("unexpected path %s", gotPath)
	}
	if gotModel != DefaultGroqModel {
		t.Fatalf("unexpected model %s", gotModel)
	}
	if gotFormat != "text" {
		t.Fatalf("unexpected response format %s", gotFormat)
	}
	if gotFile != "staged-1.wav" {
		t.Fatalf("unexpected file name %s", gotFile)
	}
}
