package synthesis

import (
	"context"
	"errors"
	"testing"
)

type fakeEngine struct {
	audio   []byte
	err     error
	gotLang string
	gotText string
}

func (f *fakeEngine) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	f.gotText = text
	f.gotLang = language
	if f.err != nil {
		return []byte("partial"), f.err
	}
	return f.audio, nil
}

func TestSynthesize_DefaultsLanguage(t *testing.T) {
	engine := &fakeEngine{audio: []byte{0xff, 0xfb}}
	svc := NewService(engine, "fake", 0)

	audio, err := svc.Synthesize(context.Background(), "hello", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if engine.gotLang != DefaultLanguage {
		t.Fatalf("expected language %q, got %q", DefaultLanguage, engine.gotLang)
	}
	if len(audio) != 2 {
		t.Fatalf("expected engine audio, got %v", audio)
	}
}

func TestSynthesize_PassesLanguageThrough(t *testing.T) {
	engine := &fakeEngine{audio: []byte{1}}
	svc := NewService(engine, "fake", 0)

	if _, err := svc.Synthesize(context.Background(), "hola", "es"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if engine.gotLang != "es" || engine.gotText != "hola" {
		t.Fatalf("unexpected engine input: %q %q", engine.gotText, engine.gotLang)
	}
}

func TestSynthesize_ErrorDropsPartialAudio(t *testing.T) {
	cause := errors.New("language not supported: xx")
	svc := NewService(&fakeEngine{err: cause}, "google", 0)

	audio, err := svc.Synthesize(context.Background(), "hello", "xx")
	if audio != nil {
		t.Fatalf("expected no audio on failure, got %v", audio)
	}

	var serr *Error
	if !errors.As(err, &serr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if serr.Language != "xx" || serr.Provider != "google" {
		t.Fatalf("unexpected error fields: %+v", serr)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause")
	}
}
