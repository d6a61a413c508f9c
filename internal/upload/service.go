package upload

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/Vovarama1992/voice_relay/internal/error_notificator"
)

const defaultExt = ".wav"

type UploadService struct {
	stt      Transcriber
	dir      string
	notifier error_notificator.Notificator

	// observe is called on every stage transition; tests use it.
	observe func(id string, stage Stage)
}

func NewService(stt Transcriber, stagingDir string, notifier error_notificator.Notificator) *UploadService {
	if stagingDir == "" {
		stagingDir = os.TempDir()
	}
	return &UploadService{
		stt:      stt,
		dir:      stagingDir,
		notifier: notifier,
		observe:  func(string, Stage) {},
	}
}

func (s *UploadService) Handle(ctx context.Context, audio []byte, filename, languageCode string) (text string, err error) {
	id := uuid.NewString()
	s.observe(id, StageReceived)
	log.Printf("[upload] received id=%s size=%s lang=%s", id, humanize.Bytes(uint64(len(audio))), languageCode)

	path, err := s.stage(id, filename, audio)
	if err != nil {
		return "", fmt.Errorf("stage audio: %w", err)
	}
	s.observe(id, StageStaged)

	defer func() {
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Printf("[upload] cleanup fail id=%s path=%s err=%v", id, path, rmErr)
		}
		if err != nil {
			s.observe(id, StageCleanedWithError)
		} else {
			s.observe(id, StageCleaned)
		}
	}()

	text, err = s.stt.Transcribe(ctx, audio, path)
	if err != nil {
		log.Printf("[upload] transcribe fail id=%s err=%v", id, err)
		if s.notifier != nil {
			_ = s.notifier.Notify(ctx, "speech-to-text", err, "upload "+id)
		}
		return "", err
	}
	s.observe(id, StageTranscribed)

	log.Printf("[upload] done id=%s", id)
	return text, nil
}

// stage writes audio to a new file in the staging dir keyed by id.
func (s *UploadService) stage(id, filename string, audio []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || len(ext) > 6 {
		ext = defaultExt
	}
	path := filepath.Join(s.dir, id+ext)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(audio); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
