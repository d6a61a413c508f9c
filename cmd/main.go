package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Vovarama1992/voice_relay/internal/config"
	"github.com/Vovarama1992/voice_relay/internal/delivery"
	"github.com/Vovarama1992/voice_relay/internal/error_notificator"
	"github.com/Vovarama1992/voice_relay/internal/session"
	"github.com/Vovarama1992/voice_relay/internal/synthesis"
	"github.com/Vovarama1992/voice_relay/internal/transcription"
	"github.com/Vovarama1992/voice_relay/internal/translation"
	"github.com/Vovarama1992/voice_relay/internal/upload"
)

const serviceName = "voice_relay"

func main() {
	root := &cobra.Command{
		Use:          "voice_relay",
		Short:        "Speech-to-text uploads and a text-to-speech websocket relay",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port, _ := cmd.Flags().GetString("port"); port != "" {
				cfg.Port = port
			}
			return run(cmd.Context(), cfg)
		},
	}
	root.Flags().StringP("port", "p", "", "port to listen on (overrides PORT)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		log.Fatalf("voice_relay: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// CLIENTS (STT / TTS / notifications)
	// =========================================================================

	sttEngine, err := newTranscriptionEngine(cfg.Transcription)
	if err != nil {
		return err
	}
	ttsEngine, err := newSynthesisEngine(cfg.Synthesis)
	if err != nil {
		return err
	}

	var notifyInfra error_notificator.Notificator = error_notificator.NopInfra{}
	if cfg.Notify.BotToken != "" {
		tg, err := error_notificator.NewTelegramInfraFromToken(cfg.Notify.BotToken, cfg.Notify.ChatIDs)
		if err != nil {
			return fmt.Errorf("init error notifications: %w", err)
		}
		notifyInfra = tg
	}

	// =========================================================================
	// SERVICES
	// =========================================================================

	errService := error_notificator.NewService(notifyInfra)
	sttService := transcription.NewService(sttEngine, cfg.Transcription.Provider, cfg.GatewayTimeout)
	ttsService := synthesis.NewService(ttsEngine, cfg.Synthesis.Provider, cfg.GatewayTimeout)
	uploadService := upload.NewService(sttService, cfg.StagingDir, errService)
	sessionManager := session.NewManager(ttsService, translation.NewEcho(), zl, errService)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	delivery.RegisterRoutes(
		r,
		delivery.NewLanguageHandler(),
		delivery.NewSpeechHandler(uploadService, cfg.MaxUploadBytes, zl),
		delivery.NewSessionHandler(sessionManager, cfg.CORSOrigins, zl),
		cfg.UploadRateLimit,
	)

	// =========================================================================
	// START SERVER
	// =========================================================================

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Log(logger.LogEntry{
			Level:   "info",
			Message: fmt.Sprintf("listening at %s (stt=%s, tts=%s)", srv.Addr, cfg.Transcription.Provider, cfg.Synthesis.Provider),
			Service: serviceName,
		})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zl.Log(logger.LogEntry{Level: "info", Message: "shutting down", Service: serviceName})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// hijacked websocket conns are not tracked by http.Server
	sessionManager.Shutdown()
	return srv.Shutdown(shutdownCtx)
}

func newTranscriptionEngine(cfg config.Transcription) (transcription.Engine, error) {
	switch cfg.Provider {
	case config.ProviderGroq:
		model := cfg.Model
		if model == "" {
			model = transcription.DefaultGroqModel
		}
		return transcription.NewWhisperClient(cfg.GroqAPIKey, cfg.GroqBaseURL, model), nil
	case config.ProviderOpenAI:
		model := cfg.Model
		if model == "" {
			model = transcription.DefaultOpenAIModel
		}
		return transcription.NewWhisperClient(cfg.OpenAIKey, "", model), nil
	case config.ProviderDeepgram:
		return transcription.NewDeepgramClient(cfg.DeepgramKey), nil
	}
	return nil, fmt.Errorf("unknown transcription provider %q", cfg.Provider)
}

func newSynthesisEngine(cfg config.Synthesis) (synthesis.Engine, error) {
	switch cfg.Provider {
	case config.ProviderGoogle:
		return synthesis.NewGoogleTTS(), nil
	case config.ProviderElevenLabs:
		return synthesis.NewElevenLabsClient(cfg.ElevenLabsKey, cfg.ElevenLabsVoice), nil
	case config.ProviderOpenAI:
		return synthesis.NewOpenAISpeech(cfg.OpenAIKey, "", cfg.OpenAIVoice), nil
	}
	return nil, fmt.Errorf("unknown synthesis provider %q", cfg.Provider)
}
