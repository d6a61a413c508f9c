package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGroq       = "groq"
	ProviderOpenAI     = "openai"
	ProviderDeepgram   = "deepgram"
	ProviderGoogle     = "google"
	ProviderElevenLabs = "elevenlabs"
)

type Transcription struct {
	Provider    string
	GroqAPIKey  string
	GroqBaseURL string
	OpenAIKey   string
	DeepgramKey string
	Model       string
}

type Synthesis struct {
	Provider        string
	ElevenLabsKey   string
	ElevenLabsVoice string
	OpenAIKey       string
	OpenAIVoice     string
}

type Notify struct {
	BotToken string
	ChatIDs  []int64
}

type Config struct {
	Port            string
	Transcription   Transcription
	Synthesis       Synthesis
	Notify          Notify
	GatewayTimeout  time.Duration
	StagingDir      string
	MaxUploadBytes  int64
	CORSOrigins     []string
	UploadRateLimit int
}

// Load reads the environment (and a .env file when present). It fails when a
// credential required by the selected providers is missing.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port: getenv("PORT", "8000"),
		Transcription: Transcription{
			Provider:    strings.ToLower(getenv("TRANSCRIPTION_PROVIDER", ProviderGroq)),
			GroqAPIKey:  os.Getenv("GROQ_API_KEY"),
			GroqBaseURL: getenv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
			DeepgramKey: os.Getenv("DEEPGRAM_API_KEY"),
			Model:       os.Getenv("TRANSCRIPTION_MODEL"),
		},
		Synthesis: Synthesis{
			Provider:        strings.ToLower(getenv("SYNTHESIS_PROVIDER", ProviderGoogle)),
			ElevenLabsKey:   os.Getenv("ELEVENLABS_API_KEY"),
			ElevenLabsVoice: os.Getenv("ELEVENLABS_VOICE_ID"),
			OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
			OpenAIVoice:     getenv("OPENAI_TTS_VOICE", "alloy"),
		},
		Notify: Notify{
			BotToken: os.Getenv("NOTIFY_BOT_TOKEN"),
		},
		StagingDir:  getenv("STAGING_DIR", os.TempDir()),
		CORSOrigins: splitList(getenv("CORS_ORIGINS", "http://localhost:5173,http://localhost:5174")),
	}

	var err error
	if cfg.GatewayTimeout, err = time.ParseDuration(getenv("GATEWAY_TIMEOUT", "30s")); err != nil {
		return nil, fmt.Errorf("GATEWAY_TIMEOUT: %w", err)
	}
	if cfg.MaxUploadBytes, err = strconv.ParseInt(getenv("MAX_UPLOAD_BYTES", "26214400"), 10, 64); err != nil {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES: %w", err)
	}
	if cfg.UploadRateLimit, err = strconv.Atoi(getenv("UPLOAD_RATE_LIMIT", "30")); err != nil {
		return nil, fmt.Errorf("UPLOAD_RATE_LIMIT: %w", err)
	}
	for _, raw := range splitList(os.Getenv("NOTIFY_CHAT_IDS")) {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("NOTIFY_CHAT_IDS: %w", err)
		}
		cfg.Notify.ChatIDs = append(cfg.Notify.ChatIDs, id)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Transcription.Provider {
	case ProviderGroq:
		if c.Transcription.GroqAPIKey == "" {
			return fmt.Errorf("GROQ_API_KEY environment variable is not set")
		}
	case ProviderOpenAI:
		if c.Transcription.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
	case ProviderDeepgram:
		if c.Transcription.DeepgramKey == "" {
			return fmt.Errorf("DEEPGRAM_API_KEY environment variable is not set")
		}
	default:
		return fmt.Errorf("unknown TRANSCRIPTION_PROVIDER %q", c.Transcription.Provider)
	}

	switch c.Synthesis.Provider {
	case ProviderGoogle:
	case ProviderElevenLabs:
		if c.Synthesis.ElevenLabsKey == "" {
			return fmt.Errorf("ELEVENLABS_API_KEY environment variable is not set")
		}
	case ProviderOpenAI:
		if c.Synthesis.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
	default:
		return fmt.Errorf("unknown SYNTHESIS_PROVIDER %q", c.Synthesis.Provider)
	}

	if c.Notify.BotToken != "" && len(c.Notify.ChatIDs) == 0 {
		return fmt.Errorf("NOTIFY_CHAT_IDS must be set together with NOTIFY_BOT_TOKEN")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
