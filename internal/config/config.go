// Package config provides application configuration with multi-source
// priority.
//
// Sources, highest to lowest:
//  1. Environment variables (runtime override)
//  2. Config file (~/.nara/config.yaml or ./config.yaml)
//  3. Default values
//
// The loaded Config is an explicit value handed to constructors; nothing in
// the program reads configuration through package globals after Load.
//
// Security: sensitive fields (API key, database password) are masked in
// MarshalJSON. When adding new secrets, update MarshalJSON.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config stores the full application configuration.
type Config struct {
	// LLM provider configuration
	Provider     string  `mapstructure:"provider" json:"provider"` // "openai", "ollama", "donmi"
	ModelName    string  `mapstructure:"model_name" json:"model_name"`
	Temperature  float64 `mapstructure:"temperature" json:"temperature"`
	MaxTokens    int     `mapstructure:"max_tokens" json:"max_tokens"`
	APIKey       string  `mapstructure:"api_key" json:"api_key"` // SENSITIVE: masked in MarshalJSON
	BaseURL      string  `mapstructure:"base_url" json:"base_url"`
	APIURL       string  `mapstructure:"api_url" json:"api_url"`
	Timeout      int     `mapstructure:"timeout" json:"timeout"` // Seconds per request attempt
	Citation     bool    `mapstructure:"citation" json:"citation"`
	ResponseMode string  `mapstructure:"response_mode" json:"response_mode"`
	SystemPrompt string  `mapstructure:"system_prompt" json:"system_prompt"`

	// UI language ("th" or "en")
	Language string `mapstructure:"language" json:"language"`

	// RAG configuration. RAGKeywords overrides the built-in retrieval
	// trigger terms; empty keeps the defaults.
	RAGKeywords         []string `mapstructure:"rag_keywords" json:"rag_keywords"`
	DocumentsDir        string   `mapstructure:"documents_dir" json:"documents_dir"`
	TopK                int      `mapstructure:"top_k" json:"top_k"`
	SimilarityThreshold float64  `mapstructure:"similarity_threshold" json:"similarity_threshold"`
	ChunkSize           int      `mapstructure:"chunk_size" json:"chunk_size"`
	ChunkOverlap        int      `mapstructure:"chunk_overlap" json:"chunk_overlap"`
	EmbedderModel       string   `mapstructure:"embedder_model" json:"embedder_model"`
	OllamaHost          string   `mapstructure:"ollama_host" json:"ollama_host"`

	// PostgreSQL configuration
	PostgresHost     string `mapstructure:"postgres_host" json:"postgres_host"`
	PostgresPort     int    `mapstructure:"postgres_port" json:"postgres_port"`
	PostgresUser     string `mapstructure:"postgres_user" json:"postgres_user"`
	PostgresPassword string `mapstructure:"postgres_password" json:"postgres_password"` // SENSITIVE: masked in MarshalJSON
	PostgresDBName   string `mapstructure:"postgres_db_name" json:"postgres_db_name"`
	PostgresSSLMode  string `mapstructure:"postgres_ssl_mode" json:"postgres_ssl_mode"`

	// Voice configuration. TTSCommand/STTCommand name external tools; the
	// STT tool must print one transcript line to stdout.
	VoiceEnabled  bool   `mapstructure:"voice_enabled" json:"voice_enabled"`
	VoiceLanguage string `mapstructure:"voice_language" json:"voice_language"`
	TTSCommand    string `mapstructure:"tts_command" json:"tts_command"`
	STTCommand    string `mapstructure:"stt_command" json:"stt_command"`

	// Logging
	LogLevel string `mapstructure:"log_level" json:"log_level"`
	LogJSON  bool   `mapstructure:"log_json" json:"log_json"`
}

// Load reads configuration from all sources and validates it.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".nara")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	setDefaults(v)
	bindEnvVariables(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.parseDatabaseURL(); err != nil {
		return nil, fmt.Errorf("parsing DATABASE_URL: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// LLM defaults
	v.SetDefault("provider", "donmi")
	v.SetDefault("model_name", "")
	v.SetDefault("temperature", 0.7)
	v.SetDefault("max_tokens", 2000)
	v.SetDefault("timeout", 60)
	v.SetDefault("citation", false)
	v.SetDefault("response_mode", "blocking")

	v.SetDefault("language", "th")

	// RAG defaults
	v.SetDefault("documents_dir", "./documents")
	v.SetDefault("top_k", 5)
	v.SetDefault("similarity_threshold", 0.7)
	v.SetDefault("chunk_size", 1000)
	v.SetDefault("chunk_overlap", 200)
	v.SetDefault("embedder_model", "nomic-embed-text")
	v.SetDefault("ollama_host", "http://localhost:11434")

	// PostgreSQL defaults
	v.SetDefault("postgres_host", "localhost")
	v.SetDefault("postgres_port", 5432)
	v.SetDefault("postgres_user", "nara")
	v.SetDefault("postgres_password", "nara_dev_password")
	v.SetDefault("postgres_db_name", "nara")
	v.SetDefault("postgres_ssl_mode", "disable")

	// Voice defaults
	v.SetDefault("voice_enabled", false)
	v.SetDefault("voice_language", "th-TH")
	v.SetDefault("tts_command", "espeak-ng")
	v.SetDefault("stt_command", "")

	// Logging defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)
}

func bindEnvVariables(v *viper.Viper) {
	// Hardcoded keys cannot fail to bind; a panic here is a bug.
	mustBind := func(key, envVar string) {
		if err := v.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("provider", "NARA_PROVIDER")
	mustBind("model_name", "NARA_MODEL_NAME")
	mustBind("api_key", "NARA_API_KEY")
	mustBind("api_url", "NARA_API_URL")
	mustBind("base_url", "NARA_BASE_URL")
	mustBind("ollama_host", "NARA_OLLAMA_HOST")
	mustBind("language", "NARA_LANG")
	mustBind("documents_dir", "NARA_DOCUMENTS_DIR")
	mustBind("log_level", "NARA_LOG_LEVEL")
}

// parseDatabaseURL overrides the PostgreSQL fields from DATABASE_URL when
// set. The URL form wins over individual settings.
func (c *Config) parseDatabaseURL() error {
	raw := os.Getenv("DATABASE_URL")
	if raw == "" {
		return nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid DATABASE_URL: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return fmt.Errorf("%w: scheme %q", ErrInvalidDatabaseURL, u.Scheme)
	}

	if host := u.Hostname(); host != "" {
		c.PostgresHost = host
	}
	if port := u.Port(); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("%w: port %q", ErrInvalidDatabaseURL, port)
		}
		c.PostgresPort = p
	}
	if u.User != nil {
		c.PostgresUser = u.User.Username()
		if pw, ok := u.User.Password(); ok {
			c.PostgresPassword = pw
		}
	}
	if db := filepath.Base(u.Path); db != "." && db != "/" {
		c.PostgresDBName = db
	}
	if ssl := u.Query().Get("sslmode"); ssl != "" {
		c.PostgresSSLMode = ssl
	}
	return nil
}

// ConnString builds the pgx connection string.
func (c *Config) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.PostgresUser),
		url.QueryEscape(c.PostgresPassword),
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresDBName,
		c.PostgresSSLMode,
	)
}

// RequestTimeout returns the per-attempt timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// maskedValue replaces secret content in serialized output. Full-width
// blocks avoid accidental substring matches against real secret characters.
const maskedValue = "████████"

// maskSecret masks a secret for safe logging. Short secrets are fully
// masked; longer ones keep two characters on each end for debugging.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return maskedValue
	}
	return s[:2] + "<" + maskedValue + ">" + s[len(s)-2:]
}

// MarshalJSON implements json.Marshaler with sensitive fields masked.
func (c Config) MarshalJSON() ([]byte, error) {
	type alias Config
	masked := alias(c)
	masked.APIKey = maskSecret(c.APIKey)
	masked.PostgresPassword = maskSecret(c.PostgresPassword)
	return json.Marshal(masked)
}
