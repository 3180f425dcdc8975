package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when REPORTAUDIT_CONFIG is unset.
const DefaultPath = "reportaudit.yaml"

// Config holds all configuration for reportaudit.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	AI      AIConfig      `yaml:"ai"`
	History HistoryConfig `yaml:"history"`
	Audit   AuditConfig   `yaml:"audit"`
}

type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	Env         string   `yaml:"env"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type AIConfig struct {
	Provider         string        `yaml:"provider"`
	InferenceTimeout time.Duration `yaml:"inference_timeout"`
	Gemini           GeminiConfig  `yaml:"gemini"`
	OpenAI           OpenAIConfig  `yaml:"openai"`
	VLLM             OpenAIConfig  `yaml:"vllm"`
	Ollama           OpenAIConfig  `yaml:"ollama"`
}

type GeminiConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// OpenAIConfig also describes OpenAI-compatible servers (vLLM, Ollama).
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type HistoryConfig struct {
	Backend  string         `yaml:"backend"`
	Slot     string         `yaml:"slot"`
	File     FileConfig     `yaml:"file"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	MySQL    MySQLConfig    `yaml:"mysql"`
	Minio    MinioConfig    `yaml:"minio"`
}

type FileConfig struct {
	Dir string `yaml:"dir"`
}

type RedisConfig struct {
	URL string `yaml:"url"`
}

type PostgresConfig struct {
	URL             string        `yaml:"url"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type MySQLConfig struct {
	DSN string `yaml:"dsn"`
}

type MinioConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Prefix    string `yaml:"prefix"`
	UseSSL    bool   `yaml:"use_ssl"`
}

type AuditConfig struct {
	SingleFlight bool `yaml:"single_flight"`
}

var validProviders = map[string]bool{
	"gemini": true,
	"openai": true,
	"vllm":   true,
	"ollama": true,
	"mock":   true,
}

var validBackends = map[string]bool{
	"file":     true,
	"redis":    true,
	"postgres": true,
	"sqlite":   true,
	"mysql":    true,
	"minio":    true,
	"memory":   true,
}

// Defaults returns the configuration used when neither a file nor the
// environment sets a value.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: "127.0.0.1:8787",
			Env:  "development",
		},
		AI: AIConfig{
			Provider:         "gemini",
			InferenceTimeout: 120 * time.Second,
			Gemini:           GeminiConfig{Model: "gemini-3-pro-preview"},
			OpenAI:           OpenAIConfig{Model: "gpt-4o"},
			VLLM:             OpenAIConfig{BaseURL: "http://localhost:8000/v1"},
			Ollama:           OpenAIConfig{BaseURL: "http://localhost:11434/v1", Model: "llama3"},
		},
		History: HistoryConfig{
			Backend: "file",
			Slot:    "audit_history",
			File:    FileConfig{Dir: defaultDataDir()},
			Postgres: PostgresConfig{
				MaxOpenConns:    5,
				MaxIdleConns:    1,
				ConnMaxLifetime: 5 * time.Minute,
			},
			SQLite: SQLiteConfig{Path: "reportaudit.db"},
			Minio:  MinioConfig{Bucket: "reportaudit", Prefix: "history"},
		},
		Audit: AuditConfig{SingleFlight: true},
	}
}

// Load reads the YAML file at path (a missing file is not an error), applies
// environment overrides and returns a validated Config. An empty path means
// REPORTAUDIT_CONFIG, falling back to DefaultPath.
func Load(path string) (*Config, error) {
	if path == "" {
		path = envString("REPORTAUDIT_CONFIG", DefaultPath)
	}

	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Addr = envString("REPORTAUDIT_ADDR", c.Server.Addr)
	c.Server.Env = envString("REPORTAUDIT_ENV", c.Server.Env)
	c.Server.CORSOrigins = envList("REPORTAUDIT_CORS_ORIGINS", c.Server.CORSOrigins)

	c.AI.Provider = envString("AI_PROVIDER", c.AI.Provider)
	c.AI.InferenceTimeout = envDurationSecs("AI_INFERENCE_TIMEOUT_SECS", c.AI.InferenceTimeout)
	c.AI.Gemini.APIKey = envString("GEMINI_API_KEY", envString("API_KEY", c.AI.Gemini.APIKey))
	c.AI.Gemini.Model = envString("GEMINI_MODEL", c.AI.Gemini.Model)
	c.AI.Gemini.BaseURL = envString("GEMINI_BASE_URL", c.AI.Gemini.BaseURL)
	c.AI.OpenAI.APIKey = envString("OPENAI_API_KEY", c.AI.OpenAI.APIKey)
	c.AI.OpenAI.Model = envString("OPENAI_MODEL", c.AI.OpenAI.Model)
	c.AI.OpenAI.BaseURL = envString("OPENAI_BASE_URL", c.AI.OpenAI.BaseURL)
	c.AI.VLLM.BaseURL = envString("VLLM_BASE_URL", c.AI.VLLM.BaseURL)
	c.AI.VLLM.Model = envString("VLLM_MODEL", c.AI.VLLM.Model)
	c.AI.VLLM.APIKey = envString("VLLM_API_KEY", c.AI.VLLM.APIKey)
	c.AI.Ollama.BaseURL = envString("OLLAMA_BASE_URL", c.AI.Ollama.BaseURL)
	c.AI.Ollama.Model = envString("OLLAMA_MODEL", c.AI.Ollama.Model)

	c.History.Backend = envString("HISTORY_BACKEND", c.History.Backend)
	c.History.Slot = envString("HISTORY_SLOT", c.History.Slot)
	c.History.File.Dir = envString("HISTORY_FILE_DIR", c.History.File.Dir)
	c.History.Redis.URL = envString("REDIS_URL", c.History.Redis.URL)
	c.History.Postgres.URL = envString("DATABASE_URL", c.History.Postgres.URL)
	c.History.Postgres.MaxOpenConns = envInt("DATABASE_MAX_OPEN_CONNS", c.History.Postgres.MaxOpenConns)
	c.History.Postgres.MaxIdleConns = envInt("DATABASE_MAX_IDLE_CONNS", c.History.Postgres.MaxIdleConns)
	c.History.Postgres.ConnMaxLifetime = envDuration("DATABASE_CONN_MAX_LIFETIME", c.History.Postgres.ConnMaxLifetime)
	c.History.SQLite.Path = envString("SQLITE_PATH", c.History.SQLite.Path)
	c.History.MySQL.DSN = envString("MYSQL_DSN", c.History.MySQL.DSN)
	c.History.Minio.Endpoint = envString("MINIO_ENDPOINT", c.History.Minio.Endpoint)
	c.History.Minio.AccessKey = envString("MINIO_ACCESS_KEY", c.History.Minio.AccessKey)
	c.History.Minio.SecretKey = envString("MINIO_SECRET_KEY", c.History.Minio.SecretKey)
	c.History.Minio.Bucket = envString("MINIO_BUCKET", c.History.Minio.Bucket)
	c.History.Minio.Region = envString("MINIO_REGION", c.History.Minio.Region)
	c.History.Minio.Prefix = envString("MINIO_PREFIX", c.History.Minio.Prefix)
	c.History.Minio.UseSSL = envBool("MINIO_USE_SSL", c.History.Minio.UseSSL)

	c.Audit.SingleFlight = envBool("AUDIT_SINGLE_FLIGHT", c.Audit.SingleFlight)
}

func (c *Config) validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("REPORTAUDIT_ADDR is required")
	}

	if c.AI.Provider == "" {
		return fmt.Errorf("AI_PROVIDER is required")
	}
	if !validProviders[c.AI.Provider] {
		return fmt.Errorf("AI_PROVIDER must be one of gemini, openai, vllm, ollama, mock; got %q", c.AI.Provider)
	}
	if c.AI.InferenceTimeout < 0 {
		return fmt.Errorf("AI_INFERENCE_TIMEOUT_SECS must not be negative")
	}
	if c.AI.Provider == "vllm" && c.AI.VLLM.Model == "" {
		return fmt.Errorf("VLLM_MODEL is required when AI_PROVIDER is vllm")
	}

	if c.History.Slot == "" {
		return fmt.Errorf("HISTORY_SLOT is required")
	}
	if !validBackends[c.History.Backend] {
		return fmt.Errorf("HISTORY_BACKEND must be one of file, redis, postgres, sqlite, mysql, minio, memory; got %q", c.History.Backend)
	}

	switch c.History.Backend {
	case "file":
		if c.History.File.Dir == "" {
			return fmt.Errorf("HISTORY_FILE_DIR is required when HISTORY_BACKEND is file")
		}
	case "redis":
		if c.History.Redis.URL == "" {
			return fmt.Errorf("REDIS_URL is required when HISTORY_BACKEND is redis")
		}
	case "postgres":
		if c.History.Postgres.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when HISTORY_BACKEND is postgres")
		}
		if !strings.HasPrefix(c.History.Postgres.URL, "postgres://") && !strings.HasPrefix(c.History.Postgres.URL, "postgresql://") {
			return fmt.Errorf("DATABASE_URL must start with postgres:// or postgresql://")
		}
	case "sqlite":
		if c.History.SQLite.Path == "" {
			return fmt.Errorf("SQLITE_PATH is required when HISTORY_BACKEND is sqlite")
		}
	case "mysql":
		if c.History.MySQL.DSN == "" {
			return fmt.Errorf("MYSQL_DSN is required when HISTORY_BACKEND is mysql")
		}
	case "minio":
		if c.History.Minio.Endpoint == "" || c.History.Minio.Bucket == "" {
			return fmt.Errorf("MINIO_ENDPOINT and MINIO_BUCKET are required when HISTORY_BACKEND is minio")
		}
	}

	return nil
}

// FallbackCredential returns the process-wide credential of the configured
// provider, used when a submission carries none.
func (c AIConfig) FallbackCredential() string {
	switch c.Provider {
	case "gemini":
		return c.Gemini.APIKey
	case "openai":
		return c.OpenAI.APIKey
	case "vllm":
		return c.VLLM.APIKey
	case "ollama", "mock":
		// Local and test providers accept any non-empty token.
		return c.Provider
	default:
		return ""
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + string(os.PathSeparator) + "reportaudit"
	}
	return ".reportaudit"
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

func envList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

func envDurationSecs(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return time.Duration(secs) * time.Second
}
