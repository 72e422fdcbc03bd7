// Package config gathers settings from .env files and the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mudler/xlog"
)

type Config struct {
	OllamaURL     string
	OllamaModel   string
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	DBPath        string
	ChunkSize     int
	CacheSize     int // 0 = unbounded
	Languages     []string
	LogLevel      string
	LogFormat     string
}

// DefaultEnvFiles lists the env files looked up at startup, in priority order.
func DefaultEnvFiles() []string {
	files := []string{".env", "youtwit.env"}
	if home, err := os.UserHomeDir(); err == nil {
		files = append(files, filepath.Join(home, "youtwit.env"), filepath.Join(home, ".config/youtwit.env"))
	}
	return files
}

// LoadEnvFiles loads the files that exist. Variables already set win over
// file values, and earlier files win over later ones.
func LoadEnvFiles(files ...string) {
	for _, envFile := range files {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		xlog.Debug("env file found, loading environment variables from file", "envFile", envFile)
		if err := godotenv.Load(envFile); err != nil {
			xlog.Error("failed to load environment variables from file", "error", err, "envFile", envFile)
		}
	}
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		OllamaURL:     getenv("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:   getenv("OLLAMA_MODEL", "qwen3:14b"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:   getenv("OPENAI_MODEL", "gpt-4o-mini"),
		DBPath:        getenv("YOUTWIT_DB", "youtwit.db"),
		ChunkSize:     getint("YOUTWIT_CHUNK_SIZE", 100),
		CacheSize:     getint("YOUTWIT_CACHE_SIZE", 0),
		Languages:     getlist("YOUTWIT_LANGUAGES", []string{"en", "es", "de", "pt"}),
		LogLevel:      getenv("YOUTWIT_LOG_LEVEL", "info"),
		LogFormat:     getenv("YOUTWIT_LOG_FORMAT", "text"),
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		xlog.Warn("ignoring invalid integer setting", "key", key, "value", v)
		return def
	}
	return n
}

func getlist(key string, def []string) []string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
