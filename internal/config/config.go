package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config is the resolved client configuration.
type Config struct {
	APIURL         string
	LogFile        string
	LogLevel       string
	RequestTimeout time.Duration
	StatusPoll     time.Duration
	ChunkSize      int
	ChunkCount     int
	PageSize       int
}

const (
	defaultConfigPath = "~/.config/ragdesk/config.toml"
	defaultLogFile    = "~/.local/state/ragdesk/ragdesk.log"
	defaultAPIURL     = "127.0.0.1:5000"
	defaultLogLevel   = "info"
	defaultStatusPoll = 10 * time.Second
	defaultChunkSize  = 1000
	defaultChunkCount = 5
	defaultPageSize   = 10
)

// Environment overrides, applied after the file.
const (
	EnvAPIURL   = "RAGDESK_API_URL"
	EnvLogFile  = "RAGDESK_LOG_FILE"
	EnvLogLevel = "RAGDESK_LOG_LEVEL"
)

// fileConfig is the on-disk shape shared by TOML and YAML.
type fileConfig struct {
	APIURL         string `toml:"api_url" yaml:"api_url"`
	LogFile        string `toml:"log_file" yaml:"log_file"`
	LogLevel       string `toml:"log_level" yaml:"log_level"`
	RequestTimeout int    `toml:"request_timeout" yaml:"request_timeout"`
	StatusPoll     int    `toml:"status_poll" yaml:"status_poll"`
	ChunkSize      int    `toml:"chunk_size" yaml:"chunk_size"`
	ChunkCount     int    `toml:"chunk_count" yaml:"chunk_count"`
	PageSize       int    `toml:"page_size" yaml:"page_size"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:     defaultAPIURL,
		LogFile:    mustExpand(defaultLogFile),
		LogLevel:   defaultLogLevel,
		StatusPoll: defaultStatusPoll,
		ChunkSize:  defaultChunkSize,
		ChunkCount: defaultChunkCount,
		PageSize:   defaultPageSize,
	}
}

// Load reads the config file at path (or the default location), then applies
// .env and environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}

	raw, err := readFile(resolved)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if raw.RequestTimeout > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeout) * time.Second
	}
	if raw.StatusPoll > 0 {
		cfg.StatusPoll = time.Duration(raw.StatusPoll) * time.Second
	}
	if raw.ChunkSize > 0 {
		cfg.ChunkSize = raw.ChunkSize
	}
	if raw.ChunkCount > 0 {
		cfg.ChunkCount = raw.ChunkCount
	}
	if raw.PageSize > 0 {
		cfg.PageSize = raw.PageSize
	}

	applyEnv(&cfg)
	return cfg, nil
}

// DefaultChunkSize renders the chunk size prefilled in the ingest form.
func (c Config) DefaultChunkSize() string {
	if c.ChunkSize <= 0 {
		return ""
	}
	return strconv.Itoa(c.ChunkSize)
}

// DefaultChunkCount renders the chunk count prefilled in the chat form.
func (c Config) DefaultChunkCount() string {
	if c.ChunkCount <= 0 {
		return strconv.Itoa(defaultChunkCount)
	}
	return strconv.Itoa(c.ChunkCount)
}

func readFile(path string) (fileConfig, error) {
	var raw fileConfig
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return raw, nil
		}
		return raw, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return raw, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = toml.Unmarshal(data, &raw)
	}
	if err != nil {
		return fileConfig{}, fmt.Errorf("parse config: %w", err)
	}
	return raw, nil
}

// loadDotEnv populates the environment from path without overriding values
// that are already set. A missing file is ignored.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
