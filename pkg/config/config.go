// Package config loads mediabox configuration from an optional YAML file
// overlaid with environment variables.
//
// Environment files are loaded first: ENV_FILE when set, otherwise
// .env.local followed by .env. Values already present in the process
// environment are never overwritten by a file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when CONFIG_PATH is unset.
const DefaultPath = "config.yml"

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Data     DataConfig     `yaml:"data"`
	Tools    ToolsConfig    `yaml:"tools"`
	Services ServicesConfig `yaml:"services"`
	Archive  ArchiveConfig  `yaml:"archive"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" env:"MEDIABOX_ADDR"`
	// MaxMemory bounds the part of a multipart form held in RAM while parsing.
	MaxMemory         int64         `yaml:"max_memory" env:"MEDIABOX_MAX_MEMORY"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"MEDIABOX_READ_HEADER_TIMEOUT"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" env:"MEDIABOX_SHUTDOWN_TIMEOUT"`
}

type DataConfig struct {
	Dir string `yaml:"dir" env:"MEDIABOX_DATA_DIR"`
}

type ToolsConfig struct {
	FFmpeg  string `yaml:"ffmpeg" env:"FFMPEG_PATH"`
	TempDir string `yaml:"temp_dir" env:"MEDIABOX_TEMP_DIR"`
}

type ServicesConfig struct {
	BibleAPI    string        `yaml:"bible_api" env:"BIBLE_API_URL"`
	TinyURLAPI  string        `yaml:"tinyurl_api" env:"TINYURL_API_URL"`
	RemoveBgAPI string        `yaml:"remove_bg_api" env:"REMOVE_BG_API_URL"`
	RemoveBgKey string        `yaml:"remove_bg_key" env:"REMOVE_BG_API_KEY"`
	HTTPTimeout time.Duration `yaml:"http_timeout" env:"MEDIABOX_HTTP_TIMEOUT"`
}

// ArchiveConfig enables S3 archiving of generated PDFs when Bucket is set.
type ArchiveConfig struct {
	Bucket string        `yaml:"bucket" env:"ARCHIVE_BUCKET"`
	Region string        `yaml:"region" env:"AWS_REGION"`
	Prefix string        `yaml:"prefix" env:"ARCHIVE_PREFIX"`
	TTL    time.Duration `yaml:"presign_ttl" env:"ARCHIVE_PRESIGN_TTL"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

// Path returns CONFIG_PATH or DefaultPath.
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads the YAML file at path when it exists, applies defaults, then
// applies environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("load environment files: %w", err)
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              ":3000",
			MaxMemory:         32 << 20,
			ReadHeaderTimeout: 30 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Data:  DataConfig{Dir: "data"},
		Tools: ToolsConfig{FFmpeg: "ffmpeg"},
		Services: ServicesConfig{
			BibleAPI:    "https://bible-api.com",
			TinyURLAPI:  "https://tinyurl.com/api-create.php",
			RemoveBgAPI: "https://api.remove.bg/v1.0/removebg",
			HTTPTimeout: 30 * time.Second,
		},
		Archive: ArchiveConfig{
			Region: "us-east-1",
			Prefix: "pdf",
			TTL:    15 * time.Minute,
		},
		Log: LogConfig{Level: "info"},
	}
}

func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}
