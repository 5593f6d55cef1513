// Package config holds the service configuration: built-in defaults,
// optionally overlaid by a YAML file (MURMUR_CONFIG) and environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"murmur/audio"
)

// Config is the complete service configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Audio  AudioConfig  `yaml:"audio"`
	Speech SpeechConfig `yaml:"speech"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// AudioConfig contains the validation and analysis parameters.
type AudioConfig struct {
	SyncCeilingBytes   int64  `yaml:"sync_size_ceiling_bytes"`
	AsyncCeilingBytes  int64  `yaml:"async_size_ceiling_bytes"`
	FallbackSampleRate int    `yaml:"fallback_sample_rate_hz"`
	UploadDir          string `yaml:"upload_dir"`
}

// SpeechConfig contains speech backend settings.
type SpeechConfig struct {
	CredentialsPath string `yaml:"credentials_path"`
	LanguageCode    string `yaml:"language_code"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Audio: AudioConfig{
			SyncCeilingBytes:   audio.DefaultSyncCeilingBytes,
			AsyncCeilingBytes:  audio.DefaultAsyncCeilingBytes,
			FallbackSampleRate: audio.DefaultFallbackSampleRate,
			UploadDir:          filepath.Join(os.TempDir(), "murmur-uploads"),
		},
		Speech: SpeechConfig{
			LanguageCode: "en-US",
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides and validates the result. An empty path skips the
// file and uses defaults plus environment only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds the configuration without a file: defaults plus environment
// overrides. MURMUR_CONFIG, when set, names a YAML file to load first.
func FromEnv() (*Config, error) {
	return Load(os.Getenv("MURMUR_CONFIG"))
}

func (c *Config) applyEnv() {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
	if dir := os.Getenv("MURMUR_UPLOAD_DIR"); dir != "" {
		c.Audio.UploadDir = dir
	}
	if lang := os.Getenv("MURMUR_LANGUAGE"); lang != "" {
		c.Speech.LanguageCode = lang
	}
	if creds := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); creds != "" && c.Speech.CredentialsPath == "" {
		c.Speech.CredentialsPath = creds
	}
}

// Validate checks the configuration for internally consistent values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Audio.SyncCeilingBytes <= 0 {
		return fmt.Errorf("sync size ceiling must be positive, got %d", c.Audio.SyncCeilingBytes)
	}
	if c.Audio.AsyncCeilingBytes < c.Audio.SyncCeilingBytes {
		return fmt.Errorf("async size ceiling (%d) must be at least the sync ceiling (%d)",
			c.Audio.AsyncCeilingBytes, c.Audio.SyncCeilingBytes)
	}
	if c.Audio.FallbackSampleRate <= 0 {
		return fmt.Errorf("fallback sample rate must be positive, got %d", c.Audio.FallbackSampleRate)
	}
	if c.Speech.LanguageCode == "" {
		return fmt.Errorf("language code must not be empty")
	}
	return nil
}

// Limits returns the size ceilings in the form the audio package consumes.
func (c *Config) Limits() audio.Limits {
	return audio.Limits{
		SyncCeilingBytes:  c.Audio.SyncCeilingBytes,
		AsyncCeilingBytes: c.Audio.AsyncCeilingBytes,
	}
}
