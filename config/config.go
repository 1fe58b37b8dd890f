package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel int `yaml:"log_level"`

	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Renderer RendererConfig `yaml:"renderer"`
	Upload   UploadConfig   `yaml:"upload"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type StorageConfig struct {
	// Type of storage: "local" or "gcs"
	Type string `yaml:"type"`

	// Local storage options
	OutputDir string `yaml:"output_dir"`

	// GCS options
	Bucket          string `yaml:"bucket"`
	ObjectPrefix    string `yaml:"object_prefix"`
	CredentialsFile string `yaml:"credentials_file"`

	// Base URL assets are served from; empty means backend-native URLs
	PublicBaseURL string `yaml:"public_base_url"`
}

type RendererConfig struct {
	BaseURL               string `yaml:"base_url"`
	PollIntervalSeconds   int    `yaml:"poll_interval_seconds"`
	MaxPollFailures       int    `yaml:"max_poll_failures"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
}

type UploadConfig struct {
	MaxSizeMB int64 `yaml:"max_size_mb"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config *Config

	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}

	// Set defaults if not provided
	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}

	if config.Storage.Type == "" {
		config.Storage.Type = "local"
	}

	if config.Storage.OutputDir == "" {
		config.Storage.OutputDir = "assets"
	}

	if config.Renderer.BaseURL == "" {
		config.Renderer.BaseURL = "http://localhost:9090"
	}

	if config.Renderer.PollIntervalSeconds <= 0 {
		config.Renderer.PollIntervalSeconds = 2
	}

	if config.Renderer.MaxPollFailures <= 0 {
		config.Renderer.MaxPollFailures = 5
	}

	if config.Renderer.RequestTimeoutSeconds <= 0 {
		config.Renderer.RequestTimeoutSeconds = 30
	}

	if config.Upload.MaxSizeMB <= 0 {
		config.Upload.MaxSizeMB = 500
	}

	return config, nil
}
