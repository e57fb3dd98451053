package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalid           = errors.New("invalid config")
	ErrMissingCredential = errors.New("missing credential")
)

const apiKeyEnv = "OPENAI_API_KEY"

const (
	defaultSplitMethod    = "recursive"
	defaultChunkSize      = 1000
	defaultChunkOverlap   = 200
	defaultLLMModel       = "gpt-3.5-turbo"
	defaultEmbeddingModel = "text-embedding-ada-002"
	defaultTopK           = 4
	defaultFolderPath     = "./db"
	defaultIndexName      = "index"
	defaultPromptCategory = "default"
	defaultPromptStyle    = "Default"
	defaultMode           = "conversational"
)

type Config struct {
	SplitMethod    string  `yaml:"split_method" validate:"oneof=recursive fixed"`
	ChunkSize      int     `yaml:"chunk_size" validate:"gt=0"`
	ChunkOverlap   int     `yaml:"chunk_overlap" validate:"gte=0,ltfield=ChunkSize"`
	LLMModel       string  `yaml:"llm_model" validate:"required"`
	EmbeddingModel string  `yaml:"embedding_model" validate:"required"`
	Temperature    float64 `yaml:"temperature" validate:"gte=0,lte=2"`
	TopK           int     `yaml:"top_k" validate:"gte=1"`
	FolderPath     string  `yaml:"folder_path" validate:"required"`
	IndexName      string  `yaml:"index_name" validate:"required"`
	PromptCategory string  `yaml:"prompt_category" validate:"required"`
	PromptStyle    string  `yaml:"prompt_style" validate:"required"`
	Mode           string  `yaml:"mode" validate:"oneof=conversational single"`
	EnvPath        string  `yaml:"env_path"`

	apiKey string
}

// Load reads the YAML config, pulls the provider credential from the
// environment (optionally via a .env file) and validates the result.
// Defaults are in place before unmarshalling, so absent keys keep them
// while explicit values, including zero, survive as written.
// A missing credential is a setup-time failure, not something discovered on
// the first provider call.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if cfg.EnvPath != "" {
		if err := godotenv.Load(cfg.EnvPath); err != nil {
			return nil, fmt.Errorf("%w: loading env file: %v", ErrInvalid, err)
		}
	} else {
		// Optional .env in the working directory.
		_ = godotenv.Load()
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	cfg.apiKey = os.Getenv(apiKeyEnv)
	if cfg.apiKey == "" {
		return nil, fmt.Errorf("%w: %s is not set", ErrMissingCredential, apiKeyEnv)
	}
	return &cfg, nil
}

func defaultConfig() Config {
	return Config{
		SplitMethod:    defaultSplitMethod,
		ChunkSize:      defaultChunkSize,
		ChunkOverlap:   defaultChunkOverlap,
		LLMModel:       defaultLLMModel,
		EmbeddingModel: defaultEmbeddingModel,
		TopK:           defaultTopK,
		FolderPath:     defaultFolderPath,
		IndexName:      defaultIndexName,
		PromptCategory: defaultPromptCategory,
		PromptStyle:    defaultPromptStyle,
		Mode:           defaultMode,
	}
}

// APIKey returns the provider credential resolved at load time.
func (c *Config) APIKey() string {
	return c.apiKey
}
