package config

import (
	"fmt"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env             string `yaml:"env" env:"ENV" env-default:"local"`
	BitbucketConfig `yaml:"bitbucket"`
	AssistantConfig `yaml:"assistant"`
}

type BitbucketConfig struct {
	BaseURL     string `yaml:"base_url" env:"BITBUCKET_API_URL" env-default:"https://api.bitbucket.org/2.0"`
	Username    string `yaml:"username" env:"BITBUCKET_USERNAME"`
	AppPassword string `yaml:"app_password" env:"BITBUCKET_APP_PASSWORD"`
	// Token takes precedence over Username/AppPassword when set.
	Token     string `yaml:"token" env:"BITBUCKET_TOKEN"`
	Workspace string `yaml:"workspace" env:"BITBUCKET_WORKSPACE"`
	RepoSlug  string `yaml:"repo_slug" env:"BITBUCKET_REPO_SLUG"`
}

type AssistantConfig struct {
	APIKey  string `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model   string `yaml:"model" env:"GEMINI_MODEL" env-default:"gemini-2.5-flash"`
	BaseURL string `yaml:"base_url" env:"GEMINI_BASE_URL"`
}

// Read builds the config from the environment. When CONFIG_PATH is set the
// YAML file is read first and environment variables override its values.
func Read() (*Config, error) {
	const op = "config.Read"

	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return &cfg, nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: config file doesn't exist: %s", op, configPath)
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cfg, nil
}

func Load() *Config {
	cfg, err := Read()
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}
