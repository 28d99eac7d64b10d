package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the task agent.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	LLM    LLMConfig    `mapstructure:"llm"`
	Search SearchConfig `mapstructure:"search"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Listen string `mapstructure:"listen"`
}

// LLMConfig contains the external completion provider settings. An empty
// APIKey is not an error: the agent downgrades to its heuristic planner and
// static summarizer.
type LLMConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// SearchConfig contains the instant-answer search API settings.
type SearchConfig struct {
	Endpoint  string        `mapstructure:"endpoint"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

func (s ServerConfig) Validate() error {
	if strings.TrimSpace(s.Listen) == "" {
		return fmt.Errorf("server.listen must not be empty")
	}
	return nil
}

func (l LLMConfig) Validate() error {
	if l.APIKey != "" && strings.TrimSpace(l.Model) == "" {
		return fmt.Errorf("llm.model required when llm.api_key is set")
	}
	return nil
}

// LoadConfig loads config from file, with TASKPILOT_* environment overrides
// on top. A missing config file is fine; every key has a default.
func LoadConfig(path string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.listen", ":8080")
	viper.SetDefault("llm.base_url", "https://api.openai.com/v1")
	viper.SetDefault("llm.model", "gpt-4o-mini")
	viper.SetDefault("llm.temperature", 0.2)
	viper.SetDefault("llm.max_tokens", 2000)
	viper.SetDefault("llm.timeout", 30*time.Second)
	viper.SetDefault("search.endpoint", "https://api.duckduckgo.com/")
	viper.SetDefault("search.user_agent", "taskpilot/1.0 (+https://github.com/taskpilot)")
	viper.SetDefault("search.timeout", 10*time.Second)

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("TASKPILOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	// Honor the conventional OpenAI variable as well.
	_ = viper.BindEnv("llm.api_key", "TASKPILOT_LLM_API_KEY", "OPENAI_API_KEY")

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := config.Server.Validate(); err != nil {
		return nil, err
	}
	if err := config.LLM.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}
