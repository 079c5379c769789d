package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "CAMPAIGNER"

type Config struct {
	Server    Server    `mapstructure:"server"`
	Log       Log       `mapstructure:"log"`
	LLM       LLM       `mapstructure:"llm"`
	Agent     Agent     `mapstructure:"agent"`
	Campaigns Campaigns `mapstructure:"campaigns"`
}

type Server struct {
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type LLM struct {
	Model  string `mapstructure:"model"`
	APIKey string `mapstructure:"api_key"`
}

type Agent struct {
	MaxIterations int    `mapstructure:"max_iterations"`
	SkillsDir     string `mapstructure:"skills_dir"`
}

type Campaigns struct {
	Capacity       int           `mapstructure:"capacity"`
	StatusTimeout  time.Duration `mapstructure:"status_timeout"`
	StreamInterval time.Duration `mapstructure:"stream_interval"`
}

// New returns a viper instance with defaults and environment bindings.
// CAMPAIGNER_SERVER_PORT overrides server.port, and so on; OPENAI_API_KEY
// is accepted for llm.api_key.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", true)
	v.SetDefault("llm.model", "gpt-4o")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("agent.max_iterations", 5)
	v.SetDefault("agent.skills_dir", "")
	v.SetDefault("campaigns.capacity", 1000)
	v.SetDefault("campaigns.status_timeout", 5*time.Second)
	v.SetDefault("campaigns.stream_interval", time.Second)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("llm.api_key", EnvPrefix+"_LLM_API_KEY", "OPENAI_API_KEY")
	return v
}

// Load reads file into v when set and decodes the result.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be positive, got %d", c.Server.Port))
	}
	if c.Campaigns.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("campaigns.capacity must be positive, got %d", c.Campaigns.Capacity))
	}
	if c.Campaigns.StreamInterval <= 0 {
		errs = append(errs, errors.New("campaigns.stream_interval must be positive"))
	}
	if c.Campaigns.StatusTimeout <= 0 {
		errs = append(errs, errors.New("campaigns.status_timeout must be positive"))
	}
	return errors.Join(errs...)
}
