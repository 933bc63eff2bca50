package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP   HTTPConfig   `yaml:"http"`
	LLM    LLMConfig    `yaml:"llm"`
	Advice AdviceConfig `yaml:"advice"`
	Quota  QuotaConfig  `yaml:"quota"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string        `yaml:"address"`
	ReadTimeout    time.Duration `yaml:"readTimeout"`
	WriteTimeout   time.Duration `yaml:"writeTimeout"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
}

// LLMConfig contains Gemini settings.
type LLMConfig struct {
	APIKey       string        `yaml:"apiKey"`
	Model        string        `yaml:"model"`
	Temperature  float32       `yaml:"temperature"`
	Timeout      time.Duration `yaml:"timeout"`
	GoogleSearch bool          `yaml:"googleSearch"`
}

// AdviceConfig controls the crop-protection advice domain.
type AdviceConfig struct {
	Prompt     string `yaml:"prompt"`
	PromptFile string `yaml:"promptFile"`
}

// QuotaConfig drives the daily request ceiling.
type QuotaConfig struct {
	DailyLimit int          `yaml:"dailyLimit"`
	Timezone   string       `yaml:"timezone"`
	Valkey     ValkeyConfig `yaml:"valkey"`
}

// ValkeyConfig contains connection information for the shared quota counter.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// Load reads configuration from a YAML file, an optional .env file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	// In release mode configuration comes from the environment only.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("config: ignoring unreadable .env file: %v", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := loadPromptFile(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func loadPromptFile(cfg *Config) error {
	path := strings.TrimSpace(cfg.Advice.PromptFile)
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read advice prompt file: %w", err)
	}
	cfg.Advice.Prompt = string(data)
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		if _, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Address = ":" + v
		}
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := firstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.LLM.Timeout = parsed
		}
	}
	if v := os.Getenv("LLM_GOOGLE_SEARCH"); v != "" {
		cfg.LLM.GoogleSearch = parseBool(v)
	}
	if v := os.Getenv("ADVICE_PROMPT_FILE"); v != "" {
		cfg.Advice.PromptFile = v
	}
	if v := os.Getenv("QUOTA_DAILY_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Quota.DailyLimit = parsed
		}
	}
	if v := os.Getenv("QUOTA_TIMEZONE"); v != "" {
		cfg.Quota.Timezone = v
	}
	if v := os.Getenv("QUOTA_VALKEY_ENABLED"); v != "" {
		cfg.Quota.Valkey.Enabled = parseBool(v)
	}
	if v := os.Getenv("QUOTA_VALKEY_ADDR"); v != "" {
		cfg.Quota.Valkey.Addr = v
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8000",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 90 * time.Second,
		},
		LLM: LLMConfig{
			Model:        "gemini-flash-latest",
			Temperature:  0.7,
			Timeout:      60 * time.Second,
			GoogleSearch: true,
		},
		Quota: QuotaConfig{
			DailyLimit: 500,
			Timezone:   "Local",
			Valkey: ValkeyConfig{
				Prefix: "agristack:quota",
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return errors.New("GEMINI_API_KEY or GOOGLE_API_KEY must be set")
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return errors.New("llm.temperature must be between 0 and 2")
	}
	if c.LLM.Timeout <= 0 {
		return errors.New("llm.timeout must be positive")
	}
	if c.HTTP.WriteTimeout > 0 && c.HTTP.WriteTimeout <= c.LLM.Timeout {
		return errors.New("http.writeTimeout must exceed llm.timeout")
	}
	if c.Quota.DailyLimit <= 0 {
		return errors.New("quota.dailyLimit must be positive")
	}
	if _, err := c.Quota.Location(); err != nil {
		return fmt.Errorf("quota.timezone: %w", err)
	}
	if c.Quota.Valkey.Enabled && strings.TrimSpace(c.Quota.Valkey.Addr) == "" {
		return errors.New("quota.valkey.addr cannot be empty when valkey is enabled")
	}
	return nil
}

// Location resolves the timezone used to decide calendar-day boundaries.
func (q QuotaConfig) Location() (*time.Location, error) {
	name := strings.TrimSpace(q.Timezone)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return ""
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}
