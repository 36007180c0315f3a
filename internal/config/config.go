package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configDirName  = ".kubeplay"
	configFileName = "config.yaml"
)

type Config struct {
	General     GeneralConfig     `yaml:"general" json:"general"`
	Cluster     ClusterConfig     `yaml:"cluster" json:"cluster"`
	Persistence PersistenceConfig `yaml:"persistence" json:"persistence"`
	History     HistoryConfig     `yaml:"history" json:"history"`
}

type GeneralConfig struct {
	Prompt string `yaml:"prompt" json:"prompt"`
	Colors bool   `yaml:"colors" json:"colors"`
}

type ClusterConfig struct {
	DefaultNamespace string `yaml:"defaultNamespace" json:"defaultNamespace"`
	Seed             bool   `yaml:"seed" json:"seed"`
}

type PersistenceConfig struct {
	Enabled        bool   `yaml:"enabled" json:"enabled"`
	Dir            string `yaml:"dir,omitempty" json:"dir,omitempty"`
	StateKey       string `yaml:"stateKey" json:"stateKey"`
	DebounceWindow string `yaml:"debounceWindow" json:"debounceWindow"`
}

type HistoryConfig struct {
	Size int `yaml:"size" json:"size"`
}

func Default() *Config {
	return &Config{
		General: GeneralConfig{
			Prompt: "$ ",
			Colors: true,
		},
		Cluster: ClusterConfig{
			DefaultNamespace: "default",
			Seed:             true,
		},
		Persistence: PersistenceConfig{
			Enabled:        true,
			Dir:            "",
			StateKey:       "cluster",
			DebounceWindow: "500ms",
		},
		History: HistoryConfig{
			Size: 100,
		},
	}
}

func FilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

func Load() (*Config, error) {
	path, err := FilePath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads a config file, falling back to defaults when the file
// is missing or empty. Unknown keys are ignored; present keys override
// defaults field by field.
func LoadFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return Default(), nil
	}
	cfg := Default()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}
	path, err := FilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

func EnsureExists() (string, error) {
	path, err := FilePath()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	if err := Save(Default()); err != nil {
		return "", err
	}
	return path, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}
	if strings.TrimSpace(c.General.Prompt) == "" {
		return fmt.Errorf("general.prompt cannot be empty")
	}
	if strings.TrimSpace(c.Cluster.DefaultNamespace) == "" {
		return fmt.Errorf("cluster.defaultNamespace cannot be empty")
	}
	if strings.TrimSpace(c.Persistence.StateKey) == "" {
		return fmt.Errorf("persistence.stateKey cannot be empty")
	}
	if _, err := parsePositiveDuration(c.Persistence.DebounceWindow, "persistence.debounceWindow"); err != nil {
		return err
	}
	if c.History.Size < 1 || c.History.Size > 10000 {
		return fmt.Errorf("history.size must be between 1 and 10000")
	}
	return nil
}

// DebounceWindowDuration returns the parsed debounce window, or the
// default when the configured value does not parse.
func (c *Config) DebounceWindowDuration() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(c.Persistence.DebounceWindow))
	if err != nil || d <= 0 {
		return 500 * time.Millisecond
	}
	return d
}

func (c *Config) SetByKey(key, value string) error {
	k := strings.ToLower(strings.TrimSpace(key))
	if k == "" {
		return fmt.Errorf("key cannot be empty")
	}
	v := strings.TrimSpace(value)
	switch k {
	case "general.prompt":
		c.General.Prompt = value
	case "general.colors":
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("general.colors must be true or false")
		}
		c.General.Colors = b
	case "cluster.defaultnamespace", "cluster.default_namespace":
		c.Cluster.DefaultNamespace = v
	case "cluster.seed":
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("cluster.seed must be true or false")
		}
		c.Cluster.Seed = b
	case "persistence.enabled":
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("persistence.enabled must be true or false")
		}
		c.Persistence.Enabled = b
	case "persistence.dir":
		c.Persistence.Dir = v
	case "persistence.statekey", "persistence.state_key":
		c.Persistence.StateKey = v
	case "persistence.debouncewindow", "persistence.debounce_window":
		c.Persistence.DebounceWindow = v
	case "history.size":
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("history.size must be an integer")
		}
		c.History.Size = n
	default:
		return fmt.Errorf("unsupported key %q", key)
	}
	c.normalize()
	return c.Validate()
}

func (c *Config) GetByKey(key string) (any, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	if k == "" {
		return nil, fmt.Errorf("key cannot be empty")
	}
	switch k {
	case "general.prompt":
		return c.General.Prompt, nil
	case "general.colors":
		return c.General.Colors, nil
	case "cluster.defaultnamespace", "cluster.default_namespace":
		return c.Cluster.DefaultNamespace, nil
	case "cluster.seed":
		return c.Cluster.Seed, nil
	case "persistence.enabled":
		return c.Persistence.Enabled, nil
	case "persistence.dir":
		return c.Persistence.Dir, nil
	case "persistence.statekey", "persistence.state_key":
		return c.Persistence.StateKey, nil
	case "persistence.debouncewindow", "persistence.debounce_window":
		return c.Persistence.DebounceWindow, nil
	case "history.size":
		return c.History.Size, nil
	default:
		return nil, fmt.Errorf("unsupported key %q", key)
	}
}

func (c *Config) ToYAML() (string, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (c *Config) ToJSON() (string, error) {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (c *Config) normalize() {
	c.General.Prompt = strings.TrimRight(c.General.Prompt, "\n")
	c.Cluster.DefaultNamespace = strings.TrimSpace(c.Cluster.DefaultNamespace)
	c.Persistence.Dir = strings.TrimSpace(c.Persistence.Dir)
	c.Persistence.StateKey = strings.TrimSpace(c.Persistence.StateKey)
	c.Persistence.DebounceWindow = strings.TrimSpace(c.Persistence.DebounceWindow)
}

func parsePositiveDuration(v, key string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return d, nil
}
