package styles

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ConfigCache loads style configurations from a directory of yml files and
// serves them from memory. The built-in default style is always present.
type ConfigCache struct {
	stylesDir string
	cache     map[string]*Config
	mu        sync.RWMutex
}

func NewConfigCache(stylesDir string) *ConfigCache {
	return &ConfigCache{
		stylesDir: stylesDir,
		cache: map[string]*Config{
			DefaultName: Default(),
		},
	}
}

func (cc *ConfigCache) Run() error {
	if _, err := os.Stat(cc.stylesDir); os.IsNotExist(err) {
		slog.Debug("Styles directory does not exist, using built-in default only", "dir", cc.stylesDir)
		return nil
	}

	files, err := filepath.Glob(filepath.Join(cc.stylesDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		styleName := strings.TrimSuffix(filepath.Base(file), ".yml")

		config, err := cc.LoadConfig(styleName)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Style configuration loaded", "style", styleName, "enabled", config.Enabled, "model", config.Model)
	}

	return nil
}

func (cc *ConfigCache) LoadConfig(styleName string) (*Config, error) {
	configFile := filepath.Join(cc.stylesDir, styleName+".yml")

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read style config: %w", err)
	}

	config := &Config{Enabled: true}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse style config: %w", err)
	}
	config.Name = styleName

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid style config %s: %w", configFile, err)
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.cache[config.Name] = config

	return config, nil
}

func (cc *ConfigCache) GetConfig(styleName string) (*Config, error) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	config, ok := cc.cache[styleName]
	if !ok {
		return nil, fmt.Errorf("style config with name '%s' not found", styleName)
	}

	return config, nil
}

func (cc *ConfigCache) GetConfigs() []*Config {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	configs := make([]*Config, 0, len(cc.cache))
	for _, config := range cc.cache {
		configs = append(configs, config)
	}

	return configs
}

func (cc *ConfigCache) GetConfigCount() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	return len(cc.cache)
}

func validateConfig(config *Config) error {
	if config.SystemPrompt == "" {
		return fmt.Errorf("system_prompt is required")
	}
	if config.Image.Size == "" {
		config.Image.Size = Default().Image.Size
	}
	if config.Image.Quality == "" {
		config.Image.Quality = Default().Image.Quality
	}
	return nil
}
