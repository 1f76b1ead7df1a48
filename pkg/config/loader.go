package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v2"
)

var (
	config     *DetectorConfig
	configOnce sync.Once
	configErr  error
	configMu   sync.RWMutex
)

// Load loads the configuration from the given YAML file once and caches it
// globally. Subsequent calls return the cached config regardless of path.
func Load(configPath string) (*DetectorConfig, error) {
	configOnce.Do(func() {
		cfg, err := Parse(configPath)
		if err != nil {
			configErr = err
			return
		}
		configMu.Lock()
		config = cfg
		configMu.Unlock()
	})
	if configErr != nil {
		return nil, configErr
	}
	configMu.RLock()
	defer configMu.RUnlock()
	return config, nil
}

// Parse parses the YAML config file without touching the global cache.
func Parse(configPath string) (*DetectorConfig, error) {
	// Resolve symlinks to handle ConfigMap-style mounts.
	resolved, _ := filepath.EvalSymlinks(configPath)
	if resolved == "" {
		resolved = configPath
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &DetectorConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Get returns the globally cached configuration, or nil before Load.
func Get() *DetectorConfig {
	configMu.RLock()
	defer configMu.RUnlock()
	return config
}

func validate(cfg *DetectorConfig) error {
	if cfg.Lexicon.TermFile == "" {
		return fmt.Errorf("config: lexicon.term_file is required")
	}
	if cfg.Classifier.ModelPath == "" {
		return fmt.Errorf("config: classifier.model_path is required")
	}
	if cfg.Classifier.MaxSequenceLength < 1 {
		return fmt.Errorf("config: classifier.max_sequence_length must be positive, got %d", cfg.Classifier.MaxSequenceLength)
	}
	return nil
}
