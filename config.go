package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DataDir         string `yaml:"data_dir"`
	AutosaveDelayMS int    `yaml:"autosave_delay_ms"`
	Confirmations   bool   `yaml:"confirmations"`
	LogLevel        string `yaml:"log_level"`
}

func defaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		DataDir:         filepath.Join(home, ".local", "share", "horizon"),
		AutosaveDelayMS: int(saveDebounce / time.Millisecond),
		Confirmations:   true,
		LogLevel:        "info",
	}
}

// loadConfig reads ~/.config/horizon/config.yaml. A missing or unreadable
// file just means defaults.
func loadConfig() *Config {
	config := defaultConfig()

	home, err := os.UserHomeDir()
	if err != nil {
		return config
	}
	data, err := os.ReadFile(filepath.Join(home, ".config", "horizon", "config.yaml"))
	if err != nil {
		return config
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return defaultConfig()
	}

	if strings.HasPrefix(config.DataDir, "~") {
		config.DataDir = filepath.Join(home, strings.TrimPrefix(config.DataDir, "~"))
	}
	if config.AutosaveDelayMS <= 0 {
		config.AutosaveDelayMS = int(saveDebounce / time.Millisecond)
	}
	return config
}

// AutosaveDelay returns the debounce window for the dirty-flush timer.
func (c *Config) AutosaveDelay() time.Duration {
	return time.Duration(c.AutosaveDelayMS) * time.Millisecond
}

// DBPath is the SQLite file holding the persisted map.
func (c *Config) DBPath() string {
	os.MkdirAll(c.DataDir, 0755)
	return filepath.Join(c.DataDir, "horizon.db")
}

// LogPath is the log file; stdout belongs to the TUI.
func (c *Config) LogPath() string {
	os.MkdirAll(c.DataDir, 0755)
	return filepath.Join(c.DataDir, "horizon.log")
}
