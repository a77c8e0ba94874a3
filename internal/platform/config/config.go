package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultShareURL          = "https://rolznz.github.io/first-thought/"
	DefaultHistoryDays       = 14
	DefaultSuggestionMinimum = 1
)

type Config struct {
	DataDir          string
	SessionsPath     string
	AchievementsPath string
	TimerPath        string
	DBPath           string
	LogPath          string

	LogLevel            string
	LogFormat           string
	SuggestionMinPrefix int
	ShareURL            string
	HistoryDays         int
}

// fileConfig mirrors the optional <data>/config.yaml.
type fileConfig struct {
	LogLevel            string `yaml:"log_level"`
	LogFormat           string `yaml:"log_format"`
	SuggestionMinPrefix *int   `yaml:"suggestion_min_prefix"`
	ShareURL            string `yaml:"share_url"`
	HistoryDays         *int   `yaml:"history_days"`
}

func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	return Config{
		DataDir:             dataDir,
		SessionsPath:        filepath.Join(dataDir, "sessions.json"),
		AchievementsPath:    filepath.Join(dataDir, "achievements.json"),
		TimerPath:           filepath.Join(dataDir, "timer.json"),
		DBPath:              filepath.Join(dataDir, "firstthought.db"),
		LogPath:             filepath.Join(dataDir, "firstthought.log"),
		LogLevel:            "info",
		SuggestionMinPrefix: DefaultSuggestionMinimum,
		ShareURL:            DefaultShareURL,
		HistoryDays:         DefaultHistoryDays,
	}, nil
}

// Load builds the default layout for dataDir and overlays config.yaml when present.
func Load(dataDir string) (Config, error) {
	cfg, err := New(dataDir)
	if err != nil {
		return Config{}, err
	}
	raw, err := os.ReadFile(filepath.Join(dataDir, "config.yaml"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	file := fileConfig{}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	if file.LogFormat != "" {
		cfg.LogFormat = file.LogFormat
	}
	if file.SuggestionMinPrefix != nil {
		if *file.SuggestionMinPrefix < 0 {
			return Config{}, fmt.Errorf("suggestion_min_prefix must be non-negative")
		}
		cfg.SuggestionMinPrefix = *file.SuggestionMinPrefix
	}
	if file.ShareURL != "" {
		cfg.ShareURL = file.ShareURL
	}
	if file.HistoryDays != nil {
		if *file.HistoryDays <= 0 {
			return Config{}, fmt.Errorf("history_days must be positive")
		}
		cfg.HistoryDays = *file.HistoryDays
	}
	return cfg, nil
}

// DefaultDataDir resolves $XDG_DATA_HOME/firstthought, falling back to ~/.firstthought.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "firstthought")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".firstthought"
	}
	return filepath.Join(home, ".firstthought")
}
