package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the connection settings Trawl needs to reach a
// Transmission daemon.
type Config struct {
	Address      string
	User         string
	Password     string
	PollInterval time.Duration
}

const (
	defaultConfigPath   = "~/.config/trawl/config.toml"
	defaultAddress      = "127.0.0.1:9091"
	defaultPollInterval = 2 * time.Second
)

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{Address: defaultAddress, PollInterval: defaultPollInterval}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Address      string  `toml:"address"`
		User         string  `toml:"user"`
		Password     string  `toml:"password"`
		PollInterval float64 `toml:"poll_interval"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Address = strings.TrimSpace(raw.Address)
	if cfg.Address == "" {
		cfg.Address = defaultAddress
	}

	cfg.User = strings.TrimSpace(raw.User)
	cfg.Password = raw.Password

	if raw.PollInterval > 0 {
		cfg.PollInterval = time.Duration(raw.PollInterval * float64(time.Second))
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
