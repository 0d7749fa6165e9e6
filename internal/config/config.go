package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/locsim/internal/domain"
	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".config/locsim"

	defaultMoveTypeKey  = "session.default_move_type"
	defaultLocationKey  = "session.default_location"
	bridgeURLKey        = "bridge.url"
	handshakeTimeoutKey = "bridge.handshake_timeout"
	staticDevicesKey    = "devices.static"
)

type Config struct {
	DefaultMoveType  domain.MoveType
	DefaultLocation  *domain.Coordinate
	BridgeURL        string
	HandshakeTimeout time.Duration
	StaticDevices    []string
	LogLevel         string

	// File is the config file that was read, empty when none was found.
	File string
}

type envOverrides struct {
	BridgeURL       string `env:"LOCSIM_BRIDGE_URL"`
	LogLevel        string `env:"LOCSIM_LOG_LEVEL" envDefault:"warn"`
	DefaultMoveType string `env:"LOCSIM_DEFAULT_MOVE_TYPE"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads config.toml from dir, or from ~/.config/locsim when dir is
// empty, and applies environment overrides on top. A missing file is not an
// error.
func Load(cfg *viper.Viper, dir string) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(homeDir, configDir)
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(dir)
	cfg.SetDefault(defaultMoveTypeKey, domain.MoveTypeWalk.String())
	cfg.SetDefault(defaultLocationKey, "")
	cfg.SetDefault(bridgeURLKey, "")
	cfg.SetDefault(handshakeTimeoutKey, "5s")
	cfg.SetDefault(staticDevicesKey, []string{})

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var overrides envOverrides
	if err := ParseEnv(&overrides); err != nil {
		return Config{}, err
	}

	moveTypeName := cfg.GetString(defaultMoveTypeKey)
	if overrides.DefaultMoveType != "" {
		moveTypeName = overrides.DefaultMoveType
	}
	moveType, err := domain.ParseMoveType(moveTypeName)
	if err != nil {
		return Config{}, fmt.Errorf("parse default move type: %w", err)
	}

	var location *domain.Coordinate
	if raw := strings.TrimSpace(cfg.GetString(defaultLocationKey)); raw != "" {
		parsed, err := domain.ParseCoordinate(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse default location: %w", err)
		}
		location = &parsed
	}

	timeout := cfg.GetDuration(handshakeTimeoutKey)
	if timeout <= 0 {
		return Config{}, fmt.Errorf("invalid %s %q", handshakeTimeoutKey, cfg.GetString(handshakeTimeoutKey))
	}

	bridgeURL := cfg.GetString(bridgeURLKey)
	if overrides.BridgeURL != "" {
		bridgeURL = overrides.BridgeURL
	}

	if _, err := ParseLogLevel(overrides.LogLevel); err != nil {
		return Config{}, err
	}

	return Config{
		DefaultMoveType:  moveType,
		DefaultLocation:  location,
		BridgeURL:        strings.TrimSpace(bridgeURL),
		HandshakeTimeout: timeout,
		StaticDevices:    cfg.GetStringSlice(staticDevicesKey),
		LogLevel:         overrides.LogLevel,
		File:             cfg.ConfigFileUsed(),
	}, nil
}
