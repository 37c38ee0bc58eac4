// Package config reads the host application's settings from the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

var ErrInvalid = errors.New("invalid configuration")

// Config controls the moka host.
type Config struct {
	// Scene is the manifest loaded at startup and on reload.
	Scene string `env:"MOKA_SCENE" envDefault:"examples/shooter/scene.xml"`
	// Resources is an optional resource file merged before the scene's own.
	Resources string `env:"MOKA_RESOURCES"`
	// ComponentNamespace is tried for bare component names missing from the
	// built-in namespace.
	ComponentNamespace string `env:"MOKA_COMPONENT_NAMESPACE" envDefault:"game"`

	WindowWidth  int    `env:"MOKA_WINDOW_WIDTH"  envDefault:"800"`
	WindowHeight int    `env:"MOKA_WINDOW_HEIGHT" envDefault:"600"`
	WindowTitle  string `env:"MOKA_WINDOW_TITLE"  envDefault:"moka"`
	TPS          int    `env:"MOKA_TPS"           envDefault:"60"`

	DebugUI bool `env:"MOKA_DEBUG_UI"`
	Quiet   bool `env:"MOKA_QUIET"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Scene == "":
		return fmt.Errorf("%w: MOKA_SCENE is empty", ErrInvalid)
	case c.WindowWidth <= 0 || c.WindowHeight <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.WindowWidth, c.WindowHeight)
	case c.TPS <= 0:
		return fmt.Errorf("%w: tps %d", ErrInvalid, c.TPS)
	}
	return nil
}
