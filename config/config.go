// Package config persists settings as TOML under the user config dir.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"paster/hotkey"
)

type Config struct {
	Hotkey HotkeyTable `toml:"hotkey"`
	Typing TypingTable `toml:"typing"`
	Sound  SoundTable  `toml:"sound"`
}

type HotkeyTable struct {
	Alt                  bool   `toml:"alt"`
	Ctrl                 bool   `toml:"ctrl"`
	Shift                bool   `toml:"shift"`
	LeftCtrl             bool   `toml:"left_ctrl"`
	RightCtrl            bool   `toml:"right_ctrl"`
	Key                  string `toml:"key"`
	InterceptSystemCombo bool   `toml:"intercept_system_combo"`
}

type TypingTable struct {
	BaseDelayMs int `toml:"base_delay_ms"`
	JitterMs    int `toml:"jitter_ms"`
}

type SoundTable struct {
	Mute bool `toml:"mute"`
}

func defaultConfig() *Config {
	cfg := &Config{
		Typing: TypingTable{BaseDelayMs: 30, JitterMs: 20},
	}
	cfg.SetHotkey(hotkey.Default())
	return cfg
}

// Path returns the config file location, creating its directory.
func Path() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "paster")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file, creating it with defaults when missing. A
// corrupt file yields the defaults together with the decode error so the
// caller can warn and keep running.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return defaultConfig(), err
	}
	return loadFrom(path)
}

func loadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := defaultConfig()
		if err := writeTo(path, cfg); err != nil {
			return cfg, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	cfg := defaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return defaultConfig(), fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Save writes the whole config back to disk.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return writeTo(path, c)
}

func writeTo(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// HotkeyConfig converts the persisted table to the runtime value.
func (c *Config) HotkeyConfig() hotkey.Config {
	return hotkey.Config{
		Alt:                  c.Hotkey.Alt,
		Ctrl:                 c.Hotkey.Ctrl,
		Shift:                c.Hotkey.Shift,
		LeftCtrl:             c.Hotkey.LeftCtrl,
		RightCtrl:            c.Hotkey.RightCtrl,
		Key:                  c.Hotkey.Key,
		InterceptSystemCombo: c.Hotkey.InterceptSystemCombo,
	}
}

// SetHotkey replaces the persisted hotkey table as a whole value.
func (c *Config) SetHotkey(h hotkey.Config) {
	c.Hotkey = HotkeyTable{
		Alt:                  h.Alt,
		Ctrl:                 h.Ctrl,
		Shift:                h.Shift,
		LeftCtrl:             h.LeftCtrl,
		RightCtrl:            h.RightCtrl,
		Key:                  h.Key,
		InterceptSystemCombo: h.InterceptSystemCombo,
	}
}
