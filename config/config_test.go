package config

import (
	"os"
	"path/filepath"
	"testing"

	"paster/hotkey"
)

func TestLoadFromCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HotkeyConfig() != hotkey.Default() {
		t.Errorf("got %+v, want default hotkey", cfg.HotkeyConfig())
	}
	if cfg.Typing.BaseDelayMs != 30 || cfg.Typing.JitterMs != 20 {
		t.Errorf("unexpected typing defaults: %+v", cfg.Typing)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config file not written: %v", err)
	}
}

func TestLoadFromRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatal(err)
	}

	want := hotkey.Config{Shift: true, RightCtrl: true, Key: "K"}
	cfg.SetHotkey(want)
	cfg.Typing.BaseDelayMs = 75
	if err := writeTo(path, cfg); err != nil {
		t.Fatal(err)
	}

	got, err := loadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.HotkeyConfig() != want {
		t.Errorf("got %+v, want %+v", got.HotkeyConfig(), want)
	}
	if got.Typing.BaseDelayMs != 75 {
		t.Errorf("got base delay %d, want 75", got.Typing.BaseDelayMs)
	}
}

func TestLoadFromCorruptFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("this is [not toml"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadFrom(path)
	if err == nil {
		t.Error("expected a decode error for corrupt config")
	}
	if cfg == nil {
		t.Fatal("corrupt config must still yield defaults")
	}
	if cfg.HotkeyConfig() != hotkey.Default() {
		t.Errorf("got %+v, want default hotkey", cfg.HotkeyConfig())
	}
}

func TestPartialFileKeepsOtherDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[hotkey]\nshift = true\nkey = \"B\"\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	hk := cfg.HotkeyConfig()
	if !hk.Shift || hk.Key != "B" {
		t.Errorf("explicit fields lost: %+v", hk)
	}
	if cfg.Typing.JitterMs != 20 {
		t.Errorf("typing defaults lost: %+v", cfg.Typing)
	}
}
