// Package hotkey holds the trigger combination model and its OS registration.
package hotkey

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is returned for a combination with no modifier at all.
var ErrInvalidConfig = errors.New("hotkey: combination needs at least one modifier")

// Config describes the trigger combination. Ctrl, LeftCtrl and RightCtrl are
// mutually exclusive by convention; when several are set the precedence is
// plain, left, right. Updates always replace the whole value.
type Config struct {
	Alt       bool
	Ctrl      bool
	Shift     bool
	LeftCtrl  bool
	RightCtrl bool
	// Key is a single printable key name, e.g. "V".
	Key string
	// InterceptSystemCombo forces the trigger onto the native paste
	// combination; all other fields are ignored while it is set.
	InterceptSystemCombo bool
}

// Default is Alt+Ctrl+V, non-intercepting.
func Default() Config {
	return Config{Alt: true, Ctrl: true, Key: "V"}
}

const systemPasteAccelerator = "Control+V"

// Accelerator renders the platform registration string. Token order is
// fixed: Alt, the Ctrl variant, Shift, then the key.
func (c Config) Accelerator() string {
	if c.InterceptSystemCombo {
		return systemPasteAccelerator
	}
	parts := make([]string, 0, 4)
	if c.Alt {
		parts = append(parts, "Alt")
	}
	switch {
	case c.Ctrl:
		parts = append(parts, "Control")
	case c.LeftCtrl:
		parts = append(parts, "ControlLeft")
	case c.RightCtrl:
		parts = append(parts, "ControlRight")
	}
	if c.Shift {
		parts = append(parts, "Shift")
	}
	parts = append(parts, c.Key)
	return strings.Join(parts, "+")
}

// Describe renders the combination for display, same order as Accelerator.
func (c Config) Describe() string {
	if c.InterceptSystemCombo {
		return "Ctrl+V (system paste intercepted)"
	}
	parts := make([]string, 0, 4)
	if c.Alt {
		parts = append(parts, "Alt")
	}
	switch {
	case c.Ctrl:
		parts = append(parts, "Ctrl")
	case c.LeftCtrl:
		parts = append(parts, "Left Ctrl")
	case c.RightCtrl:
		parts = append(parts, "Right Ctrl")
	}
	if c.Shift {
		parts = append(parts, "Shift")
	}
	parts = append(parts, c.Key)
	return strings.Join(parts, "+")
}

// Parse reads a "+"-separated combination such as "Alt+Ctrl+V". Modifier
// tokens are case-insensitive; the final token is the key. The result still
// has to pass Validate.
func Parse(s string) (Config, error) {
	var c Config
	tokens := strings.Split(s, "+")
	for i, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return Config{}, fmt.Errorf("hotkey: empty token in %q", s)
		}
		if i == len(tokens)-1 {
			c.Key = strings.ToUpper(tok)
			break
		}
		switch strings.ToLower(tok) {
		case "alt", "option":
			c.Alt = true
		case "ctrl", "control":
			c.Ctrl = true
		case "leftctrl", "controlleft", "left ctrl":
			c.LeftCtrl = true
		case "rightctrl", "controlright", "right ctrl":
			c.RightCtrl = true
		case "shift":
			c.Shift = true
		default:
			return Config{}, fmt.Errorf("hotkey: unknown modifier %q", tok)
		}
	}
	if c.Key == "" {
		return Config{}, fmt.Errorf("hotkey: missing key in %q", s)
	}
	return c, c.Validate()
}

// Validate rejects a combination that could never be registered: no modifier
// and no intercept mode.
func (c Config) Validate() error {
	if c.InterceptSystemCombo {
		return nil
	}
	if !c.Alt && !c.Ctrl && !c.Shift && !c.LeftCtrl && !c.RightCtrl {
		return ErrInvalidConfig
	}
	return nil
}
