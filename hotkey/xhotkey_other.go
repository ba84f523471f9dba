//go:build !linux

package hotkey

import (
	"fmt"
	"strings"
	"sync"

	xhotkey "golang.design/x/hotkey"
)

// xHotkey binds the trigger through golang.design/x/hotkey (Win32/Cocoa).
type xHotkey struct {
	mu        sync.Mutex
	hk        *xhotkey.Hotkey
	stop      chan struct{}
	triggered chan struct{}
	once      sync.Once
}

func New() Hotkey {
	return &xHotkey{triggered: make(chan struct{}, 1)}
}

func (h *xHotkey) Register(cfg Config) error {
	mods, key, err := mapCombo(cfg)
	if err != nil {
		return err
	}
	hk := xhotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("register %s: %w", cfg.Accelerator(), err)
	}
	h.install(hk)
	return nil
}

// Rebind registers the new combination before releasing the old one, so a
// failed rebind leaves the previous trigger working.
func (h *xHotkey) Rebind(cfg Config) error {
	mods, key, err := mapCombo(cfg)
	if err != nil {
		return err
	}
	hk := xhotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("register %s: %w", cfg.Accelerator(), err)
	}
	h.install(hk)
	return nil
}

func (h *xHotkey) install(hk *xhotkey.Hotkey) {
	h.mu.Lock()
	old, oldStop := h.hk, h.stop
	h.hk = hk
	h.stop = make(chan struct{})
	stop := h.stop
	h.mu.Unlock()

	if oldStop != nil {
		close(oldStop)
	}
	if old != nil {
		old.Unregister()
	}
	go h.forward(hk, stop)
}

func (h *xHotkey) forward(hk *xhotkey.Hotkey, stop chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-hk.Keydown():
			select {
			case h.triggered <- struct{}{}:
			default:
			}
		}
	}
}

func (h *xHotkey) Unregister() {
	h.once.Do(func() {
		h.mu.Lock()
		hk, stop := h.hk, h.stop
		h.hk, h.stop = nil, nil
		h.mu.Unlock()
		if stop != nil {
			close(stop)
		}
		if hk != nil {
			hk.Unregister()
		}
	})
}

func (h *xHotkey) Triggered() <-chan struct{} {
	return h.triggered
}

// mapCombo translates a Config into x/hotkey terms. The OS-level hook cannot
// tell left Ctrl from right Ctrl, so every Ctrl variant binds ModCtrl.
func mapCombo(cfg Config) ([]xhotkey.Modifier, xhotkey.Key, error) {
	if cfg.InterceptSystemCombo {
		return []xhotkey.Modifier{modCtrl}, xhotkey.KeyV, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, 0, err
	}
	var mods []xhotkey.Modifier
	if cfg.Alt {
		mods = append(mods, modAlt)
	}
	if cfg.Ctrl || cfg.LeftCtrl || cfg.RightCtrl {
		mods = append(mods, modCtrl)
	}
	if cfg.Shift {
		mods = append(mods, modShift)
	}
	key, ok := keyByName[strings.ToUpper(cfg.Key)]
	if !ok {
		return nil, 0, fmt.Errorf("hotkey: unsupported key %q", cfg.Key)
	}
	return mods, key, nil
}

var keyByName = map[string]xhotkey.Key{
	"A": xhotkey.KeyA, "B": xhotkey.KeyB, "C": xhotkey.KeyC,
	"D": xhotkey.KeyD, "E": xhotkey.KeyE, "F": xhotkey.KeyF,
	"G": xhotkey.KeyG, "H": xhotkey.KeyH, "I": xhotkey.KeyI,
	"J": xhotkey.KeyJ, "K": xhotkey.KeyK, "L": xhotkey.KeyL,
	"M": xhotkey.KeyM, "N": xhotkey.KeyN, "O": xhotkey.KeyO,
	"P": xhotkey.KeyP, "Q": xhotkey.KeyQ, "R": xhotkey.KeyR,
	"S": xhotkey.KeyS, "T": xhotkey.KeyT, "U": xhotkey.KeyU,
	"V": xhotkey.KeyV, "W": xhotkey.KeyW, "X": xhotkey.KeyX,
	"Y": xhotkey.KeyY, "Z": xhotkey.KeyZ,
	"0": xhotkey.Key0, "1": xhotkey.Key1, "2": xhotkey.Key2,
	"3": xhotkey.Key3, "4": xhotkey.Key4, "5": xhotkey.Key5,
	"6": xhotkey.Key6, "7": xhotkey.Key7, "8": xhotkey.Key8,
	"9": xhotkey.Key9,
	"SPACE": xhotkey.KeySpace,
}
