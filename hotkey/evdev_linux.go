//go:build linux

package hotkey

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	evKey      = 1
	keyPress   = 1
	keyRelease = 0

	keyLCtrl  = 29
	keyRCtrl  = 97
	keyLShift = 42
	keyRShift = 54
	keyLAlt   = 56
	keyRAlt   = 100
)

// input_event is 24 bytes on 64-bit Linux:
// timeval (16 bytes) + type (2) + code (2) + value (4)
const inputEventSize = 24

// evdevHotkey watches /dev/input keyboards directly and matches the
// configured combination itself. Works on Wayland where X grabs don't.
// Requires the user to be in the 'input' group.
type evdevHotkey struct {
	mu        sync.Mutex
	cfg       Config
	target    uint16
	triggered chan struct{}
	files     []*os.File
	stop      chan struct{}
	once      sync.Once
}

func New() Hotkey {
	return &evdevHotkey{triggered: make(chan struct{}, 1)}
}

func (h *evdevHotkey) Register(cfg Config) error {
	target, err := targetCode(cfg)
	if err != nil {
		return err
	}

	keyboards, err := findKeyboards()
	if err != nil {
		return fmt.Errorf("finding keyboards: %w", err)
	}
	if len(keyboards) == 0 {
		return fmt.Errorf("no keyboard devices found (is user in 'input' group?)")
	}

	h.mu.Lock()
	h.cfg = cfg
	h.target = target
	h.mu.Unlock()
	h.stop = make(chan struct{})

	for _, path := range keyboards {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		h.files = append(h.files, f)
		go h.readEvents(f)
	}

	if len(h.files) == 0 {
		return fmt.Errorf("could not open any keyboard device (run: sudo usermod -aG input $USER, then re-login)")
	}

	return nil
}

// Rebind swaps the matched combination. The device readers keep running;
// they consult the config per event.
func (h *evdevHotkey) Rebind(cfg Config) error {
	target, err := targetCode(cfg)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.cfg = cfg
	h.target = target
	h.mu.Unlock()
	return nil
}

func (h *evdevHotkey) readEvents(f *os.File) {
	buf := make([]byte, inputEventSize*16)
	var lctrl, rctrl, lshift, rshift, lalt, ralt bool

	for {
		select {
		case <-h.stop:
			return
		default:
		}

		n, err := f.Read(buf)
		if err != nil {
			return
		}

		for i := 0; i+inputEventSize <= n; i += inputEventSize {
			evType := binary.LittleEndian.Uint16(buf[i+16:])
			evCode := binary.LittleEndian.Uint16(buf[i+18:])
			evValue := int32(binary.LittleEndian.Uint32(buf[i+20:]))

			if evType != evKey {
				continue
			}

			pressed := evValue == keyPress
			released := evValue == keyRelease

			switch evCode {
			case keyLCtrl:
				lctrl = pressed || (!released && lctrl)
			case keyRCtrl:
				rctrl = pressed || (!released && rctrl)
			case keyLShift:
				lshift = pressed || (!released && lshift)
			case keyRShift:
				rshift = pressed || (!released && rshift)
			case keyLAlt:
				lalt = pressed || (!released && lalt)
			case keyRAlt:
				ralt = pressed || (!released && ralt)
			default:
				if !pressed {
					continue
				}
				h.mu.Lock()
				cfg, target := h.cfg, h.target
				h.mu.Unlock()
				if evCode != target {
					continue
				}
				if !comboHeld(cfg, lctrl, rctrl, lshift, rshift, lalt, ralt) {
					continue
				}
				select {
				case h.triggered <- struct{}{}:
				default:
				}
			}
		}
	}
}

func comboHeld(cfg Config, lctrl, rctrl, lshift, rshift, lalt, ralt bool) bool {
	if cfg.InterceptSystemCombo {
		return lctrl || rctrl
	}
	if cfg.Alt && !lalt && !ralt {
		return false
	}
	if cfg.Shift && !lshift && !rshift {
		return false
	}
	switch {
	case cfg.Ctrl:
		return lctrl || rctrl
	case cfg.LeftCtrl:
		return lctrl
	case cfg.RightCtrl:
		return rctrl
	}
	return true
}

func (h *evdevHotkey) Unregister() {
	h.once.Do(func() {
		if h.stop != nil {
			close(h.stop)
		}
		for _, f := range h.files {
			f.Close()
		}
	})
}

func (h *evdevHotkey) Triggered() <-chan struct{} {
	return h.triggered
}

// targetCode resolves the configured key name to its evdev code.
func targetCode(cfg Config) (uint16, error) {
	if cfg.InterceptSystemCombo {
		return codeByName["V"], nil
	}
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	code, ok := codeByName[strings.ToUpper(cfg.Key)]
	if !ok {
		return 0, fmt.Errorf("hotkey: unsupported key %q", cfg.Key)
	}
	return code, nil
}

var codeByName = map[string]uint16{
	"A": 30, "B": 48, "C": 46, "D": 32, "E": 18, "F": 33, "G": 34,
	"H": 35, "I": 23, "J": 36, "K": 37, "L": 38, "M": 50, "N": 49,
	"O": 24, "P": 25, "Q": 16, "R": 19, "S": 31, "T": 20, "U": 22,
	"V": 47, "W": 17, "X": 45, "Y": 21, "Z": 44,
	"1": 2, "2": 3, "3": 4, "4": 5, "5": 6, "6": 7, "7": 8, "8": 9,
	"9": 10, "0": 11,
	"SPACE": 57,
}

func findKeyboards() ([]string, error) {
	entries, err := os.ReadDir("/dev/input")
	if err != nil {
		return nil, err
	}

	var keyboards []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "event") {
			continue
		}
		path := filepath.Join("/dev/input", e.Name())
		if isKeyboard(e.Name()) {
			keyboards = append(keyboards, path)
		}
	}
	return keyboards, nil
}

func isKeyboard(eventName string) bool {
	capsPath := filepath.Join("/sys/class/input", eventName, "device", "capabilities", "key")
	data, err := os.ReadFile(capsPath)
	if err != nil {
		return false
	}
	caps := strings.TrimSpace(string(data))
	return len(caps) > 10
}
