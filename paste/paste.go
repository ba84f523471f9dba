// Package paste drives clipboard playback: it pulls code units from the
// clipboard and feeds them to the keystroke synthesizer with a jittered
// inter-key delay, under a pause gate and a toggle-to-cancel flag.
package paste

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"paster/clipboard"
	"paster/hotkey"
	"paster/keys"
	"paster/log"
)

var (
	// ErrSuspended means playback is paused; the trigger was ignored
	// before any clipboard access.
	ErrSuspended = errors.New("paste: suspended")
	// ErrRebindFailed means the new combination was stored and persisted
	// but the OS-level trigger could not be rebound; a restart restores a
	// working trigger.
	ErrRebindFailed = errors.New("paste: hotkey rebind failed")
)

// Rebinder re-registers the OS-level trigger after a config change.
type Rebinder interface {
	Rebind(cfg hotkey.Config) error
}

// Store persists the hotkey configuration after a successful update.
type Store interface {
	Save(cfg hotkey.Config) error
}

// Controller owns the process-wide playback state. paused and the current
// config live under mu; inProgress is a separate atomic so a cancel (second
// trigger arriving mid-sleep) never waits on the mutex.
type Controller struct {
	mu     sync.Mutex
	paused bool
	config hotkey.Config

	inProgress atomic.Bool

	src   clipboard.Source
	synth keys.Synthesizer

	rebinder Rebinder
	store    Store
	onStart  func()

	// test seams
	sleep      func(time.Duration)
	randUint32 func() uint32
}

func New(src clipboard.Source, synth keys.Synthesizer) *Controller {
	return &Controller{
		src:        src,
		synth:      synth,
		config:     hotkey.Default(),
		sleep:      time.Sleep,
		randUint32: rand.Uint32,
	}
}

// SetRebinder wires the OS trigger collaborator. Optional.
func (c *Controller) SetRebinder(r Rebinder) {
	c.mu.Lock()
	c.rebinder = r
	c.mu.Unlock()
}

// SetStore wires the persistence collaborator. Optional.
func (c *Controller) SetStore(s Store) {
	c.mu.Lock()
	c.store = s
	c.mu.Unlock()
}

// SetOnStart wires a callback invoked once per playback, after the
// in-progress flag is won and the clipboard is read, before the first unit
// goes out. A Play that acts as a cancel request never fires it. Optional.
func (c *Controller) SetOnStart(fn func()) {
	c.mu.Lock()
	c.onStart = fn
	c.mu.Unlock()
}

// Restore seeds the configuration from persisted state at startup. Invalid
// values are discarded in favor of the default.
func (c *Controller) Restore(cfg hotkey.Config) {
	if err := cfg.Validate(); err != nil {
		log.Warnf("restoring hotkey config: %v, using default", err)
		cfg = hotkey.Default()
	}
	c.mu.Lock()
	c.config = cfg
	c.mu.Unlock()
}

// Play runs one playback: read the clipboard, then emit unit by unit with a
// delay of baseDelayMs + rand%jitterSpanMs between units. The pause state is
// sampled once at entry. A Play arriving while another is in flight is a
// cancel request: it clears the in-progress flag and returns nil without
// touching the clipboard. Cancellation is polled before every unit;
// stopping early is success, not an error.
//
// played reports whether this call ran the emit loop itself; a cancel
// request, a suspended trigger and a clipboard failure all report false. The
// in-progress flag alone cannot tell the caller which role its trigger
// played, so the outcome is returned rather than left to a racy pre-check.
func (c *Controller) Play(baseDelayMs, jitterSpanMs uint32) (played bool, err error) {
	c.mu.Lock()
	paused := c.paused
	onStart := c.onStart
	c.mu.Unlock()
	if paused {
		return false, ErrSuspended
	}

	if !c.inProgress.CompareAndSwap(false, true) {
		c.inProgress.Store(false)
		log.Info("playback cancel requested")
		return false, nil
	}

	units, err := c.src.Read()
	if err != nil {
		c.inProgress.Store(false)
		return false, err
	}
	if onStart != nil {
		onStart()
	}

	if jitterSpanMs == 0 {
		jitterSpanMs = 1
	}

	start := time.Now()
	for i, u := range units {
		if !c.inProgress.Load() {
			// Cancelled while sleeping; the flag stays cleared.
			log.Playback(len(units), i, true, time.Since(start))
			return true, nil
		}
		c.synth.Emit(u)
		d := time.Duration(baseDelayMs+c.randUint32()%jitterSpanMs) * time.Millisecond
		c.sleep(d)
	}
	c.inProgress.Store(false)
	log.Playback(len(units), len(units), false, time.Since(start))
	return true, nil
}

// TogglePause flips the pause gate and returns the new value. It never
// interrupts an in-flight playback; it only blocks future triggers.
func (c *Controller) TogglePause() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = !c.paused
	return c.paused
}

// UpdateConfig validates and stores a whole new combination, persists it,
// and asks the rebinder to move the OS trigger. On rebind failure the new
// value is already stored and persisted; the caller must surface that the
// trigger is dead until a retry or restart (partial failure, not rollback).
// Returns the human-readable description on success.
func (c *Controller) UpdateConfig(cfg hotkey.Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	c.mu.Lock()
	c.config = cfg
	rb, st := c.rebinder, c.store
	c.mu.Unlock()

	if st != nil {
		if err := st.Save(cfg); err != nil {
			log.Warnf("persisting hotkey config: %v", err)
		}
	}

	if rb != nil {
		if err := rb.Rebind(cfg); err != nil {
			log.HotkeyUpdate(cfg.Accelerator(), err)
			return "", fmt.Errorf("%w: %v", ErrRebindFailed, err)
		}
	}
	log.HotkeyUpdate(cfg.Accelerator(), nil)
	return cfg.Describe(), nil
}

// Config returns a snapshot of the current combination.
func (c *Controller) Config() hotkey.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config
}

// Paused reports the pause gate.
func (c *Controller) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Playing reports whether a playback is in flight.
func (c *Controller) Playing() bool {
	return c.inProgress.Load()
}
