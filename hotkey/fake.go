package hotkey

import "sync"

// FakeHotkey drives the trigger channel from tests and headless mode.
type FakeHotkey struct {
	mu        sync.Mutex
	cfg       Config
	rebindErr error
	rebinds   int
	triggered chan struct{}
}

func NewFake() *FakeHotkey {
	return &FakeHotkey{triggered: make(chan struct{}, 1)}
}

func (f *FakeHotkey) Register(cfg Config) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cfg = cfg
	return nil
}

func (f *FakeHotkey) Rebind(cfg Config) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rebinds++
	if f.rebindErr != nil {
		return f.rebindErr
	}
	f.cfg = cfg
	return nil
}

func (f *FakeHotkey) Unregister() {}

func (f *FakeHotkey) Triggered() <-chan struct{} { return f.triggered }

func (f *FakeHotkey) SimPress() { f.triggered <- struct{}{} }

// FailRebind makes every subsequent Rebind return err.
func (f *FakeHotkey) FailRebind(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rebindErr = err
}

// Bound returns the combination last accepted by Register or Rebind.
func (f *FakeHotkey) Bound() Config {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cfg
}

// Rebinds counts Rebind calls, including failed ones.
func (f *FakeHotkey) Rebinds() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rebinds
}
