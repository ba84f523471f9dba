package keys

import "sync"

// FakeSynth records emitted units for tests and headless mode.
type FakeSynth struct {
	mu    sync.Mutex
	units []uint16
}

func NewFake() *FakeSynth {
	return &FakeSynth{}
}

func (f *FakeSynth) Emit(unit uint16) {
	f.mu.Lock()
	f.units = append(f.units, unit)
	f.mu.Unlock()
}

// Units returns a snapshot of everything emitted so far.
func (f *FakeSynth) Units() []uint16 {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]uint16, len(f.units))
	copy(out, f.units)
	return out
}

func (f *FakeSynth) Reset() {
	f.mu.Lock()
	f.units = nil
	f.mu.Unlock()
}
