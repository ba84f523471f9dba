package clipboard

import (
	"sync"
	"unicode/utf16"
)

// FakeSource is an in-memory Source for tests and headless mode.
type FakeSource struct {
	mu    sync.Mutex
	units []uint16
	err   error
	reads int
}

func NewFake() *FakeSource {
	return &FakeSource{}
}

func (f *FakeSource) SetText(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.units = normalize(utf16.Encode([]rune(text)))
}

func (f *FakeSource) SetErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *FakeSource) Read() ([]uint16, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]uint16, len(f.units))
	copy(out, f.units)
	return out, nil
}

// Reads reports how many times Read was called.
func (f *FakeSource) Reads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}
