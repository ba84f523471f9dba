package hotkey

// Hotkey delivers global trigger activations for a Config.
type Hotkey interface {
	Register(cfg Config) error
	// Rebind swaps the registered combination for a new one. The old
	// binding stays active if rebinding fails.
	Rebind(cfg Config) error
	Unregister()
	Triggered() <-chan struct{}
}
