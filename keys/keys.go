// Package keys emits synthetic keystrokes to the focused window.
package keys

// lineFeed gets a real Enter keycode rather than a Unicode event; several
// applications (terminals, some editors) ignore Unicode line feeds.
const lineFeed uint16 = 0x0A

// Synthesizer injects one clipboard code unit as key events. Emit is
// best-effort and fire-and-forget: the OS injection call reports nothing
// useful, and playback must never block on it. Emit does not sleep.
type Synthesizer interface {
	Emit(unit uint16)
}

// System returns the platform injection backend.
func System() Synthesizer {
	return &systemSynth{}
}
