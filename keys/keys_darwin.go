//go:build darwin

package keys

import (
	"sync"

	"github.com/micmonay/keybd_event"
)

var (
	kb     keybd_event.KeyBonding
	kbOnce sync.Once
	kbErr  error
)

// Check initializes the keyboard event binding.
func Check() error {
	kbOnce.Do(func() {
		kb, kbErr = keybd_event.NewKeyBonding()
	})
	return kbErr
}

var letterVK = [26]int{
	keybd_event.VK_A, keybd_event.VK_B, keybd_event.VK_C, keybd_event.VK_D,
	keybd_event.VK_E, keybd_event.VK_F, keybd_event.VK_G, keybd_event.VK_H,
	keybd_event.VK_I, keybd_event.VK_J, keybd_event.VK_K, keybd_event.VK_L,
	keybd_event.VK_M, keybd_event.VK_N, keybd_event.VK_O, keybd_event.VK_P,
	keybd_event.VK_Q, keybd_event.VK_R, keybd_event.VK_S, keybd_event.VK_T,
	keybd_event.VK_U, keybd_event.VK_V, keybd_event.VK_W, keybd_event.VK_X,
	keybd_event.VK_Y, keybd_event.VK_Z,
}

var digitVK = [10]int{
	keybd_event.VK_0, keybd_event.VK_1, keybd_event.VK_2, keybd_event.VK_3,
	keybd_event.VK_4, keybd_event.VK_5, keybd_event.VK_6, keybd_event.VK_7,
	keybd_event.VK_8, keybd_event.VK_9,
}

func unitToVK(unit uint16) (vk int, shift bool, ok bool) {
	switch {
	case unit >= 'a' && unit <= 'z':
		return letterVK[unit-'a'], false, true
	case unit >= 'A' && unit <= 'Z':
		return letterVK[unit-'A'], true, true
	case unit >= '0' && unit <= '9':
		return digitVK[unit-'0'], false, true
	case unit == ' ':
		return keybd_event.VK_SPACE, false, true
	case unit == '\t':
		return keybd_event.VK_TAB, false, true
	case unit == lineFeed:
		return keybd_event.VK_ENTER, false, true
	}
	return 0, false, false
}

type systemSynth struct{}

// Emit taps the Mac virtual key for the unit. CGEvent has no direct Unicode
// injection through keybd_event, so coverage is the US-layout basics; other
// units are dropped (best-effort contract).
func (*systemSynth) Emit(unit uint16) {
	if Check() != nil {
		return
	}
	vk, shift, ok := unitToVK(unit)
	if !ok {
		return
	}
	kb.Clear()
	kb.SetKeys(vk)
	kb.HasSHIFT(shift)
	if err := kb.Press(); err != nil {
		return
	}
	kb.Release()
}
