//go:build darwin

package hotkey

import xhotkey "golang.design/x/hotkey"

// Alt maps to Option on macOS.
const (
	modAlt   = xhotkey.ModOption
	modCtrl  = xhotkey.ModCtrl
	modShift = xhotkey.ModShift
)
