//go:build windows

package hotkey

import xhotkey "golang.design/x/hotkey"

const (
	modAlt   = xhotkey.ModAlt
	modCtrl  = xhotkey.ModCtrl
	modShift = xhotkey.ModShift
)
