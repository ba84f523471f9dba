//go:build windows

package keys

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32    = windows.NewLazySystemDLL("user32.dll")
	sendInput = user32.NewProc("SendInput")
)

const (
	inputKeyboard    = 1
	keyeventfKeyup   = 0x0002
	keyeventfUnicode = 0x0004
	vkReturn         = 0x0D
)

type keyboardInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type input struct {
	inputType uint32
	ki        keyboardInput
	padding   [8]byte // INPUT is a union; pad to the C struct size
}

type systemSynth struct{}

// Emit sends one code unit via SendInput. Line feeds go out as a real
// VK_RETURN press and release; everything else as a KEYEVENTF_UNICODE
// down/up pair. The key-up is never skipped: some receivers double the
// character without it.
func (*systemSynth) Emit(unit uint16) {
	var inputs [2]input
	if unit == lineFeed {
		inputs[0] = input{
			inputType: inputKeyboard,
			ki:        keyboardInput{wVk: vkReturn},
		}
		inputs[1] = input{
			inputType: inputKeyboard,
			ki:        keyboardInput{wVk: vkReturn, dwFlags: keyeventfKeyup},
		}
	} else {
		inputs[0] = input{
			inputType: inputKeyboard,
			ki:        keyboardInput{wScan: unit, dwFlags: keyeventfUnicode},
		}
		inputs[1] = input{
			inputType: inputKeyboard,
			ki:        keyboardInput{wScan: unit, dwFlags: keyeventfUnicode | keyeventfKeyup},
		}
	}
	sendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
}

// Check verifies the injection entry point is available.
func Check() error {
	return sendInput.Find()
}
