//go:build windows

package clipboard

import (
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	kernel32         = windows.NewLazySystemDLL("kernel32.dll")
	openClipboard    = user32.NewProc("OpenClipboard")
	closeClipboard   = user32.NewProc("CloseClipboard")
	getClipboardData = user32.NewProc("GetClipboardData")
	globalLock       = kernel32.NewProc("GlobalLock")
	globalUnlock     = kernel32.NewProc("GlobalUnlock")
)

const cfUnicodeText = 13

type systemSource struct{}

// Read copies the CF_UNICODETEXT contents out of the clipboard. The clipboard
// is closed on every path, including data-access failures; a failed close is
// reported but never leaks the handle.
func (systemSource) Read() ([]uint16, error) {
	if err := open(); err != nil {
		return nil, err
	}

	h, _, _ := getClipboardData.Call(cfUnicodeText)
	if h == 0 {
		if r, _, _ := closeClipboard.Call(); r == 0 {
			return nil, ErrClose
		}
		return nil, ErrNoText
	}

	l, _, _ := globalLock.Call(h)
	if l == 0 {
		if r, _, _ := closeClipboard.Call(); r == 0 {
			return nil, ErrClose
		}
		return nil, ErrNoText
	}

	// Copy code units up to the terminating NUL, dropping '\r' as we go.
	var units []uint16
	p := (*uint16)(unsafe.Pointer(l))
	for i := uintptr(0); ; i++ {
		u := *(*uint16)(unsafe.Pointer(uintptr(unsafe.Pointer(p)) + i*2))
		if u == 0 {
			break
		}
		if u == carriageReturn {
			continue
		}
		units = append(units, u)
	}

	if r, _, err := globalUnlock.Call(h); unlockFailed(r, err) {
		if r2, _, _ := closeClipboard.Call(); r2 == 0 {
			return nil, ErrClose
		}
		return nil, ErrUnlock
	}
	if r, _, _ := closeClipboard.Call(); r == 0 {
		return nil, ErrClose
	}
	return units, nil
}

// unlockFailed interprets GlobalUnlock's result. A nonzero return means the
// block is still locked (normal under nested locks); zero means it was
// unlocked, unless the thread's last-error slot holds a real error.
func unlockFailed(ret uintptr, err error) bool {
	return ret == 0 && err != windows.ERROR_SUCCESS
}

// open retries briefly: another process may hold the clipboard for a moment.
func open() error {
	for i := 0; i < 10; i++ {
		if r, _, _ := openClipboard.Call(0); r != 0 {
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}
	return ErrOpen
}
