//go:build linux

package keys

import (
	"encoding/binary"
	"errors"
	"os"
	"sync"
	"syscall"
	"time"
)

// ioctl constants from linux/uinput.h
const (
	uiSetEvbit  = 0x40045564 // UI_SET_EVBIT
	uiSetKeybit = 0x40045565 // UI_SET_KEYBIT
	uiDevCreate = 0x5501     // UI_DEV_CREATE
)

// input event types from linux/input-event-codes.h
const (
	evSyn = 0x00
	evKey = 0x01
)

const (
	busUSB       = 0x03
	keyLeftShift = 42
)

type inputEvent struct {
	Time  syscall.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

type uinputUserDev struct {
	Name         [80]byte
	ID           inputID
	FfEffectsMax uint32
	Absmax       [64]int32
	Absmin       [64]int32
	Absfuzz      [64]int32
	Absflat      [64]int32
}

var (
	fd     *os.File
	fdOnce sync.Once
	fdErr  error
)

// Check creates the uinput virtual keyboard if needed and reports whether
// injection is possible at all.
func Check() error {
	fdOnce.Do(initDevice)
	return fdErr
}

func initDevice() {
	path := "/dev/uinput"
	if _, err := os.Stat(path); err != nil {
		path = "/dev/input/uinput"
		if _, err := os.Stat(path); err != nil {
			fdErr = errors.New("uinput device not found, try: sudo modprobe uinput")
			return
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|syscall.O_NONBLOCK, os.ModeDevice)
	if err != nil {
		fdErr = err
		return
	}
	// Set EV_KEY and EV_SYN capabilities
	if _, _, errno := syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), uiSetEvbit, evKey); errno != 0 {
		fdErr = errno
		f.Close()
		return
	}
	if _, _, errno := syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), uiSetEvbit, evSyn); errno != 0 {
		fdErr = errno
		f.Close()
		return
	}
	// Register all standard keys so udev classifies this as a keyboard
	for i := uintptr(0); i < 256; i++ {
		if _, _, errno := syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), uiSetKeybit, i); errno != 0 {
			fdErr = errno
			f.Close()
			return
		}
	}
	dev := uinputUserDev{}
	copy(dev.Name[:], "paster-kbd")
	dev.ID.Bustype = busUSB
	dev.ID.Vendor = 0x1234
	dev.ID.Product = 0x5678
	dev.ID.Version = 1
	if err := binary.Write(f, binary.LittleEndian, &dev); err != nil {
		fdErr = err
		f.Close()
		return
	}
	if _, _, errno := syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), uiDevCreate, 0); errno != 0 {
		fdErr = errno
		f.Close()
		return
	}
	fd = f
	// Give the compositor time to recognize the new input device
	time.Sleep(200 * time.Millisecond)
}

func writeEvent(typ, code uint16, value int32) error {
	ev := inputEvent{Type: typ, Code: code, Value: value}
	return binary.Write(fd, binary.LittleEndian, &ev)
}

func syn() error {
	return writeEvent(evSyn, 0, 0)
}

func keyTap(code uint16, shift bool) {
	if shift {
		writeEvent(evKey, keyLeftShift, 1)
		syn()
	}
	writeEvent(evKey, code, 1)
	syn()
	writeEvent(evKey, code, 0)
	syn()
	if shift {
		writeEvent(evKey, keyLeftShift, 0)
		syn()
	}
}

type systemSynth struct{}

// Emit taps the evdev key for the unit. uinput has no Unicode path, so only
// units with a US-layout keycode are representable; the rest are dropped,
// which is within the best-effort contract.
func (*systemSynth) Emit(unit uint16) {
	if Check() != nil {
		return
	}
	if unit > 0x7F {
		return
	}
	code, shift, ok := charToKey(byte(unit))
	if !ok {
		return
	}
	keyTap(code, shift)
}
