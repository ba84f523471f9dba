//go:build darwin

package tray

import "golang.design/x/hotkey/mainthread"

// The status item must be created on the main thread; the caller owns the
// run loop via mainthread.Init.
func startOnMain(start func()) {
	done := make(chan struct{})
	mainthread.Call(func() {
		start()
		close(done)
	})
	<-done
}
