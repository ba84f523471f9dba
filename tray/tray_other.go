//go:build !darwin

package tray

func startOnMain(start func()) {
	start()
}
