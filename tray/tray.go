// Package tray puts paster in the system tray: pause toggle, manual paste,
// start-at-login and quit.
package tray

import (
	"sync"

	"fyne.io/systray"
)

var (
	quitCh    = make(chan struct{})
	closeOnce sync.Once

	pasteFn func()
	pauseFn func() bool
	loginOn bool
	loginCb func(bool) error

	stateMu sync.Mutex
	paused  bool
	typing  bool
	desc    string

	mPaste *systray.MenuItem
	mPause *systray.MenuItem
	mLogin *systray.MenuItem
)

// OnPaste registers the manual "Paste Now" action.
func OnPaste(fn func()) { pasteFn = fn }

// OnPause registers the pause toggle; fn returns the new paused state.
func OnPause(fn func() bool) { pauseFn = fn }

// OnLogin registers the start-at-login toggle with its current state.
func OnLogin(enabled bool, fn func(bool) error) {
	loginOn = enabled
	loginCb = fn
}

// SetHotkey updates the tooltip with the active trigger description.
func SetHotkey(d string) {
	stateMu.Lock()
	desc = d
	stateMu.Unlock()
	updateTooltip()
}

// SetPaused flips the pause item title and the icon.
func SetPaused(p bool) {
	stateMu.Lock()
	paused = p
	stateMu.Unlock()
	if mPause != nil {
		if p {
			mPause.SetTitle("Resume")
		} else {
			mPause.SetTitle("Pause")
		}
	}
	updateIcon()
	updateTooltip()
}

// SetTyping marks a playback in flight.
func SetTyping(on bool) {
	stateMu.Lock()
	typing = on
	stateMu.Unlock()
	updateIcon()
}

func Quit() {
	systray.Quit()
}

// Init starts the tray and returns a channel closed when the user quits.
func Init() <-chan struct{} {
	start, _ := systray.RunWithExternalLoop(onReady, onExit)
	startOnMain(start)
	return quitCh
}

func onExit() {
	closeOnce.Do(func() { close(quitCh) })
}

func onReady() {
	updateIcon()
	updateTooltip()

	mPaste = systray.AddMenuItem("Paste Now", "Type the clipboard into the focused window")
	mPause = systray.AddMenuItem("Pause", "Ignore the trigger until resumed")
	systray.AddSeparator()
	mLogin = systray.AddMenuItemCheckbox("Start at Login", "Run paster when you log in", loginOn)
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Exit paster")

	go func() {
		for {
			select {
			case <-mPaste.ClickedCh:
				if pasteFn != nil {
					pasteFn()
				}
			case <-mPause.ClickedCh:
				if pauseFn != nil {
					SetPaused(pauseFn())
				}
			case <-mLogin.ClickedCh:
				toggleLogin()
			case <-mQuit.ClickedCh:
				systray.Quit()
				return
			case <-quitCh:
				return
			}
		}
	}()
}

func toggleLogin() {
	if loginCb == nil {
		return
	}
	next := !loginOn
	if err := loginCb(next); err != nil {
		// Leave the checkbox where it was.
		return
	}
	loginOn = next
	if loginOn {
		mLogin.Check()
	} else {
		mLogin.Uncheck()
	}
}

func updateIcon() {
	stateMu.Lock()
	p, ty := paused, typing
	stateMu.Unlock()
	switch {
	case ty:
		systray.SetIcon(iconTyping)
	case p:
		systray.SetIcon(iconPaused)
	default:
		systray.SetIcon(iconIdle)
	}
}

func updateTooltip() {
	stateMu.Lock()
	d, p := desc, paused
	stateMu.Unlock()
	tip := "paster"
	if d != "" {
		tip += " – " + d
	}
	if p {
		tip += " (paused)"
	}
	systray.SetTooltip(tip)
}
