package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"paster/beep"
	"paster/clipboard"
	"paster/config"
	"paster/doctor"
	"paster/hotkey"
	"paster/keys"
	"paster/log"
	"paster/login"
	"paster/paste"
	"paster/shutdown"
	"paster/tray"
)

var version = "dev"

var (
	playbacksMu sync.Mutex
	playbacks   int
)

// trayPasteChan carries manual "Paste Now" requests from the tray and the
// TUI into the event loop.
var trayPasteChan = make(chan struct{}, 1)

var shutdownOnce sync.Once

func gracefulShutdown() {
	shutdownOnce.Do(func() {
		playbacksMu.Lock()
		n := playbacks
		playbacksMu.Unlock()
		if n > 0 {
			log.SessionEnd(n)
		}
		log.Close()
		tray.Quit()
		tuiMu.Lock()
		p := tuiProgram
		tuiMu.Unlock()
		if p != nil {
			p.Quit()
		}
		os.Exit(0)
	})
}

// hotkeyStore persists a new combination into the TOML config.
type hotkeyStore struct {
	cfg *config.Config
}

func (s hotkeyStore) Save(h hotkey.Config) error {
	s.cfg.SetHotkey(h)
	return s.cfg.Save()
}

func run() {
	cfg, cfgErr := config.Load()

	delayFlag := flag.Int("delay", cfg.Typing.BaseDelayMs, "Base inter-key delay in milliseconds")
	jitterFlag := flag.Int("jitter", cfg.Typing.JitterMs, "Random extra delay per key in milliseconds")
	muteFlag := flag.Bool("mute", cfg.Sound.Mute, "Disable audio cues")
	tuiFlag := flag.Bool("tui", true, "Run with terminal UI")
	doctorFlag := flag.Bool("doctor", false, "Run system diagnostics and exit")
	testFlag := flag.Bool("test", false, "Test mode (headless, stdin-driven)")
	logPathFlag := flag.String("logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("paster %s\n", version)
		os.Exit(0)
	}

	logPath, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)
	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
	}

	crashPath := filepath.Join(log.Dir(), "crash_log.txt")
	crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
		debug.SetCrashOutput(crashFile, debug.CrashOptions{})
	}

	if cfgErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", cfgErr)
	}

	if *doctorFlag {
		os.Exit(doctor.Run(cfg.HotkeyConfig()))
	}

	if *muteFlag {
		beep.Mute()
	}

	baseDelay := uint32(*delayFlag)
	jitterSpan := uint32(*jitterFlag)

	if *testFlag {
		runTestMode(baseDelay, jitterSpan, cfg)
		return
	}

	// Daemonize in non-TUI mode: re-exec in background, return shell prompt
	if !*tuiFlag && os.Getenv("_PASTER_BG") == "" {
		exe, _ := os.Executable()
		cmd := exec.Command(exe, os.Args[1:]...)
		cmd.Env = append(os.Environ(), "_PASTER_BG=1")
		devnull, _ := os.Open(os.DevNull)
		cmd.Stdin, cmd.Stdout, cmd.Stderr = devnull, devnull, devnull
		if err := cmd.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}

	ctrl := paste.New(clipboard.System(), keys.System())
	ctrl.Restore(cfg.HotkeyConfig())
	ctrl.SetStore(hotkeyStore{cfg})

	log.SessionStart(ctrl.Config().Describe())

	if err := keys.Check(); err != nil {
		log.Errorf("keystroke backend: %v", err)
		fmt.Fprintf(os.Stderr, "Warning: keystroke output unavailable: %v\n", err)
	}

	hk := hotkey.New()
	if err := hk.Register(ctrl.Config()); err != nil {
		log.Errorf("hotkey register error: %v", err)
		fmt.Printf("Error registering hotkey: %v\n", err)
		os.Exit(1)
	}
	defer hk.Unregister()
	ctrl.SetRebinder(hk)

	togglePause := func() bool {
		p := ctrl.TogglePause()
		tray.SetPaused(p)
		log.Info(pauseEvent(p))
		return p
	}
	tuiPauseFn = togglePause
	tuiRebindFn = func(s string) (string, error) {
		cfg, err := hotkey.Parse(s)
		if err != nil {
			return "", err
		}
		desc, err := ctrl.UpdateConfig(cfg)
		if err != nil {
			return "", err
		}
		tray.SetHotkey(desc)
		return desc, nil
	}

	tray.OnPaste(func() {
		select {
		case trayPasteChan <- struct{}{}:
		default:
		}
	})
	tray.OnPause(func() bool {
		p := togglePause()
		tuiSend(PausedMsg{On: p})
		return p
	})
	tray.OnLogin(login.Enabled(), func(on bool) error {
		if on {
			return login.Enable()
		}
		return login.Disable()
	})
	tray.SetHotkey(ctrl.Config().Describe())
	trayQuit := tray.Init()

	if *tuiFlag {
		tuiMu.Lock()
		tuiProgram = NewTUIProgram(ctrl.Config().Describe())
		tuiMu.Unlock()

		go func() {
			if _, err := tuiProgram.Run(); err != nil {
				log.Errorf("TUI error: %v", err)
				os.Exit(1)
			}
			gracefulShutdown()
		}()
	}

	sigChan := make(chan os.Signal, 1)
	shutdown.Notify(sigChan)
	go func() {
		select {
		case <-sigChan:
		case <-trayQuit:
		}
		gracefulShutdown()
	}()

	go beep.Init()

	ctrl.SetOnStart(func() {
		tray.SetTyping(true)
		tuiSend(PlaybackStartMsg{})
		beep.PlayStart()
	})

	doPlay := func() {
		start := time.Now()
		played, err := ctrl.Play(baseDelay, jitterSpan)
		tray.SetTyping(false)

		switch {
		case errors.Is(err, paste.ErrSuspended):
			tuiSend(StatusMsg{Text: "paused, trigger ignored"})
		case err != nil:
			log.Errorf("playback error: %v", err)
			tuiSend(StatusMsg{Text: err.Error()})
			beep.PlayError()
		case played:
			playbacksMu.Lock()
			playbacks++
			n := playbacks
			playbacksMu.Unlock()
			tuiSend(PlaybackDoneMsg{Count: n, Elapsed: time.Since(start)})
			beep.PlayDone()
		}
	}

	for {
		select {
		case <-hk.Triggered():
			go doPlay()
		case <-trayPasteChan:
			go doPlay()
		}
	}
}

func pauseEvent(on bool) string {
	if on {
		return "paused"
	}
	return "resumed"
}
