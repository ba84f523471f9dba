package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"paster/beep"
	"paster/clipboard"
	"paster/config"
	"paster/hotkey"
	"paster/keys"
	"paster/log"
	"paster/paste"
)

// runTestMode drives the controller from stdin with fake clipboard, keys and
// hotkey, so end-to-end behavior is scriptable without a desktop session.
func runTestMode(baseDelay, jitterSpan uint32, cfg *config.Config) {
	beep.Mute()

	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}
	defer log.Close()

	src := clipboard.NewFake()
	synth := keys.NewFake()
	hk := hotkey.NewFake()

	ctrl := paste.New(src, synth)
	ctrl.Restore(cfg.HotkeyConfig())
	ctrl.SetRebinder(hk)

	log.SessionStart(ctrl.Config().Describe())

	playDone := make(chan struct{}, 1)

	// Event loop -- same pattern as run()
	go func() {
		for range hk.Triggered() {
			go func() {
				played, err := ctrl.Play(baseDelay, jitterSpan)
				switch {
				case errors.Is(err, paste.ErrSuspended):
					fmt.Println("suspended")
				case err != nil:
					fmt.Printf("error: %v\n", err)
				case played:
					fmt.Printf("typed=%d\n", len(synth.Units()))
				default:
					fmt.Println("cancelled")
				}
				select {
				case playDone <- struct{}{}:
				default:
				}
			}()
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		cmd := strings.TrimSpace(scanner.Text())
		switch {
		case cmd == "PRESS":
			hk.SimPress()
		case cmd == "PAUSE":
			fmt.Printf("paused=%v\n", ctrl.TogglePause())
		case cmd == "WAIT":
			<-playDone
		case cmd == "RESET":
			synth.Reset()
		case cmd == "QUIT":
			log.SessionEnd(0)
			os.Exit(0)
		case strings.HasPrefix(cmd, "TEXT "):
			src.SetText(cmd[5:])
		case strings.HasPrefix(cmd, "HOTKEY "):
			hc, err := hotkey.Parse(cmd[7:])
			if err == nil {
				_, err = ctrl.UpdateConfig(hc)
			}
			if err != nil {
				fmt.Printf("error: %v\n", err)
			} else {
				fmt.Printf("hotkey=%s\n", ctrl.Config().Describe())
			}
		case strings.HasPrefix(cmd, "SLEEP "):
			if ms, err := strconv.Atoi(cmd[6:]); err == nil {
				time.Sleep(time.Duration(ms) * time.Millisecond)
			}
		}
	}
}
