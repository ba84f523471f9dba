// Package doctor runs interactive diagnostics: clipboard access, keystroke
// injection and trigger detection, each reported as PASS/FAIL.
package doctor

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"paster/clipboard"
	"paster/hotkey"
	"paster/keys"
)

// Run executes the checks and returns an exit code (0=all pass, 1=any fail).
func Run(cfg hotkey.Config) int {
	resetTerminal()
	setupInterruptHandler()

	fmt.Println("paster doctor - interactive system diagnostics")
	fmt.Println("==============================================")

	allPass := true

	if !checkClipboard() {
		allPass = false
	}
	if allPass && !checkInjection() {
		allPass = false
	}
	if allPass && !checkHotkey(cfg) {
		allPass = false
	}

	fmt.Println()
	if allPass {
		fmt.Println("All checks passed!")
		return 0
	}
	fmt.Println("Some checks failed. See details above.")
	return 1
}

func checkClipboard() bool {
	fmt.Println()
	fmt.Println("[1/3] Clipboard access")

	units, err := clipboard.System().Read()
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		if errors.Is(err, clipboard.ErrNoText) {
			fmt.Println("  Copy some text first, then rerun.")
		}
		return false
	}
	fmt.Printf("  PASS: read %d code units\n", len(units))
	return true
}

func checkInjection() bool {
	fmt.Println()
	fmt.Println("[2/3] Keystroke injection")

	if err := keys.Check(); err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		fixHint()
		return false
	}

	fmt.Println("Focus on a text editor window...")
	for i := 3; i > 0; i-- {
		fmt.Printf("  %d...\n", i)
		time.Sleep(1 * time.Second)
	}

	synth := keys.System()
	for _, r := range "paster-doctor-ok" {
		synth.Emit(uint16(r))
		time.Sleep(30 * time.Millisecond)
	}

	resetTerminal()
	reader := bufio.NewReader(os.Stdin)
	fmt.Println()
	fmt.Print("Did the text \"paster-doctor-ok\" appear? [y/n]: ")
	confirm, _ := reader.ReadString('\n')
	confirm = strings.TrimSpace(strings.ToLower(confirm))

	if confirm != "y" && confirm != "yes" {
		fmt.Println("  FAIL: keystroke output not confirmed")
		return false
	}
	fmt.Println("  PASS: keystroke output verified by user")
	return true
}

func checkHotkey(cfg hotkey.Config) bool {
	fmt.Println()
	fmt.Println("[3/3] Trigger detection")
	fmt.Printf("Press %s...\n", cfg.Describe())

	hk := hotkey.New()
	if err := hk.Register(cfg); err != nil {
		fmt.Printf("  FAIL: could not register trigger: %v\n", err)
		return false
	}
	defer hk.Unregister()

	select {
	case <-hk.Triggered():
		fmt.Println("  PASS: trigger detected")
		// The combo may leave the terminal in raw mode
		resetTerminal()
		return true
	case <-time.After(10 * time.Second):
		fmt.Println("  FAIL: timeout waiting for trigger")
		return false
	}
}
