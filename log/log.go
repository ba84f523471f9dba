// Package log writes file-based diagnostics for the tray app, which has no
// console to print to.
package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	diagLog  zerolog.Logger
	diagFile *os.File
	logMu    sync.Mutex
	logReady bool
	pid      int
	dir      string
)

func ResolveDir(flagPath string) (string, error) {
	// Priority 1: -logpath flag
	if flagPath != "" {
		if !filepath.IsAbs(flagPath) {
			wd, err := os.Getwd()
			if err != nil {
				return "", err
			}
			return filepath.Join(wd, flagPath), nil
		}
		return flagPath, nil
	}

	// Priority 2: PASTER_LOG_PATH environment variable
	envPath := os.Getenv("PASTER_LOG_PATH")
	if envPath != "" {
		if !filepath.IsAbs(envPath) {
			wd, err := os.Getwd()
			if err != nil {
				return "", err
			}
			return filepath.Join(wd, envPath), nil
		}
		return envPath, nil
	}

	// Priority 3: Default OS-specific location
	return getDefaultDir()
}

func SetDir(d string) {
	dir = d
}

func Dir() string {
	return dir
}

func EnsureDir() error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return nil
}

func Init() error {
	logMu.Lock()
	defer logMu.Unlock()

	if err := EnsureDir(); err != nil {
		return err
	}

	pid = os.Getpid()

	diagPath := filepath.Join(dir, "diagnostics_log.txt")
	f, err := os.OpenFile(diagPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	diagFile = f

	consoleWriter := zerolog.ConsoleWriter{
		Out:        diagFile,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}
	diagLog = zerolog.New(consoleWriter).With().Timestamp().Int("pid", pid).Logger()

	logReady = true
	return nil
}

func Close() {
	logMu.Lock()
	defer logMu.Unlock()
	if diagFile != nil {
		diagFile.Close()
		diagFile = nil
	}
	logReady = false
}

func Info(msg string) {
	if logReady {
		diagLog.Info().Msg(msg)
	}
}

func Error(msg string) {
	if logReady {
		diagLog.Error().Msg(msg)
	}
}

func Errorf(format string, args ...any) {
	if logReady {
		diagLog.Error().Msg(fmt.Sprintf(format, args...))
	}
}

func Warn(msg string) {
	if logReady {
		diagLog.Warn().Msg(msg)
	}
}

func Warnf(format string, args ...any) {
	if logReady {
		diagLog.Warn().Msg(fmt.Sprintf(format, args...))
	}
}

// Playback records one finished (or cancelled) playback attempt.
func Playback(units, emitted int, cancelled bool, elapsed time.Duration) {
	if !logReady {
		return
	}
	diagLog.Info().
		Int("units", units).
		Int("emitted", emitted).
		Bool("cancelled", cancelled).
		Dur("elapsed", elapsed).
		Msg("playback")
}

// HotkeyUpdate records a configuration change and whether the OS-level
// rebind took.
func HotkeyUpdate(accelerator string, rebindErr error) {
	if !logReady {
		return
	}
	ev := diagLog.Info()
	if rebindErr != nil {
		ev = diagLog.Error().AnErr("rebind_error", rebindErr)
	}
	ev.Str("accelerator", accelerator).Msg("hotkey_update")
}

func SessionStart(hotkeyDesc string) {
	if !logReady {
		return
	}
	diagLog.Info().
		Str("hotkey", hotkeyDesc).
		Msg("session_start")
}

func SessionEnd(playbacks int) {
	if !logReady {
		return
	}
	diagLog.Info().
		Int("playbacks", playbacks).
		Msg("session_end")
}
