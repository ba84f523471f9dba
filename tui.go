package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TUI message types
type PlaybackStartMsg struct{}
type PlaybackDoneMsg struct {
	Count   int
	Elapsed time.Duration
}
type PausedMsg struct{ On bool }
type HotkeyMsg struct{ Desc string }
type StatusMsg struct{ Text string }
type tickMsg time.Time

var (
	tuiProgram *tea.Program
	tuiMu      sync.Mutex

	// Set by run() before the TUI starts.
	tuiPauseFn  func() bool
	tuiRebindFn func(string) (string, error)
)

var (
	typingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	idleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
	comboStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("239")).Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type tuiModel struct {
	typing        bool
	paused        bool
	hotkeyDesc    string
	status        string
	statusIsErr   bool
	lastCount     int
	lastElapsed   time.Duration
	frame         int
	width, height int

	editing bool
	input   string
}

func NewTUIProgram(hotkeyDesc string) *tea.Program {
	m := tuiModel{hotkeyDesc: hotkeyDesc}
	return tea.NewProgram(m, tea.WithAltScreen())
}

func tuiTick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m tuiModel) Init() tea.Cmd {
	return tuiTick()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "p":
			if tuiPauseFn != nil {
				m.paused = tuiPauseFn()
			}
		case "enter":
			select {
			case trayPasteChan <- struct{}{}:
			default:
			}
		case "h":
			m.editing = true
			m.input = ""
			m.status = ""
		}

	case tickMsg:
		m.frame++
		return m, tuiTick()

	case PlaybackStartMsg:
		m.typing = true
		m.status = ""
		m.statusIsErr = false

	case PlaybackDoneMsg:
		m.typing = false
		m.lastCount = msg.Count
		m.lastElapsed = msg.Elapsed

	case PausedMsg:
		m.paused = msg.On

	case HotkeyMsg:
		m.hotkeyDesc = msg.Desc

	case StatusMsg:
		m.typing = false
		m.status = msg.Text
		m.statusIsErr = true
	}
	return m, nil
}

func (m tuiModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.input = ""
	case "enter":
		m.editing = false
		if tuiRebindFn != nil && m.input != "" {
			desc, err := tuiRebindFn(m.input)
			if err != nil {
				m.status = err.Error()
				m.statusIsErr = true
			} else {
				m.hotkeyDesc = desc
				m.status = "hotkey updated"
				m.statusIsErr = false
			}
		}
		m.input = ""
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.input += string(msg.Runes)
		}
	}
	return m, nil
}

func (m tuiModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(hintStyle.Render("paster "+version) + "\n\n")

	switch {
	case m.typing:
		spin := spinnerFrames[m.frame%len(spinnerFrames)]
		b.WriteString(typingStyle.Render(spin+" TYPING") + "\n")
	case m.paused:
		b.WriteString(pausedStyle.Render("‖ PAUSED") + "\n")
	default:
		b.WriteString(idleStyle.Render("○ READY") + "\n")
	}

	b.WriteString(comboStyle.Render(m.hotkeyDesc) + hintStyle.Render(" types the clipboard") + "\n")

	if m.lastCount > 0 {
		b.WriteString(infoStyle.Render(fmt.Sprintf("last playback #%d (%.1fs)", m.lastCount, m.lastElapsed.Seconds())) + "\n")
	}

	if m.status != "" {
		style := infoStyle
		if m.statusIsErr {
			style = errStyle
		}
		b.WriteString(style.Render(m.status) + "\n")
	}

	b.WriteString("\n")
	if m.editing {
		b.WriteString(infoStyle.Render("new hotkey: "+m.input+"▏") + "\n")
		b.WriteString(hintStyle.Render("e.g. Alt+Ctrl+V, Shift+RightCtrl+K  (enter apply, esc cancel)") + "\n")
	} else {
		b.WriteString(hintStyle.Render("enter paste · p pause · h hotkey · q quit") + "\n")
	}

	return b.String()
}

func tuiSend(msg tea.Msg) {
	tuiMu.Lock()
	p := tuiProgram
	tuiMu.Unlock()

	if p != nil {
		p.Send(msg)
	}
}
