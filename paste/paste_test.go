package paste

import (
	"errors"
	"sync"
	"testing"
	"time"

	"paster/clipboard"
	"paster/hotkey"
	"paster/keys"
)

func newTestController(text string) (*Controller, *clipboard.FakeSource, *keys.FakeSynth) {
	src := clipboard.NewFake()
	src.SetText(text)
	synth := keys.NewFake()
	c := New(src, synth)
	c.sleep = func(time.Duration) {}
	c.randUint32 = func() uint32 { return 0 }
	return c, src, synth
}

func TestPlayEmitsNormalizedText(t *testing.T) {
	c, _, synth := newTestController("a\r\nb")
	played, err := c.Play(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !played {
		t.Error("completed playback reported played=false")
	}
	got := synth.Units()
	want := []uint16{'a', '\n', 'b'}
	if len(got) != len(want) {
		t.Fatalf("emitted %d units, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("unit %d: got %d, want %d", i, got[i], want[i])
		}
	}
	if c.Playing() {
		t.Error("in-progress flag still set after completion")
	}
}

func TestPlayWhilePausedNeverReadsClipboard(t *testing.T) {
	c, src, synth := newTestController("secret")
	if !c.TogglePause() {
		t.Fatal("TogglePause should report paused")
	}
	if _, err := c.Play(0, 1); !errors.Is(err, ErrSuspended) {
		t.Fatalf("got %v, want ErrSuspended", err)
	}
	if src.Reads() != 0 {
		t.Error("paused Play touched the clipboard")
	}
	if len(synth.Units()) != 0 {
		t.Error("paused Play emitted keystrokes")
	}
}

func TestTogglePauseIsItsOwnInverse(t *testing.T) {
	c, _, _ := newTestController("")
	if got := c.TogglePause(); got != true {
		t.Errorf("first toggle: got %v, want true", got)
	}
	if got := c.TogglePause(); got != false {
		t.Errorf("second toggle: got %v, want false", got)
	}
	if c.Paused() {
		t.Error("paused state not restored after two toggles")
	}
}

func TestSecondPlayCancelsFirst(t *testing.T) {
	c, _, synth := newTestController("abcdefgh")

	sleeping := make(chan struct{})
	resume := make(chan struct{})
	c.sleep = func(time.Duration) {
		sleeping <- struct{}{}
		<-resume
	}

	done := make(chan error, 1)
	go func() {
		_, err := c.Play(1, 1)
		done <- err
	}()

	// Let two units go out, then trigger again mid-sleep.
	<-sleeping
	resume <- struct{}{}
	<-sleeping

	played, err := c.Play(1, 1)
	if err != nil {
		t.Fatalf("cancel trigger returned %v, want nil", err)
	}
	if played {
		t.Error("cancel trigger reported a playback of its own")
	}

	resume <- struct{}{}
	if err := <-done; err != nil {
		t.Fatalf("cancelled playback returned %v, want nil", err)
	}

	emitted := len(synth.Units())
	if emitted == 0 || emitted >= 8 {
		t.Errorf("emitted %d units, want a strict prefix of 8", emitted)
	}
	if c.Playing() {
		t.Error("in-progress flag still set after cancel")
	}

	// The controller must be usable again after a cancel.
	c.sleep = func(time.Duration) {}
	synth.Reset()
	if _, err := c.Play(0, 1); err != nil {
		t.Fatal(err)
	}
	if len(synth.Units()) != 8 {
		t.Errorf("follow-up playback emitted %d units, want 8", len(synth.Units()))
	}
}

func TestClipboardErrorAbortsPlayback(t *testing.T) {
	c, src, synth := newTestController("")
	src.SetErr(clipboard.ErrNoText)
	played, err := c.Play(0, 1)
	if !errors.Is(err, clipboard.ErrNoText) {
		t.Fatalf("got %v, want ErrNoText", err)
	}
	if played {
		t.Error("failed playback reported played=true")
	}
	if len(synth.Units()) != 0 {
		t.Error("keystrokes emitted despite clipboard error")
	}
	if c.Playing() {
		t.Error("in-progress flag leaked after clipboard error")
	}

	// Recovers once the clipboard works again.
	src.SetErr(nil)
	src.SetText("ok")
	if _, err := c.Play(0, 1); err != nil {
		t.Fatal(err)
	}
	if len(synth.Units()) != 2 {
		t.Errorf("emitted %d units, want 2", len(synth.Units()))
	}
}

func TestDelayBounds(t *testing.T) {
	c, _, _ := newTestController("xxxxxxxxxx")

	var mu sync.Mutex
	var delays []time.Duration
	c.sleep = func(d time.Duration) {
		mu.Lock()
		delays = append(delays, d)
		mu.Unlock()
	}
	seq := []uint32{0, 7, 29, 30, 31, 59, 60, 61, 1 << 30, ^uint32(0)}
	i := 0
	c.randUint32 = func() uint32 {
		v := seq[i%len(seq)]
		i++
		return v
	}

	if _, err := c.Play(50, 30); err != nil {
		t.Fatal(err)
	}

	lo := 50 * time.Millisecond
	hi := 79 * time.Millisecond
	for _, d := range delays {
		if d < lo || d > hi {
			t.Errorf("delay %v outside [%v, %v]", d, lo, hi)
		}
	}
	if len(delays) != 10 {
		t.Errorf("got %d delays, want 10", len(delays))
	}
}

func TestZeroJitterSpanIsClamped(t *testing.T) {
	c, _, _ := newTestController("ab")
	var delays []time.Duration
	c.sleep = func(d time.Duration) { delays = append(delays, d) }
	c.randUint32 = func() uint32 { return 12345 }

	if _, err := c.Play(20, 0); err != nil {
		t.Fatal(err)
	}
	for _, d := range delays {
		if d != 20*time.Millisecond {
			t.Errorf("delay %v, want exactly 20ms with clamped span", d)
		}
	}
}

func TestUpdateConfigRejectsModifierless(t *testing.T) {
	c, _, _ := newTestController("")
	before := c.Config()
	_, err := c.UpdateConfig(hotkey.Config{Key: "V"})
	if !errors.Is(err, hotkey.ErrInvalidConfig) {
		t.Fatalf("got %v, want ErrInvalidConfig", err)
	}
	if c.Config() != before {
		t.Error("invalid update changed the stored configuration")
	}
}

func TestUpdateConfigRebindsAndPersists(t *testing.T) {
	c, _, _ := newTestController("")
	hk := hotkey.NewFake()
	st := &fakeStore{}
	c.SetRebinder(hk)
	c.SetStore(st)

	cfg := hotkey.Config{Shift: true, Ctrl: true, Key: "K"}
	desc, err := c.UpdateConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if desc != "Ctrl+Shift+K" {
		t.Errorf("got description %q, want Ctrl+Shift+K", desc)
	}
	if c.Config() != cfg {
		t.Error("configuration not stored")
	}
	if hk.Bound() != cfg {
		t.Error("rebinder did not receive the new configuration")
	}
	if st.saved != 1 || st.last != cfg {
		t.Errorf("store saw %d saves, last %+v", st.saved, st.last)
	}
}

func TestUpdateConfigRebindFailureIsPartial(t *testing.T) {
	c, _, _ := newTestController("")
	hk := hotkey.NewFake()
	hk.FailRebind(errors.New("registration denied"))
	st := &fakeStore{}
	c.SetRebinder(hk)
	c.SetStore(st)

	cfg := hotkey.Config{Alt: true, Key: "J"}
	_, err := c.UpdateConfig(cfg)
	if !errors.Is(err, ErrRebindFailed) {
		t.Fatalf("got %v, want ErrRebindFailed", err)
	}
	// Partial failure: the value is stored and persisted even though the
	// OS trigger is stale.
	if c.Config() != cfg {
		t.Error("configuration rolled back on rebind failure")
	}
	if st.saved != 1 {
		t.Errorf("store saw %d saves, want 1", st.saved)
	}
}

func TestRestoreRejectsInvalidPersistedConfig(t *testing.T) {
	c, _, _ := newTestController("")
	c.Restore(hotkey.Config{Key: "Q"})
	if c.Config() != hotkey.Default() {
		t.Errorf("got %+v, want default", c.Config())
	}
	valid := hotkey.Config{RightCtrl: true, Key: "P"}
	c.Restore(valid)
	if c.Config() != valid {
		t.Errorf("got %+v, want %+v", c.Config(), valid)
	}
}

func TestPauseDoesNotInterruptInFlightPlayback(t *testing.T) {
	c, _, synth := newTestController("abcd")

	sleeping := make(chan struct{})
	resume := make(chan struct{})
	c.sleep = func(time.Duration) {
		sleeping <- struct{}{}
		<-resume
	}

	done := make(chan error, 1)
	go func() {
		_, err := c.Play(1, 1)
		done <- err
	}()

	<-sleeping
	if !c.TogglePause() {
		t.Fatal("expected paused=true")
	}
	resume <- struct{}{}
	for i := 0; i < 3; i++ {
		<-sleeping
		resume <- struct{}{}
	}
	if err := <-done; err != nil {
		t.Fatalf("in-flight playback failed after pause: %v", err)
	}
	if got := len(synth.Units()); got != 4 {
		t.Errorf("emitted %d units, want all 4 despite pause", got)
	}

	// But the next trigger is blocked.
	if _, err := c.Play(1, 1); !errors.Is(err, ErrSuspended) {
		t.Errorf("got %v, want ErrSuspended", err)
	}
}

func TestStartHookFiresOncePerPlayback(t *testing.T) {
	c, _, _ := newTestController("abcdef")

	var mu sync.Mutex
	starts := 0
	c.SetOnStart(func() {
		mu.Lock()
		starts++
		mu.Unlock()
	})

	sleeping := make(chan struct{})
	resume := make(chan struct{})
	c.sleep = func(time.Duration) {
		sleeping <- struct{}{}
		<-resume
	}

	done := make(chan struct{})
	go func() {
		c.Play(1, 1)
		close(done)
	}()

	// Trigger again while the first playback sleeps: the second call must
	// act as a cancel, not announce a playback of its own.
	<-sleeping
	played, err := c.Play(1, 1)
	if err != nil {
		t.Fatalf("cancel trigger returned %v, want nil", err)
	}
	if played {
		t.Error("cancel trigger reported a playback of its own")
	}
	resume <- struct{}{}
	<-done

	mu.Lock()
	defer mu.Unlock()
	if starts != 1 {
		t.Errorf("start hook fired %d times, want 1", starts)
	}
}

type fakeStore struct {
	saved int
	last  hotkey.Config
	err   error
}

func (s *fakeStore) Save(cfg hotkey.Config) error {
	s.saved++
	s.last = cfg
	return s.err
}
