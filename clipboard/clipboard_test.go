package clipboard

import (
	"errors"
	"testing"
	"unicode/utf16"
)

func TestNormalizeStripsCR(t *testing.T) {
	in := utf16.Encode([]rune("a\r\nb\r\n"))
	got := normalize(in)
	want := []uint16{'a', '\n', 'b', '\n'}
	if len(got) != len(want) {
		t.Fatalf("got %d units, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("unit %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestNormalizeLoneCR(t *testing.T) {
	got := normalize([]uint16{'\r', '\r', 'x', '\r'})
	if len(got) != 1 || got[0] != 'x' {
		t.Errorf("got %v, want [x]", got)
	}
}

func TestNormalizeKeepsSurrogatePairs(t *testing.T) {
	// U+1F600 encodes as a surrogate pair; both units must pass through.
	in := utf16.Encode([]rune("😀"))
	if len(in) != 2 {
		t.Fatalf("expected surrogate pair, got %d units", len(in))
	}
	got := normalize(in)
	if len(got) != 2 || got[0] != in[0] || got[1] != in[1] {
		t.Errorf("surrogate pair mangled: got %v, want %v", got, in)
	}
}

func TestFakeSourceRoundTrip(t *testing.T) {
	f := NewFake()
	f.SetText("hi\r\nthere")
	units, err := f.Read()
	if err != nil {
		t.Fatal(err)
	}
	for _, u := range units {
		if u == '\r' {
			t.Error("fake source leaked a carriage return")
		}
	}
	if f.Reads() != 1 {
		t.Errorf("got %d reads, want 1", f.Reads())
	}
}

func TestFakeSourceErr(t *testing.T) {
	f := NewFake()
	f.SetErr(ErrNoText)
	if _, err := f.Read(); !errors.Is(err, ErrNoText) {
		t.Errorf("got %v, want ErrNoText", err)
	}
}
