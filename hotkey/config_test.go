package hotkey

import (
	"errors"
	"testing"
)

func TestAcceleratorFixedOrder(t *testing.T) {
	c := Config{Alt: true, Ctrl: true, Key: "V"}
	if got := c.Accelerator(); got != "Alt+Control+V" {
		t.Errorf("got %q, want Alt+Control+V", got)
	}
}

func TestAcceleratorCtrlPrecedence(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want string
	}{
		{"plain wins over left", Config{Ctrl: true, LeftCtrl: true, Key: "V"}, "Control+V"},
		{"left wins over right", Config{LeftCtrl: true, RightCtrl: true, Key: "V"}, "ControlLeft+V"},
		{"right alone", Config{RightCtrl: true, Key: "V"}, "ControlRight+V"},
		{"shift after ctrl", Config{Ctrl: true, Shift: true, Key: "K"}, "Control+Shift+K"},
		{"alt first", Config{Alt: true, Shift: true, Key: "K"}, "Alt+Shift+K"},
	}
	for _, tc := range cases {
		if got := tc.cfg.Accelerator(); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestAcceleratorIntercept(t *testing.T) {
	// Intercept mode ignores every other field.
	c := Config{Alt: true, Shift: true, RightCtrl: true, Key: "Z", InterceptSystemCombo: true}
	if got := c.Accelerator(); got != "Control+V" {
		t.Errorf("got %q, want Control+V", got)
	}
}

func TestDescribe(t *testing.T) {
	c := Config{Alt: true, Ctrl: true, Key: "V"}
	if got := c.Describe(); got != "Alt+Ctrl+V" {
		t.Errorf("got %q, want Alt+Ctrl+V", got)
	}
	c = Config{LeftCtrl: true, Key: "V"}
	if got := c.Describe(); got != "Left Ctrl+V" {
		t.Errorf("got %q, want Left Ctrl+V", got)
	}
	c = Config{InterceptSystemCombo: true}
	if got := c.Describe(); got != "Ctrl+V (system paste intercepted)" {
		t.Errorf("got %q", got)
	}
}

func TestValidate(t *testing.T) {
	if err := (Config{Key: "V"}).Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("modifierless config: got %v, want ErrInvalidConfig", err)
	}
	if err := (Config{Key: "V", InterceptSystemCombo: true}).Validate(); err != nil {
		t.Errorf("intercept config: got %v, want nil", err)
	}
	if err := (Config{Shift: true, Key: "V"}).Validate(); err != nil {
		t.Errorf("shift-only config: got %v, want nil", err)
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("default config: got %v, want nil", err)
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Config
	}{
		{"Alt+Ctrl+V", Config{Alt: true, Ctrl: true, Key: "V"}},
		{"shift+rightctrl+k", Config{Shift: true, RightCtrl: true, Key: "K"}},
		{"ControlLeft+Space", Config{LeftCtrl: true, Key: "SPACE"}},
		{"Option+P", Config{Alt: true, Key: "P"}},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if err != nil {
			t.Errorf("Parse(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q): got %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "Meta+V", "Alt+", "V"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q): expected an error", in)
		}
	}
}

func TestParseRoundTripsDescribe(t *testing.T) {
	for _, c := range []Config{
		Default(),
		{Shift: true, RightCtrl: true, Key: "K"},
		{Alt: true, Shift: true, Key: "9"},
	} {
		got, err := Parse(c.Describe())
		if err != nil {
			t.Errorf("Parse(Describe(%+v)): %v", c, err)
			continue
		}
		if got != c {
			t.Errorf("round trip: got %+v, want %+v", got, c)
		}
	}
}

func TestDefault(t *testing.T) {
	d := Default()
	if !d.Alt || !d.Ctrl || d.Shift || d.Key != "V" || d.InterceptSystemCombo {
		t.Errorf("unexpected default: %+v", d)
	}
}
