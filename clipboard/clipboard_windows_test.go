//go:build windows

package clipboard

import (
	"testing"

	"golang.org/x/sys/windows"
)

func TestUnlockFailed(t *testing.T) {
	cases := []struct {
		name string
		ret  uintptr
		err  error
		want bool
	}{
		{"still locked", 1, windows.ERROR_SUCCESS, false},
		{"unlocked clean", 0, windows.ERROR_SUCCESS, false},
		{"unlocked with error", 0, windows.ERROR_INVALID_HANDLE, true},
	}
	for _, tc := range cases {
		if got := unlockFailed(tc.ret, tc.err); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}
