// Package clipboard reads the system clipboard as UTF-16 code units.
package clipboard

import "errors"

var (
	ErrOpen   = errors.New("clipboard: open failed")
	ErrNoText = errors.New("clipboard: no text data")
	ErrUnlock = errors.New("clipboard: unlock failed")
	ErrClose  = errors.New("clipboard: close failed")
)

// Source yields the current clipboard text as UTF-16 code units,
// newline-normalized: every '\r' is stripped, line breaks are '\n' only.
type Source interface {
	Read() ([]uint16, error)
}

// System returns the platform clipboard.
func System() Source {
	return systemSource{}
}

const carriageReturn = 0x0D

// normalize drops every carriage-return unit. Windows hands out CRLF text;
// downstream only ever sees '\n'.
func normalize(units []uint16) []uint16 {
	out := units[:0]
	for _, u := range units {
		if u == carriageReturn {
			continue
		}
		out = append(out, u)
	}
	return out
}
