//go:build !windows

package clipboard

import (
	"fmt"
	"unicode/utf16"

	cb "github.com/atotto/clipboard"
)

type systemSource struct{}

func (systemSource) Read() ([]uint16, error) {
	text, err := cb.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoText, err)
	}
	return normalize(utf16.Encode([]rune(text))), nil
}
