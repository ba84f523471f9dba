//go:build linux

package doctor

import "fmt"

func fixHint() {
	fmt.Println("  Fix with: sudo chmod 660 /dev/uinput && sudo chgrp input /dev/uinput")
}
