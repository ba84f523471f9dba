//go:build !linux

package doctor

func fixHint() {}
