//go:build !linux

package platform

func warnDisplayServer() {}
