//go:build linux

package platform

import (
	"os"

	"github.com/rs/zerolog/log"
)

// Display server types.
const (
	DisplayServerWayland = "wayland"
	DisplayServerX11     = "x11"
	DisplayServerUnknown = "unknown"
)

// DetectDisplayServer detects whether running on Wayland or X11.
func DetectDisplayServer() string {
	return detectDisplayServer(os.Getenv)
}

func detectDisplayServer(getenv func(string) string) string {
	if getenv("WAYLAND_DISPLAY") != "" {
		return DisplayServerWayland
	}
	if getenv("XDG_SESSION_TYPE") == DisplayServerWayland {
		return DisplayServerWayland
	}
	if getenv("DISPLAY") != "" {
		return DisplayServerX11
	}
	if getenv("XDG_SESSION_TYPE") == DisplayServerX11 {
		return DisplayServerX11
	}
	return DisplayServerUnknown
}

// warnDisplayServer logs when cursor warping is not going to work.
func warnDisplayServer() {
	switch ds := DetectDisplayServer(); ds {
	case DisplayServerWayland:
		log.Warn().Str("component", "platform").Str("display", ds).
			Msg("cursor reads and moves only reach XWayland clients on Wayland")
	case DisplayServerUnknown:
		log.Warn().Str("component", "platform").
			Msg("no display detected; input simulation will likely fail")
	}
}
