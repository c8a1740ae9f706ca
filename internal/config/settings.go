package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Recognized settings keys.
const (
	KeyMoveMouse            = "MoveMouse"
	KeyPressKeys            = "PressKeys"
	KeyTrackInactivity      = "TrackInactivity"
	KeyInactivityTimeout    = "InactivityTimeout"
	KeyRandomizeInterval    = "RandomizeInterval"
	KeyKeyPressMinInterval  = "KeyPressMinInterval"
	KeySuppressSelfActivity = "SuppressSelfActivity"
)

// DefaultInactivityTimeout is used when InactivityTimeout is absent, in minutes.
const DefaultInactivityTimeout = 5

// Settings is the immutable configuration loaded at startup.
type Settings struct {
	MoveMouse       bool
	PressKeys       bool
	TrackInactivity bool

	// InactivityTimeout is in minutes.
	InactivityTimeout int

	// RandomizeInterval spreads driver ticks uniformly over 5-10 seconds.
	RandomizeInterval bool

	// KeyPressMinInterval is the minimum spacing between simulated key
	// taps, in seconds. Zero taps on every eligible tick.
	KeyPressMinInterval int

	// SuppressSelfActivity keeps the monitor from counting the driver's own
	// input as user activity. Disabling it reproduces the behavior of builds
	// that lacked the simulation flag.
	SuppressSelfActivity bool
}

// DefaultSettings returns the settings used for absent keys.
func DefaultSettings() Settings {
	return Settings{
		InactivityTimeout:    DefaultInactivityTimeout,
		SuppressSelfActivity: true,
	}
}

// Timeout returns InactivityTimeout as a duration.
func (s Settings) Timeout() time.Duration {
	return time.Duration(s.InactivityTimeout) * time.Minute
}

// KeyPressSpacing returns KeyPressMinInterval as a duration.
func (s Settings) KeyPressSpacing() time.Duration {
	return time.Duration(s.KeyPressMinInterval) * time.Second
}

func (s Settings) String() string {
	return fmt.Sprintf("MoveMouse: %t, PressKeys: %t, TrackInactivity: %t, InactivityTimeout: %d minutes",
		s.MoveMouse, s.PressKeys, s.TrackInactivity, s.InactivityTimeout)
}

// ParseSettings reads flat key=value lines. Lines that do not split into
// exactly two parts on '=' are skipped; keys and values are trimmed. A
// leading UTF-8 byte order mark is ignored.
func ParseSettings(r io.Reader) (map[string]string, error) {
	settings := make(map[string]string)
	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			// editors on Windows save UTF-8 with a byte order mark
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		parts := strings.Split(line, "=")
		if len(parts) != 2 {
			continue
		}
		settings[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scan settings")
	}
	return settings, nil
}

// ReadSettings loads the raw settings map from path. Files ending in .toml
// are decoded as TOML; anything else is treated as key=value lines.
func ReadSettings(path string) (map[string]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return readTOMLSettings(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open settings %s", path)
	}
	defer f.Close()

	settings, err := ParseSettings(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read settings %s", path)
	}
	return settings, nil
}

// readTOMLSettings flattens the top-level scalar values of a TOML file.
func readTOMLSettings(path string) (map[string]string, error) {
	var raw map[string]any
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, errors.Wrapf(err, "decode settings %s", path)
	}

	settings := make(map[string]string, len(raw))
	for k, v := range raw {
		switch v.(type) {
		case map[string]any, []map[string]any, []any:
			continue
		}
		settings[k] = fmt.Sprint(v)
	}
	return settings, nil
}

// LoadSettings reads path and converts it to Settings.
func LoadSettings(path string) (Settings, error) {
	raw, err := ReadSettings(path)
	if err != nil {
		return Settings{}, err
	}
	return SettingsFromMap(raw)
}

// SettingsFromMap applies defaults and converts recognized keys.
// Unknown keys are ignored.
func SettingsFromMap(m map[string]string) (Settings, error) {
	s := DefaultSettings()

	bools := []struct {
		key string
		dst *bool
	}{
		{KeyMoveMouse, &s.MoveMouse},
		{KeyPressKeys, &s.PressKeys},
		{KeyTrackInactivity, &s.TrackInactivity},
		{KeyRandomizeInterval, &s.RandomizeInterval},
		{KeySuppressSelfActivity, &s.SuppressSelfActivity},
	}
	for _, b := range bools {
		if err := boolSetting(m, b.key, b.dst); err != nil {
			return Settings{}, err
		}
	}

	if err := intSetting(m, KeyInactivityTimeout, &s.InactivityTimeout); err != nil {
		return Settings{}, err
	}
	if err := intSetting(m, KeyKeyPressMinInterval, &s.KeyPressMinInterval); err != nil {
		return Settings{}, err
	}

	return s, nil
}

func boolSetting(m map[string]string, key string, dst *bool) error {
	v, ok := m[key]
	if !ok {
		return nil
	}
	switch {
	case strings.EqualFold(v, "true"):
		*dst = true
	case strings.EqualFold(v, "false"):
		*dst = false
	default:
		return errors.Errorf("invalid %s value %q: want true or false", key, v)
	}
	return nil
}

func intSetting(m map[string]string, key string, dst *int) error {
	v, ok := m[key]
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return errors.Errorf("invalid %s value %q: want a whole number", key, v)
	}
	if n < 0 {
		return errors.Errorf("invalid %s value %q: must not be negative", key, v)
	}
	*dst = n
	return nil
}
