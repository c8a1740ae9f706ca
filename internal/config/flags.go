package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/stigoleg/jiggler/internal/util"
)

const (
	// AppName is the binary and flag-set name.
	AppName = "jiggler"

	// DefaultSettingsPath is read when --settings is not given.
	DefaultSettingsPath = "settings.ini"

	// DefaultLogFile receives logs while the TUI owns the terminal.
	DefaultLogFile = "debug.log"
)

// Config holds the parsed command line.
type Config struct {
	SettingsPath string
	// Duration limits the run; zero runs until interrupted.
	Duration    time.Duration
	Clock       time.Time
	TUI         bool
	Debug       bool
	LogFile     string
	ShowVersion bool
}

// NewFlagSet declares every command-line flag.
func NewFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(AppName, pflag.ContinueOnError)
	fs.SortFlags = false

	fs.StringP("settings", "s", DefaultSettingsPath, "Settings file (key=value lines, or .toml)")
	fs.StringP("duration", "d", "", "How long to run (e.g., \"2h30m\" or \"150\")")
	fs.StringP("clock", "c", "", "Run until a time of day (e.g., \"22:00\" or \"10:00PM\")")
	fs.BoolP("tui", "t", false, "Use the interactive terminal UI")
	fs.Bool("debug", false, "Enable debug logging")
	fs.String("log-file", DefaultLogFile, "Log file used in TUI mode")
	fs.BoolP("version", "v", false, "Show version information")
	return fs
}

// ParseFlags parses os.Args, printing usage or the version and exiting when asked.
func ParseFlags(version string) (*Config, error) {
	fs := NewFlagSet()
	cfg, err := parse(fs, os.Args[1:], time.Now())
	if errors.Is(err, pflag.ErrHelp) {
		fmt.Printf("Usage: %s [flags]\n\nFlags:\n%s", AppName, fs.FlagUsages())
		os.Exit(0)
	}
	if err != nil {
		return nil, err
	}

	if cfg.ShowVersion {
		fmt.Printf("Jiggler Version: %s\n", version)
		os.Exit(0)
	}
	return cfg, nil
}

// ParseArgs parses args relative to now without touching the process.
func ParseArgs(args []string, now time.Time) (*Config, error) {
	return parse(NewFlagSet(), args, now)
}

func parse(fs *pflag.FlagSet, args []string, now time.Time) (*Config, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &Config{}
	cfg.SettingsPath, _ = fs.GetString("settings")
	cfg.TUI, _ = fs.GetBool("tui")
	cfg.Debug, _ = fs.GetBool("debug")
	cfg.LogFile, _ = fs.GetString("log-file")
	cfg.ShowVersion, _ = fs.GetBool("version")

	duration, _ := fs.GetString("duration")
	clock, _ := fs.GetString("clock")
	if duration != "" && clock != "" {
		return nil, errors.New("--duration and --clock cannot be used together")
	}

	if duration != "" {
		d, err := util.ParseDuration(duration)
		if err != nil {
			return nil, err
		}
		cfg.Duration = d
	}

	if clock != "" {
		until, err := util.ParseTimeStringWithNow(clock, now)
		if err != nil {
			return nil, err
		}
		if !until.After(now) {
			until = until.Add(24 * time.Hour)
		}
		cfg.Clock = until
		cfg.Duration = until.Sub(now)
	}

	return cfg, nil
}
