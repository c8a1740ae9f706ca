package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/stigoleg/jiggler/internal/config"
	"github.com/stigoleg/jiggler/internal/jiggler"
	"github.com/stigoleg/jiggler/internal/platform"
	"github.com/stigoleg/jiggler/internal/single"
	"github.com/stigoleg/jiggler/internal/ui"
)

const (
	appVersion     = "1.0.0"
	cleanupTimeout = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, ui.RenderError(err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.ParseFlags(appVersion)
	if err != nil {
		return err
	}

	if cfg.TUI && !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("--tui needs an interactive terminal")
	}

	cleanup := jiggler.NewCleanupManager(cleanupTimeout)
	defer cleanup.Execute()

	logFile, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	if logFile != nil {
		cleanup.RegisterFunc("log file", logFile.Close)
	}

	release, err := single.Acquire(config.AppName)
	if err != nil {
		return err
	}
	cleanup.RegisterFunc("instance lock", release)

	settings, err := config.LoadSettings(cfg.SettingsPath)
	if err != nil {
		return err
	}
	log.Debug().Str("path", cfg.SettingsPath).Stringer("settings", settings).Msg("settings loaded")

	adapter, err := platform.NewAdapter()
	if err != nil {
		return errors.Wrap(err, "initialize input adapter")
	}

	relay := &ui.Relay{}
	var observer jiggler.Observer = ui.NewConsole(os.Stdout)
	if cfg.TUI {
		observer = relay
	}

	j, err := jiggler.New(jiggler.Options{
		Settings: settings,
		Adapter:  adapter,
		Observer: observer,
	})
	if err != nil {
		return err
	}
	cleanup.RegisterFunc("jiggler", j.Stop)

	ctx, stop := signal.NotifyContext(context.Background(), getSignalsForPlatform()...)
	defer stop()

	if cfg.TUI {
		return runTUI(ctx, cfg, j, relay)
	}
	return runConsole(ctx, cfg, j)
}

func runConsole(ctx context.Context, cfg *config.Config, j *jiggler.Jiggler) error {
	ui.Banner(os.Stdout, "Jiggler", j.Settings())

	if cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Duration)
		defer cancel()
		log.Debug().Dur("duration", cfg.Duration).Msg("timed run")
	}

	return j.Run(ctx)
}

func runTUI(ctx context.Context, cfg *config.Config, j *jiggler.Jiggler, relay *ui.Relay) error {
	var model ui.Model
	if cfg.Duration > 0 {
		model = ui.NewModelWithDuration(j, appVersion, cfg.Duration)
	} else {
		model = ui.NewModel(j, appVersion)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)
	relay.Attach(p)

	go func() {
		<-ctx.Done()
		log.Info().Msg("received signal, shutting down")
		if err := j.Stop(); err != nil {
			log.Warn().Err(err).Msg("error stopping jiggler")
		}
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "run terminal UI")
	}
	return nil
}
