package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tideplay/internal/app"
	"github.com/llehouerou/tideplay/internal/config"
	"github.com/llehouerou/tideplay/internal/engine"
	"github.com/llehouerou/tideplay/internal/icons"
	"github.com/llehouerou/tideplay/internal/lifecycle"
	"github.com/llehouerou/tideplay/internal/log"
	"github.com/llehouerou/tideplay/internal/media"
	"github.com/llehouerou/tideplay/internal/mpris"
	"github.com/llehouerou/tideplay/internal/notify"
	"github.com/llehouerou/tideplay/internal/session"
	"github.com/llehouerou/tideplay/internal/state"
	"github.com/llehouerou/tideplay/internal/stderr"
	"github.com/llehouerou/tideplay/internal/surface"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Logs go to a file: the terminal belongs to the UI.
	logFile, err := log.OpenFile(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	log.Configure(log.Config{Level: cfg.LogLevel, Output: logFile})
	logger := log.WithComponent("main")

	if err := stderr.Start(log.WithComponent("stderr")); err != nil {
		logger.Warn().Err(err).Msg("stderr capture unavailable")
	}
	defer stderr.Stop()

	icons.Init(cfg.Icons)

	uris := args
	if len(uris) == 0 {
		uris = cfg.Sources
	}
	src, err := media.Parse(uris...)
	if err != nil {
		if errors.Is(err, media.ErrEmptySource) {
			return errors.New("usage: tideplay <file-or-url>... (or set sources in config.toml)")
		}
		return err
	}

	for _, it := range src.Items {
		if !media.IsMediaFile(it.Path()) {
			logger.Warn().Str("uri", it.URI).Msg("unrecognized media extension, playback will fail")
		}
	}

	band, err := lifecycle.ParseBand(cfg.Band, lifecycle.MultiWindow)
	if err != nil {
		return err
	}

	store, err := state.Open()
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	defer store.Close()

	var toaster notify.Toaster = notify.NopToaster{}
	if cfg.NotificationsEnabled() {
		n, err := notify.New()
		if err != nil {
			logger.Warn().Err(err).Msg("notifications unavailable")
		} else {
			toaster = notify.NewDesktopToaster(n, "Tideplay", log.WithComponent("notify"))
		}
	}

	httpCfg := cfg.HTTP
	factory := engine.NewFactory(engine.PlayerOptions{
		Fetcher: engine.NewFetcher(engine.FetcherOptions{
			Dir:           cfg.GetCacheDir(),
			RetryMax:      httpCfg.Retries(),
			HeaderTimeout: httpCfg.HeaderTimeout(),
			Logger:        log.WithComponent("fetch"),
		}),
		Logger: log.WithComponent("engine"),
	})

	view := surface.NewView()
	events := app.NewForwarder(32)
	defer events.Close()

	ctrl := session.New(factory, view,
		session.WithLogger(log.WithComponent("session")),
		session.WithToaster(toaster),
		session.WithBufferingMessage(cfg.GetBufferingMessage()),
		session.WithObserver(events),
	)

	initial := app.RestoreState(store, src, logger)
	binder := lifecycle.NewBinder(band, ctrl, src, initial,
		lifecycle.WithBinderLogger(log.WithComponent("lifecycle")),
		lifecycle.OnRelease(app.PersistRelease(store)),
	)
	// Whatever the exit path, hand the engine back and persist.
	defer binder.Shutdown()

	mediaKeys, err := mpris.New(ctrl, log.WithComponent("mpris"))
	if err != nil {
		logger.Warn().Err(err).Msg("mpris unavailable")
	} else {
		defer mediaKeys.Close()
	}

	logger.Info().
		Int("windows", src.Len()).
		Str("band", band.String()).
		Msg("starting")

	m := app.New(app.Options{
		Controller: ctrl,
		Binder:     binder,
		View:       view,
		Events:     events.Events(),
		Logger:     log.WithComponent("app"),
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
