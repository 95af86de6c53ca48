package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/llehouerou/tideplay/internal/config"
	"github.com/llehouerou/tideplay/internal/engine"
	"github.com/llehouerou/tideplay/internal/errmsg"
	"github.com/llehouerou/tideplay/internal/log"
	"github.com/llehouerou/tideplay/internal/media"
	"github.com/llehouerou/tideplay/internal/session"
	"github.com/llehouerou/tideplay/internal/state"
	"github.com/llehouerou/tideplay/internal/surface"
)

type probeOptions struct {
	Window   int
	Position time.Duration
	Timeout  time.Duration
	Autoplay bool
	Until    engine.State
}

func newRunCmd() *cobra.Command {
	var (
		opts       probeOptions
		noAutoplay bool
		untilEnd   bool
		verbose    bool
		save       bool
	)

	cmd := &cobra.Command{
		Use:   "run <file-or-url>...",
		Short: "Acquire a session, print state transitions, then release",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if verbose {
				level = "debug"
			}
			log.Configure(log.Config{Level: level, Output: log.Console(os.Stderr), Service: "probe"})

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			src, err := media.Parse(args...)
			if err != nil {
				return err
			}

			opts.Autoplay = !noAutoplay
			opts.Until = engine.StateReady
			if untilEnd {
				opts.Until = engine.StateEnded
			}

			factory := engine.NewFactory(engine.PlayerOptions{
				Fetcher: engine.NewFetcher(engine.FetcherOptions{
					Dir:           cfg.GetCacheDir(),
					RetryMax:      cfg.HTTP.Retries(),
					HeaderTimeout: cfg.HTTP.HeaderTimeout(),
					Logger:        log.WithComponent("fetch"),
				}),
				Logger: log.WithComponent("engine"),
			})

			st, err := runProbe(cmd.Context(), cmd.OutOrStdout(), factory, src, opts, log.WithComponent("session"))
			fmt.Fprintf(cmd.OutOrStdout(), "released: %s\n", formatState(st))
			if save {
				if serr := saveState(src, st); serr != nil {
					return errors.Join(err, serr)
				}
			}
			return err
		},
	}

	cmd.Flags().IntVarP(&opts.Window, "window", "w", 0, "window index to start at")
	cmd.Flags().DurationVarP(&opts.Position, "position", "p", 0, "position inside the window")
	cmd.Flags().DurationVarP(&opts.Timeout, "timeout", "t", 30*time.Second, "give up after this long")
	cmd.Flags().BoolVar(&noAutoplay, "no-autoplay", false, "prepare without starting playback")
	cmd.Flags().BoolVar(&untilEnd, "until-end", false, "wait for Ended instead of Ready")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
	cmd.Flags().BoolVar(&save, "save", false, "store the released state for the next tideplay run")

	return cmd
}

var errTimeout = errors.New("timed out waiting for the engine")

// runProbe acquires src, prints every transition until opts.Until, an engine
// error, or the timeout, and releases. The released state is returned even on
// error.
func runProbe(
	ctx context.Context,
	out io.Writer,
	build engine.Factory,
	src media.Source,
	opts probeOptions,
	logger zerolog.Logger,
) (session.State, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	events := make(chan any, 16)
	send := func(v any) {
		select {
		case events <- v:
		default:
		}
	}
	obs := &engine.ObserverFuncs{
		StateChanged: func(s engine.State) { send(s) },
		PlayerError:  func(err error) { send(err) },
	}

	ctrl := session.New(build, surface.NewView(),
		session.WithLogger(logger),
		session.WithObserver(obs),
	)

	start := time.Now()
	h, err := ctrl.Acquire(src, session.State{
		Autoplay:    opts.Autoplay,
		WindowIndex: opts.Window,
		Position:    opts.Position,
	})
	if err != nil {
		return ctrl.LastState(), err
	}
	fmt.Fprintf(out, "acquired %s (%d windows)\n", h.ID, src.Len())

	var result error
wait:
	for {
		select {
		case <-ctx.Done():
			result = fmt.Errorf("%w after %s", errTimeout, opts.Timeout)
			break wait
		case ev := <-events:
			elapsed := time.Since(start).Round(time.Millisecond)
			switch v := ev.(type) {
			case error:
				fmt.Fprintf(out, "%8s  error: %v\n", elapsed, v)
				result = v
				break wait
			case engine.State:
				fmt.Fprintf(out, "%8s  %s\n", elapsed, v)
				if v == opts.Until || v == engine.StateEnded {
					break wait
				}
			}
		}
	}

	return ctrl.Release(), result
}

func saveState(src media.Source, st session.State) error {
	store, err := state.Open()
	if err != nil {
		return errmsg.Wrap(errmsg.OpSave, err)
	}
	defer store.Close()
	return errmsg.Wrap(errmsg.OpSave, saveTo(store, src, st))
}

func saveTo(store state.Interface, src media.Source, st session.State) error {
	label := ""
	if item, ok := src.Item(st.WindowIndex); ok {
		label = item.Name()
	}
	return store.SaveSessionNow(state.SessionRecord{
		SourceKey: src.Key(),
		Label:     label,
		State:     st,
	})
}

func formatState(st session.State) string {
	return fmt.Sprintf("autoplay=%t window=%d position=%s", st.Autoplay, st.WindowIndex, st.Position.Round(time.Millisecond))
}
