package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/memo"
	memolifecycle "github.com/aretw0/memo/pkg/adapters/lifecycle"
	"github.com/aretw0/memo/pkg/adapters/window"
	"github.com/aretw0/memo/pkg/core"
)

const quitTimeout = 5 * time.Second

func newServeCmd(g *globalFlags) *cobra.Command {
	var (
		watch     bool
		filter    string
		types     []string
		serveJSON bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Keep the store open and stream change events",
		Long: `Serve keeps the memo store loaded, reloads it when the data file is edited
by another program and prints every change event until interrupted.
SIGHUP hides the main window, as closing it does, and keeps serving.
On SIGINT or SIGTERM pending changes are written before exiting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eventTypes, err := parseEventTypes(types)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			cmd.SetContext(ctx)

			hangup := make(chan os.Signal, 1)
			signal.Notify(hangup, syscall.SIGHUP)
			defer signal.Stop(hangup)

			windows := window.NewRegistry(slog.Default())
			svc, err := openService(cmd, g,
				memo.WithWatch(watch),
				memo.WithWindows(windows),
			)
			if err != nil {
				return fmt.Errorf("initializing memo: %w", err)
			}

			events, err := svc.Subscribe(ctx, filter)
			if err != nil {
				_ = svc.Quit(context.Background())
				return fmt.Errorf("subscribing: %w", err)
			}

			src := memolifecycle.NewSource(events, eventTypes...)
			if err := src.Start(ctx); err != nil {
				_ = svc.Quit(context.Background())
				return err
			}

			if err := svc.ShowMain(ctx); err != nil {
				slog.Warn("failed to show main window", "error", err)
			}
			slog.Info("serving memos", "memos", len(svc.List(ctx)), "watch", watch)

			encoder := json.NewEncoder(cmd.OutOrStdout())
		loop:
			for {
				select {
				case <-hangup:
					windows.RequestCloseMain()
					slog.Info("main window hidden, still serving")

				case e, ok := <-src.Events():
					if !ok {
						break loop
					}
					ev, ok := e.(core.Event)
					if !ok {
						continue
					}
					if serveJSON {
						if err := encoder.Encode(ev); err != nil {
							slog.Error("failed to encode event", "event", ev.String(), "error", err)
						}
						continue
					}
					slog.Info("memo event", "event", ev.String())
				}
			}

			quitCtx, cancel := context.WithTimeout(context.Background(), quitTimeout)
			defer cancel()
			if err := svc.Quit(quitCtx); err != nil {
				return fmt.Errorf("final flush: %w", err)
			}
			slog.Info("memos saved, bye")
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", true, "Reload when the data file changes on disk")
	cmd.Flags().StringVar(&filter, "filter", "", "Only report memos whose ID matches this glob")
	cmd.Flags().StringSliceVar(&types, "types", nil, "Only report these event types (created, updated, deleted, reloaded)")
	cmd.Flags().BoolVar(&serveJSON, "json", false, "Print events as JSON lines on stdout")
	return cmd
}

func parseEventTypes(names []string) ([]core.EventType, error) {
	types := make([]core.EventType, 0, len(names))
	for _, name := range names {
		t := core.EventType(name)
		switch t {
		case core.EventCreated, core.EventUpdated, core.EventDeleted, core.EventReloaded:
			types = append(types, t)
		default:
			return nil, fmt.Errorf("unknown event type %q", name)
		}
	}
	return types, nil
}
