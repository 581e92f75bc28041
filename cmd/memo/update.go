package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/memo/pkg/core"
)

type updateFlags struct {
	title, content, color string
	open, onTop           bool
	x, y, width, height   float64
}

func newUpdateCmd(g *globalFlags) *cobra.Command {
	var f updateFlags

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update fields of a memo",
		Long: `Update only the fields given as flags. Window flags are merged into the
memo's current window geometry.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			svc, err := openService(cmd, g)
			if err != nil {
				return fmt.Errorf("initializing memo: %w", err)
			}

			current, ok := svc.Get(cmd.Context(), id)
			if !ok {
				_ = closeService(cmd, svc)
				return fmt.Errorf("%w: %s", core.ErrNotFound, id)
			}

			upd := buildUpdate(cmd, f, current)
			if upd.IsEmpty() {
				_ = closeService(cmd, svc)
				return errors.New("nothing to update: pass at least one field flag")
			}

			updated, err := svc.Update(cmd.Context(), id, upd)
			if err != nil {
				_ = closeService(cmd, svc)
				return fmt.Errorf("updating memo: %w", err)
			}
			if err := closeService(cmd, svc); err != nil {
				return fmt.Errorf("saving memo: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s updated at %d\n", updated.ID, updated.UpdatedAt)
			return nil
		},
	}

	cmd.Flags().StringVar(&f.title, "title", "", "New title")
	cmd.Flags().StringVar(&f.content, "content", "", "New content")
	cmd.Flags().StringVar(&f.color, "color", "", "New color")
	cmd.Flags().BoolVar(&f.open, "open", false, "Whether the memo window is open")
	cmd.Flags().BoolVar(&f.onTop, "on-top", false, "Keep the memo window above others")
	cmd.Flags().Float64Var(&f.x, "x", 0, "Window X position")
	cmd.Flags().Float64Var(&f.y, "y", 0, "Window Y position")
	cmd.Flags().Float64Var(&f.width, "width", 0, "Window width")
	cmd.Flags().Float64Var(&f.height, "height", 0, "Window height")
	return cmd
}

// buildUpdate turns the flags the user actually set into a NoteUpdate.
func buildUpdate(cmd *cobra.Command, f updateFlags, current core.Note) core.NoteUpdate {
	flags := cmd.Flags()
	var upd core.NoteUpdate

	if flags.Changed("title") {
		upd.Title = &f.title
	}
	if flags.Changed("content") {
		upd.Content = &f.content
	}
	if flags.Changed("color") {
		upd.Color = &f.color
	}

	var w core.WindowState
	if current.Window != nil {
		w = *current.Window
	}
	windowChanged := false
	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
			windowChanged = true
		}
	}
	set("open", func() { w.IsOpen = f.open })
	set("on-top", func() { w.AlwaysOnTop = f.onTop })
	set("x", func() { w.X = f.x })
	set("y", func() { w.Y = f.y })
	set("width", func() { w.Width = f.width })
	set("height", func() { w.Height = f.height })
	if windowChanged {
		upd.Window = &w
	}

	return upd
}
