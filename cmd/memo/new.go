package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/memo"
	"github.com/aretw0/memo/pkg/adapters/window"
)

// newNewCmd mirrors the tray menu "new memo" action.
func newNewCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Create a blank memo as the tray menu does",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			windows := window.NewRegistry(nil)

			svc, err := openService(cmd, g, memo.WithWindows(windows))
			if err != nil {
				return fmt.Errorf("initializing memo: %w", err)
			}
			defer closeService(cmd, svc)

			n, err := svc.NewFromTray(cmd.Context())
			if err != nil {
				return fmt.Errorf("creating memo: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", n.ID, window.Label(n.ID))
			return nil
		},
	}
}
