package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a memo",
		Long:  `Delete removes a memo and rewrites the data file immediately.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			svc, err := openService(cmd, g)
			if err != nil {
				return fmt.Errorf("initializing memo: %w", err)
			}
			defer closeService(cmd, svc)

			if err := svc.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("deleting memo: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Memo deleted: %s\n", id)
			return nil
		},
	}
}
