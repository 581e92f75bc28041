package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/memo/pkg/core"
)

func newGetCmd(g *globalFlags) *cobra.Command {
	var getJSON bool

	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Print a memo",
		Long:  `Print the content of a memo by its ID, or the whole record with --json.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			svc, err := openService(cmd, g)
			if err != nil {
				return fmt.Errorf("initializing memo: %w", err)
			}
			defer closeService(cmd, svc)

			n, ok := svc.Get(cmd.Context(), id)
			if !ok {
				return fmt.Errorf("%w: %s", core.ErrNotFound, id)
			}

			out := cmd.OutOrStdout()
			if getJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(n)
			}

			fmt.Fprintln(out, n.Content)
			return nil
		},
	}

	cmd.Flags().BoolVar(&getJSON, "json", false, "Output in JSON format")
	return cmd
}
