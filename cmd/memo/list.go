package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(g *globalFlags) *cobra.Command {
	var listJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all memos, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService(cmd, g)
			if err != nil {
				return fmt.Errorf("initializing memo: %w", err)
			}
			defer closeService(cmd, svc)

			notes := svc.List(cmd.Context())

			out := cmd.OutOrStdout()
			if listJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(notes)
			}

			for _, n := range notes {
				fmt.Fprintf(out, "%s\t%s\t%s\n", n.ID, n.Color, n.Title)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	return cmd
}
