package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/aretw0/memo/pkg/core"
)

func newCreateCmd(g *globalFlags) *cobra.Command {
	var n core.Note

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a memo",
		Long:  `Create a memo at the top of the list. A random ID is used when --id is omitted.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if n.ID == "" {
				n.ID = uuid.NewString()
			}

			svc, err := openService(cmd, g)
			if err != nil {
				return fmt.Errorf("initializing memo: %w", err)
			}

			created, err := svc.Create(cmd.Context(), n)
			if err != nil {
				_ = closeService(cmd, svc)
				return fmt.Errorf("creating memo: %w", err)
			}
			if err := closeService(cmd, svc); err != nil {
				return fmt.Errorf("saving memo: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&n.ID, "id", "", "Memo ID")
	cmd.Flags().StringVar(&n.Title, "title", "", "Memo title")
	cmd.Flags().StringVar(&n.Content, "content", "", "Memo content")
	cmd.Flags().StringVar(&n.Color, "color", core.DefaultColor, "Memo color")
	return cmd
}
