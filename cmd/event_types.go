package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/calbook/internal/application/usecases"
)

func newEventTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "event-types",
		Short: "List the backend's event types",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			msg := usecases.ListEventTypes{Lister: a.lister, Log: a.log.Named("event_types")}.Execute(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}
