package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/calbook/internal/application/usecases"
)

func newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check the booking backend settings and the slot store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			if err := (usecases.PingProvider{Provider: a.provider}).Execute(ctx); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: ok\n", a.provider.Name())

			if a.pool != nil {
				if err := a.pool.Ping(ctx); err != nil {
					return fmt.Errorf("postgres: %w", err)
				}
				fmt.Fprintln(out, "postgres: ok")
			}
			return nil
		},
	}
}
