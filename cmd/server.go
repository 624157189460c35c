package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/calbook/internal/application/usecases"
	"github.com/example/calbook/internal/infrastructure/postgres"
	"github.com/example/calbook/internal/interfaces/httpapi"
)

func newServerCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Serve the booking tool API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.cfg.RequireCal(); err != nil {
				a.log.Warn("booking backend not configured; bookings will fail", zap.Error(err))
			}

			if migrateUp && a.cfg.SlotSource == "postgres" {
				pool, err := a.openPool(ctx)
				if err != nil {
					return err
				}
				version, err := postgres.Migrate(ctx, pool)
				if err != nil {
					return err
				}
				a.log.Info("migrations applied", zap.Int64("version", version))
			}

			if a.cfg.IsProduction() {
				gin.SetMode(gin.ReleaseMode)
			}

			h := httpapi.Handlers{
				Book:            usecases.StartBooking{Slots: a.slots, Backend: a.provider, Log: a.log.Named("booking")},
				EventTypes:      usecases.ListEventTypes{Lister: a.lister, Log: a.log.Named("event_types")},
				Check:           usecases.CheckSlot{Slots: a.slots},
				DefaultTimeZone: a.cfg.DefaultTimeZone,
			}
			sessions := httpapi.NewSessionManager(a.cfg.SessionHashKey, a.cfg.SessionBlockKey)
			return httpapi.New(a.cfg.HTTPAddr, sessions, h, a.log.Named("http")).ListenAndServe(ctx)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", true, "run database migrations on startup when SLOT_SOURCE=postgres")
	cmd.Flags().Lookup("migrate").NoOptDefVal = "true"
	return cmd
}
