package main

import (
	"context"
	"fmt"
	"log"

	internalApp "chmfc/internal/app"
	"chmfc/internal/config"
	"chmfc/pkg/app"

	_ "chmfc/migrations"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	logger, err := cfg.Log.NewLogger()
	if err != nil {
		log.Fatal("Error creating logger:", err)
	}

	pb := pocketbase.New()

	// 1. Migrations
	migratecmd.MustRegister(pb, pb.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	// 2. Dependencies
	container, err := internalApp.NewContainer(context.Background(), pb, cfg, logger)
	if err != nil {
		logger.Fatal("Error initializing container", zap.Error(err))
	}

	// 3. Routes
	app.RegisterRoutes(pb, container, "./pb_public")

	// 4. Commands
	pb.RootCmd.AddCommand(promoteCommand(container))

	pb.OnTerminate().BindFunc(func(e *core.TerminateEvent) error {
		container.OrderService.WaitNotifications()
		_ = logger.Sync()
		return e.Next()
	})

	if err := pb.Start(); err != nil {
		logger.Fatal("PocketBase stopped", zap.Error(err))
	}
}

// promoteCommand grants the Admin role to an existing account
func promoteCommand(c *internalApp.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "promote [email]",
		Short: "Grant the Admin role to an existing user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := c.AuthService.Promote(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) is now %s\n", profile.Name, profile.Email, profile.Role)
			return nil
		},
	}
}
