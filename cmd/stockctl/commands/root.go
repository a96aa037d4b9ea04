package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/homestock/internal/config"
	"github.com/JonMunkholm/homestock/internal/inventory"
	"github.com/JonMunkholm/homestock/internal/logging"
	"github.com/JonMunkholm/homestock/internal/remote"
)

var (
	upstreamURL string
	token       string
	address     string

	cfg     *config.CLIConfig
	service *inventory.Service
)

func Execute() error {
	root := &cobra.Command{
		Use:           "stockctl",
		Short:         "Manage a household inventory from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			c, err := config.LoadCLI()
			if err != nil {
				return err
			}
			if upstreamURL != "" {
				c.Upstream.URL = upstreamURL
			}
			if token != "" {
				c.Upstream.Token = token
			}
			if address != "" {
				c.Upstream.Address = address
			}
			if err := c.Validate(); err != nil {
				return err
			}

			logging.SetupWriter(os.Stderr, c.Logging.Level, c.Logging.Format)

			cfg = c
			service = inventory.NewService(
				remote.New(c.Upstream.URL, c.Upstream.Timeout),
				inventory.Options{
					BatchLimit:  c.Import.BatchLimit,
					MaxFileSize: c.Import.MaxFileSize,
					GateWait:    c.Import.MaxWait,
				},
			)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&upstreamURL, "upstream", "", "upstream base URL (default $UPSTREAM_URL)")
	root.PersistentFlags().StringVar(&token, "token", "", "bearer token (default $UPSTREAM_TOKEN)")
	root.PersistentFlags().StringVar(&address, "address", "", "household address (default $HOUSEHOLD_ADDRESS)")

	root.AddCommand(importCmd(), listCmd(), deleteCmd(), updateCmd(), exportCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", describe(err))
	}
	return err
}

// session returns the credentials every subcommand runs with.
func session() inventory.Session {
	return inventory.Session{Token: cfg.Upstream.Token, Address: cfg.Upstream.Address}
}

// describe prefers the user-facing message for known failures.
func describe(err error) string {
	if inventory.IsUserFacing(err) {
		return inventory.FormatUserError(err)
	}
	return err.Error()
}
