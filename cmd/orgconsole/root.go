package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/b2b-console/orgconsole/console"
	"github.com/b2b-console/orgconsole/remote"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	ConfigPath string
	BaseURL    string
}

// app is built once per invocation from the config file and flags
type app struct {
	console *console.Console
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	var opts rootOptions
	a := &app{}

	cmd := &cobra.Command{
		Use:           "orgconsole",
		Short:         "Manage organizations and their users",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(opts)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "orgconsole.yaml", "client config file")
	cmd.PersistentFlags().StringVar(&opts.BaseURL, "base-url", "", "store base URL (overrides the config file)")

	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newShowCmd(a))
	cmd.AddCommand(newCreateOrgCmd(a))
	cmd.AddCommand(newEditCmd(a))
	cmd.AddCommand(newSetStatusCmd(a))
	cmd.AddCommand(newDeleteOrgCmd(a))
	cmd.AddCommand(newAddUserCmd(a))
	cmd.AddCommand(newEditUserCmd(a))
	cmd.AddCommand(newDeleteUserCmd(a))
	return cmd
}

func (a *app) init(opts rootOptions) error {
	cfg, err := console.LoadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	if u := strings.TrimSpace(opts.BaseURL); u != "" {
		cfg.BaseURL = strings.TrimRight(u, "/")
	}

	logger, err := cfg.Logger()
	if err != nil {
		return err
	}
	a.logger = logger

	client := remote.New(cfg.BaseURL,
		remote.WithTimeout(cfg.Timeout),
		remote.WithReadRetries(cfg.ReadRetries),
		remote.WithLogger(logger.Named("remote")),
	)
	a.console = console.New(client, console.WithLogger(logger.Named("console")))
	return nil
}

// loadOrganization opens the detail view of orgID
func (a *app) loadOrganization(ctx context.Context, orgID string) (*console.DetailController, error) {
	view := a.console.Organization(orgID)
	if err := view.Load(ctx); err != nil {
		return nil, err
	}
	return view, nil
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
