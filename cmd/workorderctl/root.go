package main

import (
	"github.com/maintenance/backend/internal/infrastructure/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "workorderctl",
		Short:         "Render maintenance work orders to PDF without the HTTP service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log renderer diagnostics to stderr")

	cmd.AddCommand(newRenderCmd(opts))
	cmd.AddCommand(newCatalogsCmd())
	return cmd
}

// logger writes console logs to stderr, keeping stdout for command output
func (o *rootOptions) logger() *zap.Logger {
	if !o.verbose {
		return zap.NewNop()
	}
	cfg := logger.DefaultConfig()
	cfg.Level = "debug"
	cfg.Output = "stderr"
	l, err := logger.New(cfg)
	if err != nil {
		return zap.NewNop()
	}
	return l
}
