package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aescanero/dago-node-view/internal/logging"
)

const appName = "viewctl"

type rootOptions struct {
	root     string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   appName,
		Short: fmt.Sprintf("%s renders and checks view templates.", appName),
	}
	cmd.PersistentFlags().StringVarP(&opts.root, "root", "r", "templates", "template root directory")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.AddCommand(newRenderCmd(opts), newCheckCmd(opts))
	return cmd
}

func (o *rootOptions) logger() *zap.Logger {
	logger, err := logging.NewConsole(o.logLevel)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// Execute executes the root command.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}
