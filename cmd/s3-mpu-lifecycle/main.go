package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/awsops/s3-mpu-lifecycle/commands"
	"github.com/awsops/s3-mpu-lifecycle/log"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "\n   ERROR: %v\n\n", err)
		os.Exit(1)
	}
}

func run() error {
	debug := false
	level := "info"

	cmd := cobra.Command{
		Use:           commands.APP,
		Short:         "Reconcile S3 bucket lifecycle configurations with an abort-incomplete-multipart-upload rule",
		Version:       commands.VERSION,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if err := log.SetLevel(level); err != nil {
				return err
			}
			log.SetDebug(debug)

			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", debug, "Enable debugging information")
	cmd.PersistentFlags().StringVar(&level, "log-level", level, "Log level, one of: debug, info, warn, error")

	cmd.AddCommand(commands.NewReconcileCmd())
	cmd.AddCommand(commands.NewShowCmd())

	return cmd.Execute()
}
