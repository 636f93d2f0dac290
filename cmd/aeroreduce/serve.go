package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"aeroreduce/internal/app"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the reduction HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Server.Port = port
			}
			application, err := app.NewApplication(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return application.Run(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "override server.port")
	return cmd
}
