package cli

import (
	"github.com/spf13/cobra"

	"github.com/chazu/groundbox/pkg/jobs"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the generation job server",
		Long:  "Serve runs an HTTP server that accepts parameter sets, generates the full part set in an isolated per-job directory, and serves the results individually or as a zip archive.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := jobs.LoadConfig(configPath)
			if err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())
			runner := jobs.NewRunner(cfg, logger)
			return jobs.NewServer(cfg, runner, logger).ListenAndServe()
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML config file (defaults apply when omitted)")
	return cmd
}
