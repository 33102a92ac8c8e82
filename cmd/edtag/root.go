package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootOptions holds flags shared by every command
type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "edtag",
		Short: "Annotate census images with Enumeration District numbers",
		Long: `edtag walks a collection of census microfilm images in order and records
which Enumeration Districts (EDs) each ED description page covers.

Running edtag without a subcommand starts an annotation session.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnnotate(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default ~/.config/edtag/config.yaml)")

	cmd.AddCommand(newSetupCmd(opts))
	cmd.AddCommand(newStatusCmd(opts))
	cmd.AddCommand(newExportCmd(opts))

	return cmd
}
