package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmcdole/edtag/internal/export"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every recorded ED to a Parquet file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			s, err := openSession(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			n, err := export.WriteFile(output, s.nav.Images(), s.logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d ED assignments to %s\n", n, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "eds.parquet", "output file")
	return cmd
}
