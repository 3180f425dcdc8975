package main

import (
	"fmt"

	"github.com/kiranshivaraju/reportaudit/internal/audit"
	"github.com/spf13/cobra"
)

func newSampleCmd(_ *app) *cobra.Command {
	var (
		kind   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print a random demo field report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, err := audit.NewSampler(nil).Sample(audit.SampleKind(kind))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, map[string]string{
					"reportText":     sub.ReportText,
					"technicianName": sub.TechnicianName,
					"jobSiteName":    sub.JobSiteName,
				})
			}
			fmt.Fprintf(out, "Technician: %s\nSite: %s\n\n%s\n", sub.TechnicianName, sub.JobSiteName, sub.ReportText)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(audit.SampleRisky), "Sample kind: risky or good")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the sample as JSON")
	return cmd
}
