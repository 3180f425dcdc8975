package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/kiranshivaraju/reportaudit/internal/audit"
	"github.com/kiranshivaraju/reportaudit/internal/dashboard"
	"github.com/kiranshivaraju/reportaudit/internal/export"
	"github.com/kiranshivaraju/reportaudit/pkg/models"
	"github.com/spf13/cobra"
)

const defaultWidth = 100

type auditOptions struct {
	file       string
	technician string
	site       string
	apiKey     string
	sample     string
	asJSON     bool
	exportAs   string
	outDir     string
	width      int
}

func newAuditCmd(a *app) *cobra.Command {
	var opts auditOptions
	cmd := &cobra.Command{
		Use:   "audit [report text...]",
		Short: "Audit a field report and record it in history",
		Long: `Sends the report to the configured AI provider, prints the audit dashboard
and appends the result to history. The report is taken from --file, the
arguments, or stdin, in that order. A blank report does nothing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAudit(cmd, args, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.file, "file", "f", "", `Read the report from a file ("-" for stdin)`)
	f.StringVar(&opts.technician, "technician", "", "Technician name")
	f.StringVar(&opts.site, "site", "", "Job site name")
	f.StringVar(&opts.apiKey, "api-key", "", "Provider credential for this audit (overrides the configured key)")
	f.StringVar(&opts.sample, "sample", "", "Audit a random demo report: risky or good")
	f.BoolVar(&opts.asJSON, "json", false, "Print the history item as JSON")
	f.StringVar(&opts.exportAs, "export", "", "Also export the result: txt or pdf")
	f.StringVar(&opts.outDir, "out", ".", "Directory for --export")
	f.IntVar(&opts.width, "width", defaultWidth, "Dashboard width in columns")
	return cmd
}

func (a *app) runAudit(cmd *cobra.Command, args []string, opts auditOptions) error {
	ctx := cmd.Context()

	var sub audit.Submission
	if opts.sample != "" {
		s, err := audit.NewSampler(nil).Sample(audit.SampleKind(opts.sample))
		if err != nil {
			return err
		}
		sub = s
	} else {
		text, err := readInput(cmd, opts.file, args)
		if err != nil {
			return err
		}
		sub.ReportText = text
	}
	if opts.technician != "" {
		sub.TechnicianName = opts.technician
	}
	if opts.site != "" {
		sub.JobSiteName = opts.site
	}
	sub.Credential = opts.apiKey

	var format export.Format
	if opts.exportAs != "" {
		f, err := export.ParseFormat(opts.exportAs)
		if err != nil {
			return err
		}
		format = f
	}

	st, closeKV, err := a.openHistory(ctx)
	if err != nil {
		return err
	}
	defer closeKV()

	svc, err := a.newService(st)
	if err != nil {
		return err
	}

	item, err := svc.Submit(ctx, sub)
	if err != nil {
		if errors.Is(err, audit.ErrMissingCredential) {
			return errors.New("please enter a valid API key (--api-key, GEMINI_API_KEY or API_KEY)")
		}
		return err
	}
	if item == nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Nothing to audit: the report is empty.")
		return nil
	}

	out := cmd.OutOrStdout()
	if opts.asJSON {
		if err := printJSON(out, item); err != nil {
			return err
		}
	} else {
		printItem(out, *item, opts.width)
	}

	if format != "" {
		path, err := writeExportFile(opts.outDir, format, item.Analysis, exportMeta(*item))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %s\n", path)
	}
	return nil
}

func printItem(w io.Writer, item models.ReportHistoryItem, width int) {
	fmt.Fprintln(w, dashboard.New(width).Render(item.Analysis, dashboard.Context{
		TechnicianName: item.TechnicianName,
		JobSiteName:    item.JobSiteName,
	}))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
