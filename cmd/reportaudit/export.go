package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kiranshivaraju/reportaudit/internal/export"
	"github.com/kiranshivaraju/reportaudit/pkg/models"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		formatFlag string
		outDir     string
	)
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a stored audit as a text or PDF document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			st, closeKV, err := a.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			defer closeKV()

			item, err := st.Get(args[0])
			if err != nil {
				return err
			}
			path, err := writeExportFile(outDir, format, item.Analysis, exportMeta(item))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&formatFlag, "format", "txt", "Document format: txt or pdf")
	cmd.Flags().StringVar(&outDir, "out", ".", "Output directory")
	return cmd
}

func exportMeta(item models.ReportHistoryItem) export.Meta {
	return export.Meta{
		TechnicianName: item.TechnicianName,
		JobSiteName:    item.JobSiteName,
		Now:            time.Now(),
	}
}

// writeExportFile renders result into dir and returns the written path.
func writeExportFile(dir string, format export.Format, result models.AnalysisResult, meta export.Meta) (string, error) {
	var body []byte
	switch format {
	case export.FormatPDF:
		var buf bytes.Buffer
		if err := export.PDF(&buf, result, meta); err != nil {
			return "", fmt.Errorf("render pdf: %w", err)
		}
		body = buf.Bytes()
	default:
		body = export.Text(result, meta)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, export.FileName(meta.JobSiteName, format, meta.Now))
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
