package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/kiranshivaraju/reportaudit/internal/tui"
	"github.com/kiranshivaraju/reportaudit/pkg/models"
	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List, show, browse or clear past audits",
	}
	cmd.AddCommand(
		newHistoryListCmd(a),
		newHistoryShowCmd(a),
		newHistoryClearCmd(a),
		newHistoryBrowseCmd(a),
	)
	return cmd
}

func newHistoryListCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List past audits, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeKV, err := a.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			defer closeKV()

			items := st.Items()
			if items == nil {
				items = []models.ReportHistoryItem{}
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, items)
			}
			if len(items) == 0 {
				fmt.Fprintln(out, "No audits yet.")
				return nil
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "WHEN", "STATUS", "REPORT", "TECHNICIAN", "SITE")
			for _, it := range items {
				t.Row(
					it.ID,
					it.Timestamp.In(time.Local).Format(tui.ShortTimestampLayout),
					tui.Badge(it.Analysis),
					tui.Preview(it.ReportText, 48),
					it.TechnicianName,
					it.JobSiteName,
				)
			}
			fmt.Fprintln(out, t.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print items as JSON")
	return cmd
}

func newHistoryShowCmd(a *app) *cobra.Command {
	var (
		asJSON bool
		width  int
	)
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Re-display a stored audit without calling the provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeKV, err := a.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			defer closeKV()

			item, err := st.Get(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), item)
			}
			printItem(cmd.OutOrStdout(), item, width)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the item as JSON")
	cmd.Flags().IntVar(&width, "width", defaultWidth, "Dashboard width in columns")
	return cmd
}

func newHistoryClearCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every stored audit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear history without --yes")
			}
			st, closeKV, err := a.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			defer closeKV()

			if _, err := st.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the clear")
	return cmd
}

func newHistoryBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse past audits interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeKV, err := a.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			defer closeKV()
			return tui.Run(st.Items(), st)
		},
	}
}
