package main

import (
	"fmt"

	"github.com/kiranshivaraju/reportaudit/internal/dashboard"
	"github.com/kiranshivaraju/reportaudit/internal/markdown"
	"github.com/spf13/cobra"
)

func newRenderCmd(_ *app) *cobra.Command {
	var (
		file   string
		asJSON bool
		width  int
	)
	cmd := &cobra.Command{
		Use:   "render [text...]",
		Short: "Render client-rewrite markdown as display blocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, file, args)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), markdown.Collect(text))
			}
			fmt.Fprintln(cmd.OutOrStdout(), dashboard.New(width).Blocks(text))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", `Read text from a file ("-" for stdin)`)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the block sequence as JSON")
	cmd.Flags().IntVar(&width, "width", defaultWidth, "Width in columns")
	return cmd
}
