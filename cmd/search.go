package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search the book's full text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := current.search.Search(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if msg := res.Message(); msg != "" {
			fmt.Fprintln(out, msg)
			return nil
		}
		for _, m := range res.Markers(current.book) {
			fmt.Fprintf(out, "%5d  %-8s %7s  %s\n", m.PageIndex, m.PageNumber, m.Percent, m.Query)
		}
		return nil
	},
}

var tocCmd = &cobra.Command{
	Use:   "toc",
	Short: "List table of contents entries resolved to page indices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		chapters := current.book.Chapters()
		// Chapters come back last first; print in reading order.
		for i := len(chapters) - 1; i >= 0; i-- {
			c := chapters[i]
			fmt.Fprintf(out, "%5d  %-8s %s\n", c.PageIndex, c.PageNumber, c.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd, tocCmd)
}
