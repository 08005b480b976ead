package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/spreadview/core/layout"
)

var sideCmd = &cobra.Command{
	Use:   "side <index>",
	Short: "Print the side (L or R) a page renders on",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		side, err := current.book.Layout().PageSide(index)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), side)
		return nil
	},
}

var spreadCmd = &cobra.Command{
	Use:   "spread <index>",
	Short: "Print the two-page spread containing a page",
	Long: `Spread prints the left and right page indices shown together with the
given page. A member outside the book is printed as "-" (no facing page).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		sp, err := current.book.SpreadPages(index)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "left:  %s\nright: %s\n",
			member(sp.Left, sp.HasLeft), member(sp.Right, sp.HasRight))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sideCmd, spreadCmd)
}

func member(index int, present bool) string {
	if !present {
		return "-"
	}
	return fmt.Sprintf("%d (%s)", index, current.book.PageName(index))
}

// parseIndex accepts any integer; the resolver handles out-of-book indices.
func parseIndex(s string) (int, error) {
	index, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid page index %q: %w", s, err)
	}
	return index, nil
}

// directionName is used in human readable output.
func directionName(d layout.Direction) string {
	if d == layout.RTL {
		return "right-to-left"
	}
	return "left-to-right"
}
