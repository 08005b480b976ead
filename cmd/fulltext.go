package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/spreadview/core/ui"
)

var flagMode int

var fulltextCmd = &cobra.Command{
	Use:   "fulltext <index>",
	Short: "Print the Full Text dialog for a page",
	Long: `Fulltext prints the HTML of the viewer's Full Text dialog.

Modes:
  1  one-page view, the text of the given page
  2  two-page view, the text of both pages of its spread
  3  thumbnail view, no text`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		mode := flagMode
		if mode == 0 {
			mode = current.book.Settings().Mode
		}
		if mode < 1 || mode > 3 {
			return fmt.Errorf("--mode must be 1, 2 or 3 (got %d)", mode)
		}
		out, err := current.dialogs.FullText(cmd.Context(), ui.Mode(mode), index)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fulltextCmd)
	fulltextCmd.Flags().IntVar(&flagMode, "mode", 0, "View mode (default: the book's mode)")
}
