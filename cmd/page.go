package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var pageCmd = &cobra.Command{
	Use:   "page <index>",
	Short: "Show label, object id, URIs and geometry of a page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		b := current.book
		uri, err := b.PageURI(index)
		if err != nil {
			return err
		}
		dims, err := b.PageDimensions(cmd.Context(), index)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "label\t%s\n", b.PageName(index))
		fmt.Fprintf(tw, "position\t%s\n", b.NavPageNum(index))
		if pid, ok := b.PID(index); ok {
			fmt.Fprintf(tw, "pid\t%s\n", pid)
			fmt.Fprintf(tw, "text\t%s\n", b.TextURI(pid))
		}
		fmt.Fprintf(tw, "image\t%s\n", uri)
		fmt.Fprintf(tw, "size\t%dx%d\n", dims.Width, dims.Height)
		if side, err := b.Layout().PageSide(index); err == nil {
			fmt.Fprintf(tw, "side\t%s (%s)\n", side, directionName(b.Layout().Configuration().Direction))
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(pageCmd)
}
