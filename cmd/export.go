// Export command.
// Export runs a page range through the transcript pipeline:
// fetch → extract → normalize → render → write.
//
// It handles flag validation, renderer selection and partial failures.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/spreadview/core"
	"github.com/gaurav-prasanna/spreadview/core/extract"
	"github.com/gaurav-prasanna/spreadview/core/normalize"
	"github.com/gaurav-prasanna/spreadview/core/output"
	"github.com/gaurav-prasanna/spreadview/core/render"
	"github.com/gaurav-prasanna/spreadview/core/transcript"
)

// Flag variables.
var (
	flagPDF       bool
	flagMarkdown  bool
	flagJSON      bool
	flagFrom      int
	flagTo        int
	flagOutputDir string
	flagSource    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the book's full text as Markdown, JSON or PDF",
	Long: `Export fetches the full text of a page range from the repository, cleans it,
normalizes it to Markdown and renders it in the chosen format.

Pages whose text cannot be fetched are reported and left out; the rest of
the transcript is still written.

Examples:
  spreadview --settings book.json export --markdown
  spreadview --settings book.json export --pdf --from 10 --to 40 --output_dir ./out`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	// Output format flags (mutually exclusive).
	exportCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	exportCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	exportCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")

	// Page range, as page indices.
	exportCmd.Flags().IntVar(&flagFrom, "from", 0, "First page index")
	exportCmd.Flags().IntVar(&flagTo, "to", -1, "Last page index (default: last page)")

	exportCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: configured or current directory)")
	exportCmd.Flags().StringVar(&flagSource, "source", "", "Source URL recorded in the transcript")
}

func runExport(cmd *cobra.Command, args []string) error {
	renderer, err := selectRenderer(current.cfg.Export.Format)
	if err != nil {
		return err
	}

	dir := flagOutputDir
	if dir == "" {
		dir = current.cfg.Export.OutputDir
	}
	writer, err := output.New(dir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	b := current.book
	to := flagTo
	if to < 0 {
		to = b.PageCount() - 1
	}

	builder := transcript.New(b, b, extract.New(), normalize.New(), current.log.Named("transcript"))
	pages, buildErr := builder.Build(cmd.Context(), flagFrom, to)
	if len(pages) == 0 {
		return fmt.Errorf("nothing to export: %w", buildErr)
	}
	for _, e := range multierr.Errors(buildErr) {
		current.log.Error("Page left out of transcript", zap.Error(e))
	}

	data, err := renderer.Render(pages, builder.Meta(flagSource))
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	suffix := ""
	if flagFrom > 0 || to < b.PageCount()-1 {
		suffix = fmt.Sprintf("p%d-%d", max(flagFrom, 0), to)
	}
	path, err := writer.Write(b.Settings().Label, suffix, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s (%d pages)\n", path, len(pages))

	if n := len(multierr.Errors(buildErr)); n > 0 {
		return fmt.Errorf("%d pages failed", n)
	}
	return nil
}

// selectRenderer creates the Renderer named by flags, falling back to the
// configured default when no format flag is given.
func selectRenderer(fallback string) (core.Renderer, error) {
	formatCount := 0
	for _, f := range []bool{flagPDF, flagMarkdown, flagJSON} {
		if f {
			formatCount++
		}
	}
	if formatCount > 1 {
		return nil, fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}

	switch {
	case flagMarkdown:
		return render.NewMarkdownRenderer(), nil
	case flagJSON:
		return render.NewJSONRenderer(), nil
	case flagPDF:
		return render.NewPDFRenderer(), nil
	}
	switch fallback {
	case "markdown", "":
		return render.NewMarkdownRenderer(), nil
	case "json":
		return render.NewJSONRenderer(), nil
	case "pdf":
		return render.NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown export format %q", fallback)
	}
}
