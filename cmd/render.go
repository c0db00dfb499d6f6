// Package cmd — render command.
// Writes a single assembled lesson as JSON, Markdown or PDF for inspection.
package cmd

import (
	"fmt"
	"os"

	"github.com/gaurav-prasanna/dwlg/core"
	"github.com/gaurav-prasanna/dwlg/core/output"
	"github.com/gaurav-prasanna/dwlg/core/render"
	"github.com/spf13/cobra"
)

// Flag variables.
var (
	flagPDF       bool
	flagMarkdown  bool
	flagJSON      bool
	flagOutputDir string
)

var renderCmd = &cobra.Command{
	Use:   "render <lesson-id>",
	Short: "Render one lesson to JSON, Markdown or PDF",
	Long: `Render assembles a lesson from its raw file and writes it in a readable
format, including the media, links and content hash the dataset record
leaves out.

Examples:
  dwlg render 64273452 --markdown
  dwlg render 64273452 --pdf --output_dir ./out`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	// Output format flags (mutually exclusive).
	renderCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	renderCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	renderCmd.Flags().BoolVar(&flagJSON, "json", false, "Output JSON")
	renderCmd.MarkFlagsMutuallyExclusive("pdf", "markdown", "json")
	renderCmd.MarkFlagsOneRequired("pdf", "markdown", "json")

	renderCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
}

func runRender(cmd *cobra.Command, args []string) error {
	id := args[0]

	renderer, err := selectRenderer()
	if err != nil {
		return err
	}

	p, err := newPipeline()
	if err != nil {
		return err
	}
	defer p.log.Sync()

	lesson, err := p.extractor.Load(id)
	if err != nil {
		return err
	}

	data, err := renderer.Render(lesson)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.WriteLesson(id, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer() (core.Renderer, error) {
	switch {
	case flagMarkdown:
		return render.NewMarkdownRenderer(), nil
	case flagJSON:
		return render.NewJSONRenderer(), nil
	case flagPDF:
		return render.NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("no output format selected")
	}
}
