package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	aio "github.com/buwaro/anchor/pkg/io"
	"github.com/buwaro/anchor/pkg/pipeline"
)

// resolveOpts holds the command-line flags for the resolve command.
type resolveOpts struct {
	width     int    // exact width constraint; 0 lets the blueprint decide
	height    int    // exact height constraint; 0 lets the blueprint decide
	direction string // "ltr" or "rtl" override
	output    string // write the JSON document here instead of printing a table
	jsonOut   bool   // print the JSON document to stdout
}

// resolveCommand creates the resolve command: run the layout pass and show
// the resulting frames.
func (c *CLI) resolveCommand() *cobra.Command {
	var opts resolveOpts

	cmd := &cobra.Command{
		Use:   "resolve [blueprint]",
		Short: "Resolve a blueprint into concrete frames",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runResolve(cmd, args[0], &opts)
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", 0, "exact width constraint (0 = ask the blueprint)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "exact height constraint (0 = ask the blueprint)")
	cmd.Flags().StringVarP(&opts.direction, "direction", "d", "", "layout direction override: ltr, rtl")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the JSON document to a file")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the JSON document instead of a table")

	return cmd
}

func (c *CLI) runResolve(cmd *cobra.Command, path string, opts *resolveOpts) error {
	ctx := withLogger(cmd.Context(), c.Logger)
	runner := c.newRunner(true)
	defer runner.Close()

	p := newProgress(loggerFromContext(ctx))
	result, err := runner.Execute(ctx, pipeline.Options{
		Blueprint: path,
		Width:     opts.width,
		Height:    opts.height,
		Direction: opts.direction,
		Formats:   []string{pipeline.FormatJSON},
	})
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Resolved %d frames", len(result.Document.Frames)))

	if opts.output != "" {
		return os.WriteFile(opts.output, result.Artifacts[pipeline.FormatJSON], 0o644)
	}
	if opts.jsonOut {
		_, err := os.Stdout.Write(result.Artifacts[pipeline.FormatJSON])
		return err
	}

	printDocument(result.Document)
	return nil
}

// printDocument renders the resolved document as a table on stdout.
func printDocument(doc *aio.Document) {
	fmt.Println(StyleTitle.Render(fmt.Sprintf("%s %dx%d %s", doc.Container, doc.Width, doc.Height, doc.Direction)))
	if doc.Pass != nil {
		fmt.Println(StyleWarning.Render(fmt.Sprintf(
			"relation cycle fallback: %d horizontal, %d vertical",
			doc.Pass.HorizontalCycleFallback, doc.Pass.VerticalCycleFallback)))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(StyleDim).
		Headers("ID", "LEFT", "TOP", "RIGHT", "BOTTOM", "W", "H")
	for _, f := range doc.Frames {
		id := f.ID
		if f.Visibility != "" {
			id += " (" + f.Visibility + ")"
		}
		t.Row(id,
			strconv.Itoa(f.Left), strconv.Itoa(f.Top),
			strconv.Itoa(f.Right), strconv.Itoa(f.Bottom),
			strconv.Itoa(f.Right-f.Left), strconv.Itoa(f.Bottom-f.Top))
	}
	fmt.Println(t)
}
