package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/buwaro/anchor/pkg/pipeline"
	"github.com/buwaro/anchor/pkg/render"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output    string // output file; empty prints DOT to stdout
	svg       bool   // render the graph to SVG via Graphviz
	direction string // layout direction override
}

// graphCommand creates the graph command: emit the relation dependency
// graph between tagged children, either as DOT text or rendered to SVG.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph [blueprint]",
		Short: "Emit the relation graph of a blueprint as DOT or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout for DOT)")
	cmd.Flags().BoolVar(&opts.svg, "svg", false, "render the graph to SVG via Graphviz")
	cmd.Flags().StringVarP(&opts.direction, "direction", "d", "", "layout direction override: ltr, rtl")

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, path string, opts *graphOpts) error {
	ctx := withLogger(cmd.Context(), c.Logger)
	runner := c.newRunner(true)
	defer runner.Close()

	result, err := runner.Execute(ctx, pipeline.Options{
		Blueprint: path,
		Direction: opts.direction,
		Formats:   []string{pipeline.FormatDOT},
	})
	if err != nil {
		return err
	}
	dot := result.Artifacts[pipeline.FormatDOT]

	if !opts.svg {
		if opts.output != "" {
			return os.WriteFile(opts.output, dot, 0o644)
		}
		_, err := os.Stdout.Write(dot)
		return err
	}

	p := newProgress(loggerFromContext(ctx))
	svg, err := render.RenderGraphSVG(ctx, string(dot))
	if err != nil {
		return err
	}
	out := opts.output
	if out == "" {
		out = "graph.svg"
	}
	if err := os.WriteFile(out, svg, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	p.done(fmt.Sprintf("Rendered relation graph to %s", out))
	return nil
}
