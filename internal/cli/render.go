package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/buwaro/anchor/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string   // output file (single format) or base path (multiple)
	formats   []string // output formats: "svg", "dot", "json"
	width     int      // exact width constraint
	height    int      // exact height constraint
	direction string   // layout direction override
	scale     float64  // coordinate multiplier for SVG output
	labels    bool     // draw child identifiers in SVG output
	noCache   bool     // bypass the artifact cache
}

// renderCommand creates the render command for generating artifacts.
//
// Default settings:
//   - format: svg
//   - scale: 1
//   - labels: on
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		scale:  pipeline.DefaultScale,
		labels: true,
	}

	cmd := &cobra.Command{
		Use:   "render [blueprint]",
		Short: "Render a blueprint to SVG, DOT, or JSON artifacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, json (comma-separated)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "exact width constraint (0 = ask the blueprint)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "exact height constraint (0 = ask the blueprint)")
	cmd.Flags().StringVarP(&opts.direction, "direction", "d", "", "layout direction override: ltr, rtl")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "coordinate multiplier for SVG output")
	cmd.Flags().BoolVar(&opts.labels, "labels", opts.labels, "draw child identifiers in SVG output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts *renderOpts) error {
	ctx := withLogger(cmd.Context(), c.Logger)
	runner := c.newRunner(opts.noCache)
	defer runner.Close()

	p := newProgress(loggerFromContext(ctx))
	result, err := runner.Execute(ctx, pipeline.Options{
		Blueprint: path,
		Width:     opts.width,
		Height:    opts.height,
		Direction: opts.direction,
		Formats:   opts.formats,
		Scale:     opts.scale,
		Labels:    opts.labels,
	})
	if err != nil {
		return err
	}

	if err := writeArtifacts(path, opts.output, opts.formats, result.Artifacts); err != nil {
		return err
	}
	p.done(fmt.Sprintf("Rendered %d artifact(s)", len(result.Artifacts)))
	return nil
}

// writeArtifacts writes each rendered artifact to disk. With one format,
// output names the file directly; with several, output (or the blueprint
// path) is the base and the format becomes the extension.
func writeArtifacts(blueprintPath, output string, formats []string, artifacts map[string][]byte) error {
	base := output
	if base == "" {
		base = strings.TrimSuffix(blueprintPath, filepath.Ext(blueprintPath))
	}

	for _, format := range formats {
		path := base + "." + format
		if output != "" && len(formats) == 1 {
			path = output
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}
