package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/buwaro/anchor/pkg/layout"
	"github.com/buwaro/anchor/pkg/pipeline"
)

// previewOpts holds the command-line flags for the preview command.
type previewOpts struct {
	width      int    // initial width constraint
	height     int    // initial height constraint
	direction  string // initial layout direction
	cellWidth  int    // layout pixels per terminal column
	cellHeight int    // layout pixels per terminal row
}

// previewCommand creates the preview command: an interactive terminal view
// of a blueprint that re-resolves as the simulated container resizes.
func (c *CLI) previewCommand() *cobra.Command {
	opts := previewOpts{cellWidth: 4, cellHeight: 8}

	cmd := &cobra.Command{
		Use:   "preview [blueprint]",
		Short: "Interactively preview a blueprint in the terminal",
		Long: `Preview resolves the blueprint and draws its frames as character
cells. Arrow keys resize the simulated container, re-running the layout
pass each time; 'd' flips the layout direction, 'r' resets constraints.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd, args[0], &opts)
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", 0, "initial width constraint (0 = ask the blueprint)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "initial height constraint (0 = ask the blueprint)")
	cmd.Flags().StringVarP(&opts.direction, "direction", "d", "", "layout direction: ltr, rtl")
	cmd.Flags().IntVar(&opts.cellWidth, "cell-width", opts.cellWidth, "layout pixels per terminal column")
	cmd.Flags().IntVar(&opts.cellHeight, "cell-height", opts.cellHeight, "layout pixels per terminal row")

	return cmd
}

func (c *CLI) runPreview(cmd *cobra.Command, path string, opts *previewOpts) error {
	runner := c.newRunner(true)
	defer runner.Close()

	popts := pipeline.Options{Blueprint: path, Direction: opts.direction}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	_, bp, err := runner.Load(popts)
	if err != nil {
		return err
	}
	if opts.width == 0 && bp.Width.Mode == layout.Exactly {
		opts.width = bp.Width.Size
	}
	if opts.height == 0 && bp.Height.Mode == layout.Exactly {
		opts.height = bp.Height.Size
	}

	m := newPreviewModel(bp.Container, opts)
	m.relayout()

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	return err
}

// previewModel is the bubbletea model for the interactive preview.
type previewModel struct {
	container layout.Container
	width     int // current width constraint; 0 = unspecified
	height    int // current height constraint; 0 = unspecified
	rtl       bool
	cellW     int
	cellH     int

	frames []string
}

func newPreviewModel(c layout.Container, opts *previewOpts) *previewModel {
	return &previewModel{
		container: c,
		width:     opts.width,
		height:    opts.height,
		rtl:       opts.direction == "rtl",
		cellW:     max(1, opts.cellWidth),
		cellH:     max(1, opts.cellHeight),
	}
}

func (m *previewModel) Init() tea.Cmd {
	return nil
}

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left":
		if m.width >= m.cellW {
			m.width -= m.cellW
		}
	case "right":
		if m.width == 0 {
			m.width = m.container.Size().W
		}
		m.width += m.cellW
	case "up":
		if m.height >= m.cellH {
			m.height -= m.cellH
		}
	case "down":
		if m.height == 0 {
			m.height = m.container.Size().H
		}
		m.height += m.cellH
	case "d":
		m.rtl = !m.rtl
	case "r":
		m.width, m.height = 0, 0
	default:
		return m, nil
	}

	m.relayout()
	return m, nil
}

// relayout re-runs the resolution pass under the current constraints and
// repaints the frame grid.
func (m *previewModel) relayout() {
	dir := layout.LTR
	if m.rtl {
		dir = layout.RTL
	}
	switch c := m.container.(type) {
	case *layout.Relative:
		c.Direction = dir
	case *layout.Linear:
		c.Direction = dir
	}

	m.container.Measure(previewConstraint(m.width), previewConstraint(m.height))
	m.frames = paintFrames(m.container, m.cellW, m.cellH)
}

func previewConstraint(v int) layout.Spec {
	if v > 0 {
		return layout.MakeSpec(v, layout.Exactly)
	}
	return layout.MakeSpec(0, layout.Unspecified)
}

func (m *previewModel) View() string {
	var b strings.Builder

	size := m.container.Size()
	dir := "ltr"
	if m.rtl {
		dir = "rtl"
	}

	b.WriteString(StyleTitle.Render(fmt.Sprintf("anchor preview — %dx%d %s", size.W, size.H, dir)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ width  ↑/↓ height  d direction  r reset  q quit"))
	b.WriteString("\n\n")

	for _, line := range m.frames {
		b.WriteString(StyleValue.Render(line))
		b.WriteString("\n")
	}

	if info := m.container.Pass(); !info.Clean() {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render(fmt.Sprintf(
			"cycle fallback: %d horizontal, %d vertical",
			info.HorizontalCycleFallback, info.VerticalCycleFallback)))
		b.WriteString("\n")
	}

	return b.String()
}

// maxPreviewCells bounds the painted grid so a huge layout cannot flood
// the terminal.
const (
	maxPreviewCols = 200
	maxPreviewRows = 60
)

// paintFrames rasterizes the resolved frames into terminal cells. Each
// child paints the first rune of its identifier; later children overdraw
// earlier ones, matching their stacking order.
func paintFrames(c layout.Container, cellW, cellH int) []string {
	size := c.Size()
	cols := min((size.W+cellW-1)/cellW, maxPreviewCols)
	rows := min((size.H+cellH-1)/cellH, maxPreviewRows)
	if cols == 0 || rows == 0 {
		return nil
	}

	grid := make([][]rune, rows)
	for y := range grid {
		grid[y] = make([]rune, cols)
		for x := range grid[y] {
			grid[y][x] = '·'
		}
	}

	children := c.Children()
	frames := c.Frames()
	for i, child := range children {
		if child.Params.Visibility == layout.Gone {
			continue
		}
		f := frames[i]
		glyph := []rune(child.ID(i))[0]
		if child.Params.Visibility == layout.Invisible {
			glyph = '░'
		}

		x0, x1 := f.Left/cellW, (f.Right+cellW-1)/cellW
		y0, y1 := f.Top/cellH, (f.Bottom+cellH-1)/cellH
		for y := max(0, y0); y < min(rows, y1); y++ {
			for x := max(0, x0); x < min(cols, x1); x++ {
				grid[y][x] = glyph
			}
		}
	}

	lines := make([]string, rows)
	for y, row := range grid {
		lines[y] = string(row)
	}
	return lines
}
