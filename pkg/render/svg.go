package render

import (
	"bytes"
	"fmt"

	"github.com/buwaro/anchor/pkg/geom"
	"github.com/buwaro/anchor/pkg/layout"
)

// SVGOption configures frame-diagram rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale  float64
	labels bool
}

// WithScale multiplies all coordinates by s. Useful for small layouts
// whose pixel sizes would otherwise render illegibly.
func WithScale(s float64) SVGOption {
	return func(r *svgRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithLabels draws each child's identifier inside its frame.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

var framePalette = []string{
	"#4c78a8", "#f58518", "#54a24b", "#e45756",
	"#72b7b2", "#b279a2", "#eeca3b", "#9d755d",
}

// RenderSVG draws the container's resolved frames as an SVG document.
// The container must have been measured. Gone children are omitted;
// invisible children are drawn with a dashed outline.
func RenderSVG(c layout.Container, opts ...SVGOption) []byte {
	r := svgRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}

	size := c.Size()
	w := float64(size.W) * r.scale
	h := float64(size.H) * r.scale

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="#fafafa" stroke="#333" stroke-width="1"/>`+"\n", w, h)

	children := c.Children()
	frames := c.Frames()
	for i, child := range children {
		if child.Params.Visibility == layout.Gone {
			continue
		}
		r.renderFrame(&buf, child.ID(i), frames[i], i, child.Params.Visibility)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderFrame(buf *bytes.Buffer, id string, f geom.Rect, index int, vis layout.Visibility) {
	x := float64(f.Left) * r.scale
	y := float64(f.Top) * r.scale
	w := float64(f.Width()) * r.scale
	h := float64(f.Height()) * r.scale

	fill := framePalette[index%len(framePalette)]
	dash := ""
	opacity := 0.55
	if vis == layout.Invisible {
		dash = ` stroke-dasharray="4,3"`
		opacity = 0.2
	}

	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="%.2f" stroke="#333" stroke-width="1"%s/>`+"\n",
		x, y, w, h, fill, opacity, dash)

	if r.labels && w > 0 && h > 0 {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" font-family="monospace" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			x+w/2, y+h/2, 10*r.scale/2+5, id)
	}
}
