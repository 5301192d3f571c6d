package sink

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/hanoitower/pkg/animation"
	"github.com/matzehuels/hanoitower/pkg/geom"
	"github.com/matzehuels/hanoitower/pkg/scene"
)

const (
	defaultWidth = 800.0
	svgMargin    = 20.0
	boardColor   = "#8b5a2b"
	pegColor     = "#c8a165"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width      float64
	height     float64
	background string
	loop       bool
}

// WithSize sets the output size in pixels. A zero height keeps the scene's
// aspect ratio.
func WithSize(width, height float64) SVGOption {
	return func(r *svgRenderer) { r.width, r.height = width, height }
}

// WithBackground fills the canvas with color.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithLoop repeats the animation forever instead of freezing on the last
// frame.
func WithLoop() SVGOption { return func(r *svgRenderer) { r.loop = true } }

// projection maps scene coordinates (Y up) to SVG pixels (Y down).
type projection struct {
	minX, maxY float64
	scale      float64
	margin     float64
}

func (p projection) x(v float64) float64 { return (v-p.minX)*p.scale + p.margin }
func (p projection) y(v float64) float64 { return (p.maxY-v)*p.scale + p.margin }
func (p projection) len(v float64) float64 { return v * p.scale }

// RenderSVG draws sc from the side. Disks start at tl.Initial and follow the
// timeline; with a nil or empty timeline they are drawn where sc has them.
func RenderSVG(sc *scene.Scene, tl *animation.Timeline, opts ...SVGOption) []byte {
	r := svgRenderer{width: defaultWidth}
	for _, opt := range opts {
		opt(&r)
	}
	if r.width <= 0 {
		r.width = defaultWidth
	}

	minX, maxX, minY, maxY := sc.Bounds()
	proj := projection{minX: minX, maxY: maxY, margin: svgMargin}
	proj.scale = (r.width - 2*svgMargin) / (maxX - minX)
	height := r.height
	if height <= 0 {
		height = (maxY-minY)*proj.scale + 2*svgMargin
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, height, r.width, height)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.background)
	}

	renderBoard(&buf, sc, proj)
	renderPegs(&buf, sc, proj)
	renderDisks(&buf, sc, tl, proj, r.loop)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderBoard(buf *bytes.Buffer, sc *scene.Scene, p projection) {
	b := sc.Board()
	fmt.Fprintf(buf, `  <rect class="board" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
		p.x(-b.Width/2), p.y(b.Height/2), p.len(b.Width), p.len(b.Height), boardColor)
}

func renderPegs(buf *bytes.Buffer, sc *scene.Scene, p projection) {
	for _, peg := range sc.Pegs() {
		fmt.Fprintf(buf, `  <rect class="peg" id="peg-%d" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" fill="%s"/>`+"\n",
			peg.Index,
			p.x(peg.Position.X-peg.Radius), p.y(peg.Top()),
			p.len(2*peg.Radius), p.len(peg.Height), p.len(peg.Radius), pegColor)
	}
}

func renderDisks(buf *bytes.Buffer, sc *scene.Scene, tl *animation.Timeline, p projection, loop bool) {
	animated := tl != nil && tl.Total() > 0
	h := p.len(sc.DiskHeight())

	for _, d := range sc.Disks() {
		start := d.Position
		if tl != nil && d.Index < len(tl.Initial) {
			start = tl.Initial[d.Index]
		}
		w := p.len(2 * d.Radius)

		fmt.Fprintf(buf, `  <g class="disk" id="disk-%d" transform="translate(%s)">`+"\n", d.Index, point(p, start))
		fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" fill="%s" stroke="#333" stroke-width="1"/>`+"\n",
			-w/2, -h/2, w, h, h/4, d.Color)
		if animated {
			renderMotion(buf, p, tl, d.Index, loop)
		}
		buf.WriteString("  </g>\n")
	}
}

func renderMotion(buf *bytes.Buffer, p projection, tl *animation.Timeline, disk int, loop bool) {
	total := tl.Total()
	frames := tl.Keyframes(disk)
	if last := frames[len(frames)-1]; last.At < total {
		frames = append(frames, animation.Keyframe{At: total, Position: last.Position})
	}

	values := make([]string, len(frames))
	times := make([]string, len(frames))
	for i, f := range frames {
		values[i] = point(p, f.Position)
		times[i] = keyTime(f.At, total)
	}

	repeat := `fill="freeze"`
	if loop {
		repeat = `repeatCount="indefinite"`
	}
	fmt.Fprintf(buf, `    <animateTransform attributeName="transform" type="translate" dur="%.3fs" calcMode="linear" values="%s" keyTimes="%s" %s/>`+"\n",
		total.Seconds(), strings.Join(values, ";"), strings.Join(times, ";"), repeat)
}

func point(p projection, v geom.Vec3) string {
	return fmt.Sprintf("%.2f,%.2f", p.x(v.X), p.y(v.Y))
}

func keyTime(at, total time.Duration) string {
	if at >= total {
		return "1"
	}
	return fmt.Sprintf("%.5f", float64(at)/float64(total))
}
