package sink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/hanoitower/pkg/solver"
)

// DOTOptions configures recursion tree rendering.
type DOTOptions struct {
	// Detailed adds the spare peg and the move number to each label.
	Detailed bool
}

// ToDOT converts a recursion tree to Graphviz DOT. Each frame is a node
// labelled hanoi(n, from → to); leaves, which move the smallest disk, are
// shaded. A nil tree yields an empty graph.
func ToDOT(root *solver.Call, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.05\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	root.Walk(func(c *solver.Call, _ int) bool {
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(c), fmtCallAttrs(c, opts.Detailed))
		return true
	})

	buf.WriteString("\n")
	root.Walk(func(c *solver.Call, _ int) bool {
		for _, child := range c.Children {
			fmt.Fprintf(&buf, "  %q -> %q;\n", nodeID(c), nodeID(child))
		}
		return true
	})

	buf.WriteString("}\n")
	return buf.String()
}

// MoveIndex is unique across the tree, so it doubles as the node ID.
func nodeID(c *solver.Call) string { return "m" + strconv.Itoa(c.MoveIndex) }

func fmtCallAttrs(c *solver.Call, detailed bool) string {
	label := fmt.Sprintf("hanoi(%d, %d → %d)", c.Disks, c.From, c.To)
	if detailed {
		label += fmt.Sprintf("\nvia %d\nmove #%d", c.Using, c.MoveIndex+1)
	}
	attrs := fmt.Sprintf("label=%q", label)
	if len(c.Children) == 0 {
		attrs += ", fillcolor=lightgrey"
	}
	return attrs
}

// RenderTreeSVG renders a DOT graph to SVG using Graphviz.
func RenderTreeSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one whose
// viewBox starts at the origin, so the SVG scales when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
