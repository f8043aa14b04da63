package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/ontodag/pkg/graph"
)

// RankDir values accepted by [Options].
const (
	RankTopBottom = "TB"
	RankLeftRight = "LR"
	RankBottomTop = "BT"
	RankRightLeft = "RL"
)

// Options configures node-link diagram rendering.
type Options struct {
	// RankDir is the Graphviz layout direction. Empty means top to bottom,
	// with the root at the top.
	RankDir string

	// HideRoot leaves the root and its outgoing edges out of the diagram.
	HideRoot bool
}

func (o Options) rankDir() string {
	switch strings.ToUpper(o.RankDir) {
	case RankLeftRight, RankBottomTop, RankRightLeft:
		return strings.ToUpper(o.RankDir)
	default:
		return RankTopBottom
	}
}

// ToDOT converts an ontology view to Graphviz DOT source. Every category is
// labelled "name: count" (see [graph.Label]); the root is drawn as an
// ellipse so it stands apart from ordinary categories.
func ToDOT(g graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", opts.rankDir())
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		if n.ID == g.Root && opts.HideRoot {
			continue
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(n, n.ID == g.Root), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		if e.From == g.Root && opts.HideRoot {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(n graph.Node, root bool) []string {
	label := n.Label
	if label == "" {
		label = graph.Label(n.ID, n.Count)
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if root {
		attrs = append(attrs, "shape=ellipse", "style=filled", "fillcolor=lightgrey")
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	data, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(data), nil
}

// RenderPNG renders DOT source to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
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
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg element so the drawing starts at
// the origin and scales with its container.
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
