package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/hanoitower/pkg/animation"
	"github.com/matzehuels/hanoitower/pkg/scene"
	"github.com/matzehuels/hanoitower/pkg/solver"
)

func record(t *testing.T, n int) (*scene.Scene, solver.MoveList, *animation.Timeline) {
	t.Helper()
	sc, err := scene.Build(n, scene.DefaultConfig())
	if err != nil {
		t.Fatalf("Build(%d) error: %v", n, err)
	}
	moves, err := solver.Solve(n)
	if err != nil {
		t.Fatalf("Solve(%d) error: %v", n, err)
	}
	rec := animation.NewRecorder(sc)
	p, err := animation.NewPlayer(moves, sc, rec)
	if err != nil {
		t.Fatalf("NewPlayer() error: %v", err)
	}
	if err := p.Play(context.Background()); err != nil {
		t.Fatalf("Play() error: %v", err)
	}
	sc.Reset()
	return sc, moves, rec.Timeline()
}

func TestRenderSVG(t *testing.T) {
	sc, _, tl := record(t, 3)

	tests := []struct {
		name    string
		opts    []SVGOption
		want    []string
		notWant []string
	}{
		{
			name:    "default",
			want:    []string{`width="800"`, `fill="freeze"`, `id="disk-0"`, `id="disk-2"`, `id="peg-2"`, `class="board"`},
			notWant: []string{`repeatCount`},
		},
		{
			name:    "loop",
			opts:    []SVGOption{WithLoop()},
			want:    []string{`repeatCount="indefinite"`},
			notWant: []string{`fill="freeze"`},
		},
		{
			name: "size and background",
			opts: []SVGOption{WithSize(400, 300), WithBackground("#fff")},
			want: []string{`width="400"`, `height="300"`, `fill="#fff"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg := string(RenderSVG(sc, tl, tt.opts...))
			if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
				t.Fatalf("not an svg document:\n%s", svg)
			}
			for _, w := range tt.want {
				if !strings.Contains(svg, w) {
					t.Errorf("output missing %s", w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(svg, w) {
					t.Errorf("output unexpectedly contains %s", w)
				}
			}
			if got := strings.Count(svg, "<animateTransform"); got != 3 {
				t.Errorf("animateTransform count = %d, want 3", got)
			}
		})
	}
}

func TestRenderSVGKeyTimes(t *testing.T) {
	sc, _, tl := record(t, 2)
	svg := string(RenderSVG(sc, tl))

	for _, line := range strings.Split(svg, "\n") {
		if !strings.Contains(line, "<animateTransform") {
			continue
		}
		values := attr(line, "values")
		times := attr(line, "keyTimes")
		nv := len(strings.Split(values, ";"))
		nt := len(strings.Split(times, ";"))
		if nv != nt {
			t.Errorf("values has %d entries, keyTimes %d", nv, nt)
		}
		if !strings.HasPrefix(times, "0") || !strings.HasSuffix(times, ";1") {
			t.Errorf("keyTimes = %q, want 0 ... 1", times)
		}
	}
}

func attr(line, name string) string {
	i := strings.Index(line, name+`="`)
	if i < 0 {
		return ""
	}
	rest := line[i+len(name)+2:]
	return rest[:strings.Index(rest, `"`)]
}

func TestRenderSVGStatic(t *testing.T) {
	sc, _, tl := record(t, 0)
	svg := string(RenderSVG(sc, tl))
	if strings.Contains(svg, "<animateTransform") {
		t.Error("empty timeline should not animate")
	}

	sc, err := scene.Build(2, scene.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	svg = string(RenderSVG(sc, nil))
	if strings.Count(svg, `class="disk"`) != 2 {
		t.Error("nil timeline should still draw every disk")
	}
}

func TestRenderJSON(t *testing.T) {
	sc, moves, tl := record(t, 3)

	data, err := RenderJSON(3, moves, tl, WithJSONScene(sc))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Disks != 3 {
		t.Errorf("Disks = %d, want 3", out.Disks)
	}
	if len(out.Moves) != 7 {
		t.Errorf("Moves count = %d, want 7", len(out.Moves))
	}
	if len(out.Segments) != 21 {
		t.Errorf("Segments count = %d, want 21", len(out.Segments))
	}
	if out.Duration <= 0 {
		t.Errorf("Duration = %v, want > 0", out.Duration)
	}
	if out.Scene == nil || len(out.Scene.Pegs) != 3 || len(out.Scene.Disks) != 3 {
		t.Errorf("Scene = %+v, want 3 pegs and 3 disks", out.Scene)
	}
	last := out.Segments[len(out.Segments)-1]
	if d := last.Start + last.Duration - out.Duration; d > 1e-9 || d < -1e-9 {
		t.Errorf("last segment ends at %v, want %v", last.Start+last.Duration, out.Duration)
	}
}

func TestRenderJSONEmpty(t *testing.T) {
	data, err := RenderJSON(0, nil, nil, WithJSONIndent())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	if !bytes.Contains(data, []byte(`"moves": []`)) {
		t.Errorf("empty move list should encode as [], got %s", data)
	}
	if bytes.Contains(data, []byte(`"segments"`)) || bytes.Contains(data, []byte(`"scene"`)) {
		t.Errorf("unexpected optional fields in %s", data)
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(solver.CallTree(3), DOTOptions{})
	if got := strings.Count(dot, "label="); got != 7 {
		t.Errorf("node count = %d, want 7", got)
	}
	if got := strings.Count(dot, "->"); got != 6 {
		t.Errorf("edge count = %d, want 6", got)
	}
	if got := strings.Count(dot, "lightgrey"); got != 4 {
		t.Errorf("leaf count = %d, want 4", got)
	}
	if !strings.Contains(dot, `"m3" -> "m1"`) {
		t.Errorf("root should link to its left child:\n%s", dot)
	}

	detailed := ToDOT(solver.CallTree(1), DOTOptions{Detailed: true})
	if !strings.Contains(detailed, `move #1`) {
		t.Errorf("detailed label missing move number:\n%s", detailed)
	}

	empty := ToDOT(nil, DOTOptions{})
	if strings.Contains(empty, "label=") {
		t.Errorf("nil tree should have no nodes:\n%s", empty)
	}
}

func TestRenderTreeSVG(t *testing.T) {
	svg, err := RenderTreeSVG(context.Background(), ToDOT(solver.CallTree(2), DOTOptions{}))
	if err != nil {
		t.Fatalf("RenderTreeSVG() error: %v", err)
	}
	if !bytes.Contains(svg, []byte(`viewBox="0 0 `)) {
		t.Errorf("viewBox not normalized:\n%s", svg)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "rewrites",
			in:   `<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00"><g/></svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 44.00" width="62" height="44"><g/></svg>`,
		},
		{
			name: "no viewBox",
			in:   `<svg><g/></svg>`,
			want: `<svg><g/></svg>`,
		},
		{
			name: "zero size",
			in:   `<svg viewBox="0 0 0 10"></svg>`,
			want: `<svg viewBox="0 0 0 10"></svg>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(normalizeViewBox([]byte(tt.in))); got != tt.want {
				t.Errorf("normalizeViewBox() = %s, want %s", got, tt.want)
			}
		})
	}
}
