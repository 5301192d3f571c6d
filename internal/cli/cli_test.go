package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/hanoitower/pkg/animation"
	"github.com/matzehuels/hanoitower/pkg/errors"
	"github.com/matzehuels/hanoitower/pkg/geom"
	"github.com/matzehuels/hanoitower/pkg/scene"
	"github.com/matzehuels/hanoitower/pkg/solver"
)

// isolate points the config and cache homes at fresh temp directories and
// returns the cache home.
func isolate(t *testing.T) string {
	t.Helper()
	cacheHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	return cacheHome
}

// executeCLI runs the root command and returns what it wrote to stdout.
func executeCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	for _, name := range []string{"solve", "render", "play", "serve", "cache", "config", "completion"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestSolveJSON(t *testing.T) {
	isolate(t)
	out, err := executeCLI(t, "solve", "3", "--json", "--verify")
	require.NoError(t, err)

	var got solveOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 3, got.Disks)
	assert.Equal(t, 7, got.Count)
	assert.Equal(t, solver.Move{DiskIndex: 0, DestinationPegIndex: 2, DestinationDiskCount: 0}, got.Moves[0])
	assert.Equal(t, solver.Move{DiskIndex: 2, DestinationPegIndex: 2, DestinationDiskCount: 0}, got.Moves[3])
}

func TestSolveZeroDisksJSON(t *testing.T) {
	isolate(t)
	out, err := executeCLI(t, "solve", "0", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"moves": []`)
}

func TestSolveTree(t *testing.T) {
	isolate(t)
	out, err := executeCLI(t, "solve", "2", "--tree")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "hanoi(2, 0→2 via 1)"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "  hanoi(1, 0→1 via 2)"), lines[1])
}

func TestSolveTable(t *testing.T) {
	isolate(t)
	out, err := executeCLI(t, "solve", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "To peg")
	rows := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "│") {
			rows++
		}
	}
	assert.Equal(t, 4, rows, "header plus three moves")
}

func TestSolveRejectsBadDisks(t *testing.T) {
	isolate(t)
	for _, arg := range []string{"three", "-1", "99"} {
		_, err := executeCLI(t, "solve", "--", arg)
		require.Error(t, err, arg)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "%s: %v", arg, err)
	}
}

func TestRenderWritesFiles(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	base := filepath.Join(dir, "out", "hanoi")

	_, err := executeCLI(t, "render", "2", "-f", "svg,json,dot", "-o", base, "--loop")
	require.NoError(t, err)

	svg, err := os.ReadFile(base + ".svg")
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
	assert.Contains(t, string(svg), "indefinite")

	data, err := os.ReadFile(base + ".json")
	require.NoError(t, err)
	var timeline struct {
		Disks int `json:"disks"`
		Moves []struct {
			Disk int `json:"disk"`
		} `json:"moves"`
	}
	require.NoError(t, json.Unmarshal(data, &timeline))
	assert.Equal(t, 2, timeline.Disks)
	assert.Len(t, timeline.Moves, 3)

	dot, err := os.ReadFile(base + ".dot")
	require.NoError(t, err)
	assert.Contains(t, string(dot), "digraph")
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	isolate(t)
	_, err := executeCLI(t, "render", "2", "-f", "gif")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func TestConfigFlag(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("disks = 2\n\n[cache]\nbackend = \"none\"\n"), 0o644))

	out, err := executeCLI(t, "--config", path, "solve", "--json")
	require.NoError(t, err)
	var got solveOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 3, got.Count)
}

func TestConfigFlagMissingFile(t *testing.T) {
	isolate(t)
	_, err := executeCLI(t, "--config", filepath.Join(t.TempDir(), "nope.toml"), "solve")
	require.Error(t, err)
}

func TestConfigShowAndInit(t *testing.T) {
	isolate(t)
	out, err := executeCLI(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "disks = 4")
	assert.Contains(t, out, `base_duration = "500ms"`)

	path := filepath.Join(t.TempDir(), "hanoitower.toml")
	_, err = executeCLI(t, "--config", path, "config", "init")
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)

	// The written defaults load back cleanly.
	_, err = executeCLI(t, "--config", path, "solve", "1", "--json")
	require.NoError(t, err)
}

func TestCachePathAndClear(t *testing.T) {
	cacheHome := isolate(t)

	out, err := executeCLI(t, "cache", "path")
	require.NoError(t, err)
	dir := filepath.Join(cacheHome, appName)
	assert.Equal(t, dir, strings.TrimSpace(out))

	_, err = executeCLI(t, "solve", "3", "--json")
	require.NoError(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries, "solve should populate the cache")

	_, err = executeCLI(t, "cache", "clear")
	require.NoError(t, err)
	entries, err = os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCacheClearDisabled(t *testing.T) {
	cacheHome := isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[cache]\nbackend = \"none\"\n"), 0o644))

	_, err := executeCLI(t, "--config", path, "cache", "clear")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(cacheHome, appName))
	assert.True(t, os.IsNotExist(err), "disabled cache should not create a directory")
}

func TestCompletion(t *testing.T) {
	isolate(t)
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := executeCLI(t, "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, appName)
		})
	}

	_, err := executeCLI(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestCompleteFormats(t *testing.T) {
	got, directive := completeFormats(nil, nil, "")
	assert.Equal(t, []string{"dot", "json", "svg", "tree"}, got)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)

	got, _ = completeFormats(nil, nil, "svg,j")
	assert.Contains(t, got, "svg,json")
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
	}{
		{"default base", "", []string{"svg", "json"}, map[string]string{"svg": "hanoi-5.svg", "json": "hanoi-5.json"}},
		{"explicit single file", "anim.svg", []string{"svg"}, map[string]string{"svg": "anim.svg"}},
		{"single without extension", "anim", []string{"json"}, map[string]string{"json": "anim.json"}},
		{"base with extension", "anim.svg", []string{"svg", "tree"}, map[string]string{"svg": "anim.svg", "tree": "anim.tree.svg"}},
		{"tree extension stripped", "calls.tree.svg", []string{"tree", "dot"}, map[string]string{"tree": "calls.tree.svg", "dot": "calls.dot"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, outputPaths(tt.output, 5, tt.formats))
		})
	}
}

func TestDisplayURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8080", displayURL(":8080"))
	assert.Equal(t, "http://0.0.0.0:9000", displayURL("0.0.0.0:9000"))
}

// =============================================================================
// Live view
// =============================================================================

func diskRows(view string) []string {
	var rows []string
	for _, line := range strings.Split(view, "\n") {
		if strings.Contains(line, "█") {
			rows = append(rows, line)
		}
	}
	return rows
}

func TestDrawSceneInitialStack(t *testing.T) {
	sc, err := scene.Build(3, scene.DefaultConfig())
	require.NoError(t, err)

	positions := make([]geom.Vec3, sc.DiskCount())
	for i := range positions {
		positions[i] = sc.InitialPosition(i)
	}

	view := drawScene(sc, positions, 60)
	rows := diskRows(view)
	require.Len(t, rows, 3, view)
	for i := 1; i < len(rows); i++ {
		assert.Greater(t, strings.Count(rows[i], "█"), strings.Count(rows[i-1], "█"),
			"disks widen towards the board")
	}
	assert.Contains(t, view, "▀")
}

func TestDrawSceneEmpty(t *testing.T) {
	sc, err := scene.Build(0, scene.DefaultConfig())
	require.NoError(t, err)

	view := drawScene(sc, nil, 40)
	assert.Empty(t, diskRows(view))
	// Each peg column shows up on every row between its top and the board.
	pegRows := 0
	for _, line := range strings.Split(view, "\n") {
		if strings.Count(line, "│") == 3 {
			pegRows++
		}
	}
	assert.Positive(t, pegRows, view)
}

func TestPlayModelRunsToCompletion(t *testing.T) {
	sc, err := scene.Build(2, scene.DefaultConfig())
	require.NoError(t, err)
	moves, err := solver.Solve(2)
	require.NoError(t, err)

	clock := animation.NewClock(sc, 100)
	defer clock.Stop()
	player, err := animation.NewPlayer(moves, sc, clock, animation.WithBaseDuration(10*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, player.Start(ctx))

	var model tea.Model = NewPlayModel(sc, clock, player, cancel)
	deadline := time.Now().Add(5 * time.Second)
	for {
		var cmd tea.Cmd
		model, cmd = model.Update(tickMsg(time.Now()))
		if cmd == nil {
			break
		}
		require.True(t, time.Now().Before(deadline), "player did not finish")
		time.Sleep(5 * time.Millisecond)
	}

	m := model.(PlayModel)
	assert.Equal(t, animation.Finished, m.State)
	view := m.View()
	assert.Contains(t, view, "3/3")
	assert.Contains(t, view, "finished")

	// Every disk ends on the right peg.
	for i := 0; i < sc.DiskCount(); i++ {
		assert.InDelta(t, sc.PegPosition(2).X, m.Frame[i].X, 1e-9)
	}
}

func TestPlayModelQuitCancelsPlayer(t *testing.T) {
	sc, err := scene.Build(3, scene.DefaultConfig())
	require.NoError(t, err)
	moves, err := solver.Solve(3)
	require.NoError(t, err)

	clock := animation.NewClock(sc, 1)
	defer clock.Stop()
	player, err := animation.NewPlayer(moves, sc, clock, animation.WithBaseDuration(time.Hour))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, player.Start(ctx))

	model := NewPlayModel(sc, clock, player, cancel)
	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	select {
	case <-player.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("quitting should cancel the player")
	}
	state, _ := player.State()
	assert.Equal(t, animation.Cancelled, state)
}

func TestPlayModelExitWhenDone(t *testing.T) {
	sc, err := scene.Build(0, scene.DefaultConfig())
	require.NoError(t, err)
	clock := animation.NewClock(sc, 1)
	player, err := animation.NewPlayer(nil, sc, clock)
	require.NoError(t, err)
	require.NoError(t, player.Play(context.Background()))

	model := NewPlayModel(sc, clock, player, func() {})
	model.ExitWhenDone = true
	_, cmd := model.Update(tickMsg(time.Now()))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
