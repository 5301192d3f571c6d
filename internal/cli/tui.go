package cli

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/hanoitower/pkg/animation"
	"github.com/matzehuels/hanoitower/pkg/geom"
	"github.com/matzehuels/hanoitower/pkg/scene"
)

// frameInterval is how often the live view resamples the clock.
const frameInterval = time.Second / 30

// Board styles
var (
	pegStyle   = lipgloss.NewStyle().Foreground(colorGray)
	boardStyle = lipgloss.NewStyle().Foreground(colorDim)
	barStyle   = lipgloss.NewStyle().Foreground(colorCyan)
	helpStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PlayModel - Live terminal animation
// =============================================================================

// tickMsg asks the model to redraw.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// PlayModel is the bubbletea model that draws a playing solution.
type PlayModel struct {
	scene  *scene.Scene
	clock  *animation.Clock
	player *animation.Player
	cancel context.CancelFunc

	// ExitWhenDone quits the program once the last move lands.
	ExitWhenDone bool

	Width  int
	State  animation.State
	Cursor int
	Frame  []geom.Vec3
}

// NewPlayModel creates a model for a started player. cancel stops the
// player when the user quits.
func NewPlayModel(sc *scene.Scene, clock *animation.Clock, player *animation.Player, cancel context.CancelFunc) PlayModel {
	state, cursor := player.State()
	return PlayModel{
		scene:  sc,
		clock:  clock,
		player: player,
		cancel: cancel,
		Width:  80,
		State:  state,
		Cursor: cursor,
		Frame:  clock.Sample(),
	}
}

func (m PlayModel) Init() tea.Cmd {
	return tick()
}

func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancel()
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width
	case tickMsg:
		m.State, m.Cursor = m.player.State()
		m.Frame = m.clock.Sample()
		if m.State == animation.Finished || m.State == animation.Cancelled {
			if m.ExitWhenDone {
				return m, tea.Quit
			}
			return m, nil
		}
		return m, tick()
	}
	return m, nil
}

func (m PlayModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Towers of Hanoi · %d disks", m.scene.DiskCount())))
	b.WriteString("\n\n")
	b.WriteString(drawScene(m.scene, m.Frame, sceneColumns(m.Width)))
	b.WriteString("\n")
	b.WriteString(m.status())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("q quit"))
	b.WriteString("\n")
	return b.String()
}

// status renders the progress line below the board.
func (m PlayModel) status() string {
	total := m.player.Len()
	done := m.Cursor
	if m.State == animation.Finished {
		done = total
	}

	const barWidth = 30
	filled := barWidth
	if total > 0 {
		filled = done * barWidth / total
	}
	bar := barStyle.Render(strings.Repeat("█", filled)) + StyleDim.Render(strings.Repeat("░", barWidth-filled))

	return fmt.Sprintf("%s %s %s %s",
		bar,
		StyleNumber.Render(fmt.Sprintf("%d/%d", done, total)),
		StyleDim.Render("·"),
		StyleDim.Render(fmt.Sprintf("%s at %gx", m.State, m.clock.Speed())))
}

// =============================================================================
// Scene Drawing
// =============================================================================

// sceneColumns fits the board to the terminal width.
func sceneColumns(width int) int {
	cols := width - 4
	if cols < 30 {
		cols = 30
	}
	if cols > 120 {
		cols = 120
	}
	return cols
}

type cell struct {
	r     rune
	color string
	style *lipgloss.Style
}

// drawScene draws a side view of sc with disks at positions, cols
// characters wide. One text row is one disk height.
func drawScene(sc *scene.Scene, positions []geom.Vec3, cols int) string {
	minX, maxX, minY, maxY := sc.Bounds()
	dh := sc.DiskHeight()
	rows := int(math.Ceil((maxY-minY)/dh)) + 1

	grid := make([][]cell, rows)
	for i := range grid {
		grid[i] = make([]cell, cols)
		for j := range grid[i] {
			grid[i][j] = cell{r: ' '}
		}
	}

	toCol := func(x float64) int {
		return clampInt(int(math.Round((x-minX)/(maxX-minX)*float64(cols-1))), 0, cols-1)
	}
	toRow := func(y float64) int {
		return clampInt(int(math.Round((maxY-y)/dh)), 0, rows-1)
	}

	boardRow := toRow(0)
	for j := range grid[boardRow] {
		grid[boardRow][j] = cell{r: '▀', style: &boardStyle}
	}
	for _, p := range sc.Pegs() {
		col := toCol(p.Position.X)
		for row := toRow(p.Top()); row < boardRow; row++ {
			grid[row][col] = cell{r: '│', style: &pegStyle}
		}
	}

	disks := sc.Disks()
	for i, pos := range positions {
		if i >= len(disks) {
			break
		}
		row := toRow(pos.Y)
		c0, c1 := toCol(pos.X-disks[i].Radius), toCol(pos.X+disks[i].Radius)
		for col := c0; col <= c1; col++ {
			grid[row][col] = cell{r: '█', color: disks[i].Color}
		}
	}

	var b strings.Builder
	for _, line := range grid {
		b.WriteString(renderCells(line))
		b.WriteString("\n")
	}
	return b.String()
}

// renderCells styles runs of identical cells together.
func renderCells(line []cell) string {
	end := len(line)
	for end > 0 && line[end-1].r == ' ' {
		end--
	}

	var b strings.Builder
	for i := 0; i < end; {
		j := i
		var run strings.Builder
		for j < end && line[j].color == line[i].color && line[j].style == line[i].style {
			run.WriteRune(line[j].r)
			j++
		}
		switch {
		case line[i].color != "":
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(line[i].color)).Render(run.String()))
		case line[i].style != nil:
			b.WriteString(line[i].style.Render(run.String()))
		default:
			b.WriteString(run.String())
		}
		i = j
	}
	return b.String()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
