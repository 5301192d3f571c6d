package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hanoitower/pkg/solver"
)

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	jsonOut bool // print the move list as JSON
	verify  bool // replay the moves against the rules
	tree    bool // print the recursion tree instead of the move table
	noCache bool // bypass the cache
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var opts solveOpts

	cmd := &cobra.Command{
		Use:   "solve [disks]",
		Short: "Print the optimal move list",
		Long: `Solve computes the 2^n-1 moves that carry n disks from the left peg to the
right peg. Disk 0 is the smallest; pegs are numbered 0 (left) to 2 (right).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.disksArg(args)
			if err != nil {
				return err
			}
			return c.runSolve(cmd.Context(), cmd.OutOrStdout(), n, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the moves as JSON")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "replay the moves and check every rule")
	cmd.Flags().BoolVar(&opts.tree, "tree", false, "print the recursion tree")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the cache")

	return cmd
}

// solveOutput is the --json shape.
type solveOutput struct {
	Disks int             `json:"disks"`
	Count int             `json:"count"`
	Moves solver.MoveList `json:"moves"`
}

func (c *CLI) runSolve(ctx context.Context, w io.Writer, n int, opts solveOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	moves, hit, err := runner.SolveWithCacheInfo(ctx, c.baseOptions(n))
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Solved %d disks", n))

	if opts.verify {
		if err := solver.Verify(n, moves); err != nil {
			return err
		}
		logger.Infof("Verified %d moves", len(moves))
	}

	switch {
	case opts.jsonOut:
		if moves == nil {
			moves = solver.MoveList{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(solveOutput{Disks: n, Count: len(moves), Moves: moves})
	case opts.tree:
		fmt.Fprint(w, formatCallTree(solver.CallTree(n)))
	default:
		fmt.Fprintln(w, movesTable(moves))
	}
	printStats(len(moves), 0, hit)
	return nil
}

// movesTable renders moves as a bordered table.
func movesTable(moves solver.MoveList) string {
	rows := make([][]string, len(moves))
	for i, m := range moves {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(m.DiskIndex),
			strconv.Itoa(m.DestinationPegIndex),
			strconv.Itoa(m.DestinationDiskCount),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Disk", "To peg", "Onto").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if col == 1 {
				return cellStyle.Foreground(colorCyan)
			}
			return cellStyle
		})
	return t.Render()
}

// formatCallTree prints one line per recursive call, indented by depth.
func formatCallTree(root *solver.Call) string {
	var b strings.Builder
	root.Walk(func(c *solver.Call, depth int) bool {
		fmt.Fprintf(&b, "%shanoi(%d, %d→%d via %d) %s\n",
			strings.Repeat("  ", depth), c.Disks, c.From, c.To, c.Using,
			StyleDim.Render(fmt.Sprintf("move %d", c.MoveIndex+1)))
		return true
	})
	return b.String()
}
