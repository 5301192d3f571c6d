package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hanoitower/pkg/animation"
	"github.com/matzehuels/hanoitower/pkg/scene"
)

// playOpts holds the command-line flags for the play command.
type playOpts struct {
	speed   float64 // playback speed; 0 keeps the configured speed
	exit    bool    // quit once the last move lands
	noCache bool
}

// playCommand creates the play command.
func (c *CLI) playCommand() *cobra.Command {
	var opts playOpts

	cmd := &cobra.Command{
		Use:   "play [disks]",
		Short: "Animate the solution in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.disksArg(args)
			if err != nil {
				return err
			}
			return c.runPlay(cmd.Context(), n, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.speed, "speed", 0, "playback speed multiplier (default from config)")
	cmd.Flags().BoolVar(&opts.exit, "exit", false, "quit when the puzzle is solved")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the cache")

	return cmd
}

func (c *CLI) runPlay(ctx context.Context, n int, o playOpts) error {
	runner, err := c.newRunner(ctx, o.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts := c.baseOptions(n)
	if o.speed != 0 {
		opts.Speed = o.speed
	}
	if err := opts.ValidateForSimulate(); err != nil {
		return err
	}

	moves, err := runner.Solve(ctx, opts)
	if err != nil {
		return err
	}
	sc, err := scene.Build(n, opts.Scene)
	if err != nil {
		return err
	}

	// The player logs nothing here: log lines would tear the live view.
	clock := animation.NewClock(sc, opts.Speed)
	defer clock.Stop()
	player, err := animation.NewPlayer(moves, sc, clock, animation.WithBaseDuration(opts.BaseDuration))
	if err != nil {
		return err
	}

	playCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := player.Start(playCtx); err != nil {
		return err
	}

	model := NewPlayModel(sc, clock, player, cancel)
	model.ExitWhenDone = o.exit

	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}

	if m, ok := final.(PlayModel); ok {
		if m.State == animation.Finished {
			printSuccess("Solved %d disks in %d moves", n, len(moves))
		} else {
			printInfo("Stopped after %d of %d moves", m.Cursor, len(moves))
		}
	}
	return nil
}
