// Package animation turns a solver move list into timed disk motion and plays
// it back one move at a time.
//
// # Motion
//
// Every move becomes a [Sequence] of three [Step]s:
//
//  1. Lift: straight up from the disk's current position to the clearance
//     height, which is above every peg top.
//  2. Traverse: across at clearance height to above the destination peg.
//  3. Descend: down onto the destination stack. The landing height comes from
//     the move's DestinationDiskCount, not from a live recount.
//
// Each step lasts [NormalizeDuration]: the base duration scaled by the
// distance travelled over the reference length (the distance between the two
// outermost pegs). With the default 500ms base, a disk crossing the whole
// board takes half a second whatever the board's scale.
//
// # Playback
//
// A [Player] drives the sequences through an [Animator] strictly in order:
// move i+1 is issued only after the animator reports move i complete. The
// player's state moves NotStarted → Playing(0) → … → Playing(n-1) →
// Finished, or to Cancelled when its context ends.
//
// Two animators are provided. [Recorder] runs on a virtual clock and produces
// a [Timeline] for offline rendering; [Clock] runs in wall-clock time and can
// be sampled for live rendering.
//
//	sc, _ := scene.Build(4, scene.DefaultConfig())
//	moves, _ := solver.Solve(4)
//	rec := animation.NewRecorder(sc)
//	p, err := animation.NewPlayer(moves, sc, rec)
//	if err != nil {
//	    return err
//	}
//	if err := p.Play(ctx); err != nil {
//	    return err
//	}
//	tl := rec.Timeline()
package animation
