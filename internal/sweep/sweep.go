// Package sweep animates a quarter turn of a tile. The tile itself only knows
// how to rotate at once; an Animator holds the tile's sweep lock, emits the
// intermediate frames on a timer and commits the rotation at the end.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ko-stant/gridmaze/internal/geometry"
)

var ErrSweepCancelled = errors.New("sweep cancelled")

const (
	DefaultSteps    = 6
	DefaultInterval = 100 * time.Millisecond
)

// Target is the state a sweep drives. *tile.Tile satisfies it.
type Target interface {
	BeginSweep() error
	CommitSweep(dir geometry.Rotation) error
	AbortSweep()
}

type Logger interface {
	Printf(format string, v ...any)
}

// Frame describes one intermediate drawing of a sweep. Angle is in degrees,
// negative for counter-clockwise turns.
type Frame struct {
	Step      int               `json:"step"`
	Steps     int               `json:"steps"`
	Direction geometry.Rotation `json:"direction"`
	Angle     float64           `json:"angle"`
}

// Animator runs sweeps. The zero value uses DefaultSteps and DefaultInterval.
type Animator struct {
	Steps    int
	Interval time.Duration
	// OnFrame is called from the sweep goroutine for steps 1..Steps-1.
	OnFrame func(Frame)
	Logger  Logger
}

func (a Animator) steps() int {
	if a.Steps <= 0 {
		return DefaultSteps
	}
	return a.Steps
}

func (a Animator) interval() time.Duration {
	if a.Interval <= 0 {
		return DefaultInterval
	}
	return a.Interval
}

func (a Animator) logf(format string, v ...any) {
	if a.Logger != nil {
		a.Logger.Printf(format, v...)
	}
}

// Sweep is a running animation.
type Sweep struct {
	Direction geometry.Rotation

	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// Cancel stops the sweep before it commits. It is a no-op once the sweep
// has finished.
func (s *Sweep) Cancel() { s.cancel() }

func (s *Sweep) Done() <-chan struct{} { return s.done }

// Wait blocks until the sweep ends and returns ErrSweepCancelled if it never
// committed because of cancellation, or the commit error.
func (s *Sweep) Wait() error {
	<-s.done
	return s.err
}

// Start takes target's sweep lock and animates dir in the background. The
// lock is taken before Start returns, so a second sweep on the same target
// fails right away.
func (a Animator) Start(ctx context.Context, target Target, dir geometry.Rotation) (*Sweep, error) {
	if dir != geometry.Clockwise && dir != geometry.CounterClockwise {
		return nil, fmt.Errorf("%w: %q", geometry.ErrInvalidRotation, dir)
	}
	if err := target.BeginSweep(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &Sweep{Direction: dir, cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(s.done)
		defer cancel()
		s.err = a.run(ctx, target, dir)
	}()
	return s, nil
}

// Run is Start followed by Wait.
func (a Animator) Run(ctx context.Context, target Target, dir geometry.Rotation) error {
	s, err := a.Start(ctx, target, dir)
	if err != nil {
		return err
	}
	return s.Wait()
}

func (a Animator) run(ctx context.Context, target Target, dir geometry.Rotation) error {
	steps := a.steps()
	timer := time.NewTimer(a.interval())
	defer timer.Stop()

	for step := 1; ; step++ {
		select {
		case <-ctx.Done():
		case <-timer.C:
		}
		// A cancel that races the timer still wins.
		if err := ctx.Err(); err != nil {
			target.AbortSweep()
			a.logf("sweep %s aborted at step %d/%d", dir, step, steps)
			return fmt.Errorf("%w: %w", ErrSweepCancelled, err)
		}
		if step >= steps {
			break
		}
		if a.OnFrame != nil {
			a.OnFrame(frameAt(step, steps, dir))
		}
		timer.Reset(a.interval())
	}

	if err := target.CommitSweep(dir); err != nil {
		a.logf("sweep %s commit failed: %v", dir, err)
		return err
	}
	return nil
}

func frameAt(step, steps int, dir geometry.Rotation) Frame {
	angle := 90 * float64(step) / float64(steps)
	if dir == geometry.CounterClockwise {
		angle = -angle
	}
	return Frame{Step: step, Steps: steps, Direction: dir, Angle: angle}
}
