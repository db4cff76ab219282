// This file is part of DarkSouls-TAS.
//
// DarkSouls-TAS is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// DarkSouls-TAS is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with DarkSouls-TAS.  If not, see <https://www.gnu.org/licenses/>.

// Package timers measures the game's clocks against real time. The
// measurements are research tools for route planning: how far in-game
// time drifts from real time over a segment, and how many frames the
// game keeps running after in-game time stops during a force quit.
package timers

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/DavidCEllis/DarkSouls-TAS/controller"
	"github.com/DavidCEllis/DarkSouls-TAS/logger"
)

// poll intervals. the chord poll oversamples the 30fps frame rate; the
// force-quit watchers follow the clocks more loosely.
const (
	chordPollInterval = 2 * time.Millisecond
	watchPollInterval = 10 * time.Millisecond
)

// Engine is the part of the TAS engine the timers consume.
type Engine interface {
	KeyState() (controller.KeyPress, error)
	IGT() (int, error)
	FrameCount() (int, error)
	ForceQuit() bool
}

// Comparison is the result of an IGTvsRTA measurement. Times are in
// milliseconds.
type Comparison struct {
	Frames  int
	RTA     float64
	IGT     int
	Diff    float64
	EstDiff float64
}

// FQFrames is the result of a ForceQuitFrames measurement.
type FQFrames struct {
	// frames the game kept displaying after in-game time stopped
	Frames int

	// in-game time and frame count at the moment the clock stopped
	IGT      int
	IGTFrame int

	// last frame observed before the game went away
	FinalFrame int
}

// Timer runs clock measurements against an attached game.
type Timer struct {
	eng Engine

	// progress and result messages
	Output io.Writer

	// replaceable for testing
	sleep func(time.Duration)
	now   func() time.Time
}

// New is the preferred method of initialisation for the Timer type.
func New(eng Engine) *Timer {
	return &Timer{
		eng:    eng,
		Output: os.Stdout,
		sleep:  time.Sleep,
		now:    time.Now,
	}
}

// IGTvsRTA starts real-time, in-game-time and frame counters and runs
// them until the start+back chord is pressed. The estimated difference
// projects the drift expected from the game timing 33ms frames against a
// 30fps real frame rate.
func (t *Timer) IGTvsRTA() (Comparison, error) {
	rtaStart := t.now()

	igtStart, err := t.eng.IGT()
	if err != nil {
		return Comparison{}, err
	}
	frameStart, err := t.eng.FrameCount()
	if err != nil {
		return Comparison{}, err
	}

	fmt.Fprintln(t.Output, "timer started. press start and select together to stop")

	for {
		k, err := t.eng.KeyState()
		if err != nil {
			return Comparison{}, err
		}
		if k.Start == 1 && k.Back == 1 {
			break
		}
		t.sleep(chordPollInterval)
	}

	rtaEnd := t.now()

	igtEnd, err := t.eng.IGT()
	if err != nil {
		return Comparison{}, err
	}
	frameEnd, err := t.eng.FrameCount()
	if err != nil {
		return Comparison{}, err
	}

	c := Comparison{
		Frames: frameEnd - frameStart,
		RTA:    float64(rtaEnd.Sub(rtaStart)) / float64(time.Millisecond),
		IGT:    igtEnd - igtStart,
	}
	c.Diff = c.RTA - float64(c.IGT)
	c.EstDiff = (float64(c.IGT)/33)*1000/30 - float64(c.IGT)

	fmt.Fprintf(t.Output, "rta: %.0fms\n", c.RTA)
	fmt.Fprintf(t.Output, "igt: %dms\n", c.IGT)
	fmt.Fprintf(t.Output, "difference: %.1fms\n", c.Diff)
	fmt.Fprintf(t.Output, "estimated difference: %.1fms\n", c.EstDiff)
	fmt.Fprintf(t.Output, "frame count: %d\n", c.Frames)

	return c, nil
}

// ForceQuitFrames watches the clocks until the game goes away and
// reports how many frames were displayed after in-game time stopped
// advancing. The read failure when the game exits is the intended stop
// condition.
func (t *Timer) ForceQuitFrames() (FQFrames, error) {
	igt, err := t.eng.IGT()
	if err != nil {
		return FQFrames{}, err
	}
	igtFrame, err := t.eng.FrameCount()
	if err != nil {
		return FQFrames{}, err
	}
	lastFrame := igtFrame

	fmt.Fprintln(t.Output, "fq test started. quit the game to stop")

	for {
		newIGT, err := t.eng.IGT()
		if err != nil {
			break
		}
		newFrame, err := t.eng.FrameCount()
		if err != nil {
			break
		}

		if newIGT > 0 && newIGT > igt {
			igt = newIGT
			igtFrame = newFrame
		}
		lastFrame = newFrame

		t.sleep(watchPollInterval)
	}

	r := FQFrames{
		Frames:     lastFrame - igtFrame,
		IGT:        igt,
		IGTFrame:   igtFrame,
		FinalFrame: lastFrame,
	}

	fmt.Fprintf(t.Output, "frame difference: %d\n", r.Frames)
	fmt.Fprintf(t.Output, "igt: %d\n", r.IGT)
	fmt.Fprintf(t.Output, "igt frame: %d\n", r.IGTFrame)
	fmt.Fprintf(t.Output, "final frame: %d\n", r.FinalFrame)

	return r, nil
}

// TimedForceQuit watches for in-game time pausing and resuming, then
// force quits the game delayFrames clock ticks after the resume. Used for
// wrong-warp setups, where the quit has to land on a precise frame of the
// following loading screen.
func (t *Timer) TimedForceQuit(delayFrames int) error {
	igt, err := t.eng.IGT()
	if err != nil {
		return err
	}
	lastFrame, err := t.eng.FrameCount()
	if err != nil {
		return err
	}

	fmt.Fprintln(t.Output, "waiting for igt to pause and resume")

	frameWait := 0
	igtRunning := true

	for {
		newIGT, err := t.eng.IGT()
		if err != nil {
			// the game went away before the quit landed
			return err
		}
		newFrame, err := t.eng.FrameCount()
		if err != nil {
			return err
		}

		if newIGT > 0 && newIGT > igt {
			if !igtRunning {
				if frameWait == 0 {
					fmt.Fprintln(t.Output, "igt started")
				}
				if frameWait >= delayFrames {
					fmt.Fprintln(t.Output, "force quitting")
					if !t.eng.ForceQuit() {
						return fmt.Errorf("force quit failed")
					}
					logger.Logf("timers", "force quit %d frames after igt resume", frameWait)
					return nil
				}
				frameWait++
			}
			igt = newIGT
		} else if newFrame > lastFrame+1 && igtRunning {
			igtRunning = false
			fmt.Fprintln(t.Output, "igt stopped")
		}

		lastFrame = newFrame

		t.sleep(watchPollInterval)
	}
}
