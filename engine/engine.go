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

package engine

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/DavidCEllis/DarkSouls-TAS/controller"
	"github.com/DavidCEllis/DarkSouls-TAS/curated"
	"github.com/DavidCEllis/DarkSouls-TAS/logger"
)

// sentinel error patterns for the engine package.
const (
	// a bounded frame wait exhausted its poll budget without seeing the
	// clock move. only raised when a wait limit has been set
	FrameWaitTimeout = "engine: frame wait timed out after %d polls"
)

// interval between polls of the in-game clock during a frame wait. the
// game runs at 30fps so this oversamples the clock by a wide margin.
const pollInterval = 2 * time.Millisecond

// IO is the capability surface the engine requires of an attachment. It
// is implemented by hook.Hook.
type IO interface {
	ReadInput() (controller.Row, error)
	WriteInput(controller.Row) error
	Controller(enable bool) error
	BackgroundInput(enable bool) error
	IGT() (int, error)
	FrameCount() (int, error)
	Rehook() error
	ForceQuit() bool
}

// TAS is the playback/recording engine. One TAS per attachment; the type
// is not safe for concurrent use.
type TAS struct {
	io IO

	// the sole queue of pending per-frame input rows. filled by Run() and
	// cleared unconditionally when the run ends
	queue []controller.Row

	// countdown and recording progress messages
	Output io.Writer

	// WaitLimit is the maximum number of clock polls per frame wait.
	// zero means wait forever. a bounded wait fails with FrameWaitTimeout
	// when the clock stops moving, which is what a wrong game profile
	// looks like from here
	WaitLimit int

	// clock and sleep are replaceable for testing. clock defaults to the
	// in-game timer
	clock func() (int, error)
	sleep func(time.Duration)
}

// New is the preferred method of initialisation for the TAS type.
func New(io IO) *TAS {
	return &TAS{
		io:     io,
		Output: os.Stdout,
		clock:  io.IGT,
		sleep:  time.Sleep,
	}
}

// IGT returns the current in-game time in milliseconds.
func (e *TAS) IGT() (int, error) {
	return e.io.IGT()
}

// FrameCount returns the game's frame counter.
func (e *TAS) FrameCount() (int, error) {
	return e.io.FrameCount()
}

// KeyState returns the current state of the game's controller block as a
// single-frame KeyPress.
func (e *TAS) KeyState() (controller.KeyPress, error) {
	row, err := e.io.ReadInput()
	if err != nil {
		return controller.KeyPress{}, err
	}
	return controller.FromRow(row), nil
}

// Rehook drops the current attachment and acquires the game again.
func (e *TAS) Rehook() error {
	return e.io.Rehook()
}

// ForceQuit terminates the game process. Reports success or failure.
func (e *TAS) ForceQuit() bool {
	return e.io.ForceQuit()
}

// Control runs f with exclusive control of the game's input: the native
// controller path is disabled and background input is enabled so the run
// survives the game window losing focus. Both settings are restored when
// f returns, on every exit path.
//
// This is the only permitted write path to the controller block.
func (e *TAS) Control(f func() error) error {
	if err := e.io.Controller(false); err != nil {
		return err
	}
	if err := e.io.BackgroundInput(true); err != nil {
		_ = e.io.Controller(true)
		return err
	}

	defer func() {
		// restoration failures mean the game has probably gone away.
		// nothing to do but note it
		if err := e.io.BackgroundInput(false); err != nil {
			logger.Logf("engine", "restoring background input: %v", err)
		}
		if err := e.io.Controller(true); err != nil {
			logger.Logf("engine", "restoring controller: %v", err)
		}
	}()

	return f()
}

// waitFrame blocks until the in-game clock changes value. A clock-read
// failure unblocks the wait by returning the error.
func (e *TAS) waitFrame() error {
	prev, err := e.clock()
	if err != nil {
		return err
	}

	for n := 0; ; n++ {
		if e.WaitLimit > 0 && n >= e.WaitLimit {
			return curated.Errorf(FrameWaitTimeout, e.WaitLimit)
		}

		v, err := e.clock()
		if err != nil {
			return err
		}
		if v != prev {
			return nil
		}

		e.sleep(pollInterval)
	}
}

// countdown sleeps for the given start delay. delays of five seconds or
// more print the last five seconds as a countdown.
func (e *TAS) countdown(delay time.Duration) {
	if delay <= 0 {
		return
	}

	if delay < 5*time.Second {
		e.sleep(delay)
		return
	}

	e.sleep(delay - 5*time.Second)
	for n := 5; n > 0; n-- {
		fmt.Fprintf(e.Output, "%d\n", n)
		e.sleep(time.Second)
	}
}
