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
	"time"

	"github.com/DavidCEllis/DarkSouls-TAS/controller"
	"github.com/DavidCEllis/DarkSouls-TAS/logger"
)

// RunOptions control playback of a sequence.
type RunOptions struct {
	// delay before playback begins
	StartDelay time.Duration

	// by default the first write is held until the in-game clock ticks,
	// which keeps the run aligned with a frame boundary. with NoIGTWait
	// a fixed 50ms sleep is used instead. useful in menus, where the
	// clock does not run
	NoIGTWait bool

	// called for every frame row as it is written
	Display func(controller.KeyPress)
}

// Run plays a sequence into the game, one row per tick of the in-game
// clock. An empty sequence issues no writes at all. The input queue is
// cleared when the run ends, however it ends.
func (e *TAS) Run(seq controller.KeySequence, opts RunOptions) error {
	rows := seq.Keylist()
	if len(rows) == 0 {
		return nil
	}

	e.queue = rows
	defer func() {
		e.queue = nil
	}()

	e.countdown(opts.StartDelay)

	logger.Logf("engine", "running %d frames", len(rows))

	return e.Control(func() error {
		// the game drops writes made in the frame the controller patch
		// lands. waiting out one clock tick (or a generous fixed sleep
		// when the clock is not running) avoids losing the first press
		if opts.NoIGTWait {
			e.sleep(50 * time.Millisecond)
		} else {
			if err := e.waitFrame(); err != nil {
				return err
			}
		}

		for _, row := range e.queue {
			if err := e.io.WriteInput(row); err != nil {
				return err
			}
			if opts.Display != nil {
				opts.Display(controller.FromRow(row))
			}
			if err := e.waitFrame(); err != nil {
				return err
			}
		}

		// leave the virtual pad in the neutral position
		return e.io.WriteInput(controller.Row{})
	})
}
