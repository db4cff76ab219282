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
	"sort"
	"time"

	"github.com/DavidCEllis/DarkSouls-TAS/controller"
	"github.com/DavidCEllis/DarkSouls-TAS/logger"
)

// RecordOptions control capture of live input.
type RecordOptions struct {
	// delay before recording begins
	StartDelay time.Duration

	// stop recording after this much in-game time has passed. zero means
	// record until the stop chord
	RecordTime time.Duration

	// by default recording waits for a face or menu button before the
	// first sample, so the captured sequence starts at the player's
	// first action
	NoButtonWait bool
}

// recordTrigger reports whether the press should start a recording.
func recordTrigger(k controller.KeyPress) bool {
	return k.Start+k.Back+k.A+k.B+k.X+k.Y > 0
}

// Record samples live controller input once per tick of the in-game
// clock and condenses it into a sequence. Recording stops when the
// start+back chord is pressed or, if a record time was given, when that
// much in-game time has passed. The chord is checked before the sample
// is kept, so a recording stopped immediately is empty.
//
// On error the capture so far is returned alongside the error.
func (e *TAS) Record(opts RecordOptions) (controller.KeySequence, error) {
	e.countdown(opts.StartDelay)

	seq := controller.Seq()

	if !opts.NoButtonWait {
		fmt.Fprintln(e.Output, "waiting for input before recording starts")
		for {
			k, err := e.KeyState()
			if err != nil {
				return seq, err
			}
			if recordTrigger(k) {
				break
			}
			e.sleep(pollInterval)
		}
	}

	logger.Log("engine", "recording started")

	start, err := e.clock()
	if err != nil {
		return seq, err
	}

	// in-game milliseconds between samples. collected for the log so a
	// dropped or doubled frame in the capture is visible
	deltas := make(map[int]bool)

	limit := int(opts.RecordTime / time.Millisecond)
	prev := start

	for {
		row, err := e.io.ReadInput()
		if err != nil {
			return seq, err
		}

		k := controller.FromRow(row)
		if k.Start == 1 && k.Back == 1 {
			break
		}
		seq.Append(k)

		if err := e.waitFrame(); err != nil {
			return seq, err
		}

		now, err := e.clock()
		if err != nil {
			return seq, err
		}
		deltas[now-prev] = true
		prev = now

		if limit > 0 && now-start >= limit {
			break
		}
	}

	var observed []int
	for d := range deltas {
		observed = append(observed, d)
	}
	sort.Ints(observed)
	logger.Logf("engine", "recording stopped: %d frames, igt deltas %v", seq.FrameCount(), observed)

	return seq, nil
}
