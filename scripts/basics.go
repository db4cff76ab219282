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

// Package scripts is the vocabulary for building input sequences: the
// single-frame primitives, the menu gestures and the named glitches of
// the speedrun repertoire.
//
// All sequences in this package assume the game is running at 30fps.
//
// The builders are pure. Nothing in this package touches the game;
// execution happens by handing the built sequence to an engine.
package scripts

import (
	"github.com/DavidCEllis/DarkSouls-TAS/controller"
)

// single frame primitives. these are value types so using one as a
// building block never aliases another sequence.
var (
	Wait = controller.KeyPress{Frames: 1}

	Up    = controller.KeyPress{Frames: 1, DPadUp: 1}
	Down  = controller.KeyPress{Frames: 1, DPadDown: 1}
	Left  = controller.KeyPress{Frames: 1, DPadLeft: 1}
	Right = controller.KeyPress{Frames: 1, DPadRight: 1}

	Start = controller.KeyPress{Frames: 1, Start: 1}
	Back  = controller.KeyPress{Frames: 1, Back: 1}

	A = controller.KeyPress{Frames: 1, A: 1}
	B = controller.KeyPress{Frames: 1, B: 1}
	X = controller.KeyPress{Frames: 1, X: 1}
	Y = controller.KeyPress{Frames: 1, Y: 1}

	L1 = controller.KeyPress{Frames: 1, L1: 1}
	R1 = controller.KeyPress{Frames: 1, R1: 1}
	L2 = controller.KeyPress{Frames: 1, L2: 255}
	R2 = controller.KeyPress{Frames: 1, R2: 255}

	LThumb = controller.KeyPress{Frames: 1, LThumb: 1}
	RThumb = controller.KeyPress{Frames: 1, RThumb: 1}

	// full and half forward deflection of the movement stick. half
	// deflection stays below the game's run threshold
	Run  = controller.KeyPress{Frames: 1, LThumbY: 32767}
	Walk = controller.KeyPress{Frames: 1, LThumbY: 16384}
)

// WaitFor is a neutral press held for n frames.
func WaitFor(n int) controller.KeyPress {
	return controller.KeyPress{Frames: n}
}

// RunFor holds the stick at full forward deflection for n frames.
func RunFor(n int) controller.KeyPress {
	k := Run
	k.Frames = n
	return k
}

// WalkFor holds the stick at half forward deflection for n frames.
func WalkFor(n int) controller.KeyPress {
	k := Walk
	k.Frames = n
	return k
}
