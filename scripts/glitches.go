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

package scripts

import (
	"github.com/DavidCEllis/DarkSouls-TAS/controller"
	"github.com/DavidCEllis/DarkSouls-TAS/curated"
)

// Moveswap is the base moveswap command sequence, to be started mid
// animation. swapUp selects the weapon above the bow instead of below;
// tooHeavy finishes with an extra menu close for a weapon too heavy to
// one-hand; delay adds frames before the final confirm.
func Moveswap(swapUp bool, tooHeavy bool, delay int) controller.KeySequence {
	swapDir := Down
	if swapUp {
		swapDir = Up
	}

	finish := Wait
	if tooHeavy {
		finish = Start
	}

	s := controller.Seq(
		L1,
		Start, WaitFor(5),
		Right, A, Wait,
		Down, A, WaitFor(2),
		swapDir,
	)
	if delay > 0 {
		s.Append(WaitFor(delay))
	}
	s.Extend(
		A, WaitFor(2),
		Start, WaitFor(2),
		finish,
	)
	return s
}

// RollMoveswap rolls and starts a moveswap off the roll animation. delay
// is the frame gap between the roll and the moveswap: about 10 for
// fastroll, 16 for midroll, 31 for slowroll.
func RollMoveswap(swapUp bool, tooHeavy bool, delay int) controller.KeySequence {
	s := controller.Seq(Run.And(B))
	if delay > 0 {
		s.Append(WaitFor(delay))
	}
	s.Combine(Moveswap(swapUp, tooHeavy, 0))
	return s
}

// ResetMoveswap reverts a moveswapped state back to the pre-moveswap
// loadout. swappedUp mirrors the direction the original swap took.
func ResetMoveswap(swappedUp bool) controller.KeySequence {
	swapBack := Up
	if swappedUp {
		swapBack = Down
	}

	return controller.Seq(
		Start, WaitFor(5),
		Right, A, Wait,
		Down, A, WaitFor(2),
		swapBack, A, WaitFor(2),
		Start,
	)
}

// Itemswap attempts the itemswap glitch. walkTime frames of walking up
// to the spot, toggle frames of running before the d-pad flick, use
// frames of running before the final use.
func Itemswap(walkTime int, toggle int, use int) controller.KeySequence {
	return controller.Seq(
		WalkFor(walkTime),
		X, Wait, Down,
		RunFor(toggle),
		Run.And(Right),
		RunFor(use),
		X,
	)
}

// Framedupe performs the frame perfect soul dupe, repeated dupes times.
// The first dupe costs 59 frames and every additional one 106.
func Framedupe(dupes int) (controller.KeySequence, error) {
	if dupes < 1 {
		return controller.KeySequence{}, curated.Errorf(controller.InvalidOperand,
			"framedupe needs at least one dupe")
	}

	onedupe := controller.Seq(X, WaitFor(57), X)
	if dupes == 1 {
		return onedupe, nil
	}

	extradupe := controller.Seq(WaitFor(48), WaitFor(57), X)
	extra, err := extradupe.Mul(dupes - 1)
	if err != nil {
		return controller.KeySequence{}, err
	}
	return onedupe.Add(extra), nil
}

// JoyMoveswap performs the Joy gesture and moveswaps during the
// animation, to the weapon below the bow, assuming it is too heavy.
func JoyMoveswap() controller.KeySequence {
	return Joy().Add(WaitFor(100)).Add(Moveswap(false, true, 0))
}

// Poopwalk. Yes.
func Poopwalk() controller.KeySequence {
	return controller.Seq(L1, WaitFor(12), L2)
}
