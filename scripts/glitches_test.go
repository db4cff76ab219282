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
	"testing"

	"github.com/DavidCEllis/DarkSouls-TAS/controller"
	"github.com/DavidCEllis/DarkSouls-TAS/curated"
	"github.com/DavidCEllis/DarkSouls-TAS/test"
)

func TestMoveswapFrameCount(t *testing.T) {
	test.Equate(t, Moveswap(false, true, 0).FrameCount(), 22)
	test.Equate(t, Moveswap(true, true, 0).FrameCount(), 22)
	test.Equate(t, Moveswap(false, true, 3).FrameCount(), 25)
}

func TestMoveswapFinish(t *testing.T) {
	// a too-heavy weapon needs a final start press to close the menu
	rows := Moveswap(false, true, 0).Keylist()
	test.Equate(t, rows[len(rows)-1][controller.AxisStart], 1)

	rows = Moveswap(false, false, 0).Keylist()
	test.Equate(t, rows[len(rows)-1][controller.AxisStart], 0)
}

func TestRollMoveswap(t *testing.T) {
	s := RollMoveswap(false, true, 10)
	test.Equate(t, s.FrameCount(), 33)

	// the roll is the run stick with a b press on the same frame
	first := s.Keylist()[0]
	test.Equate(t, first[controller.AxisB], 1)
	test.Equate(t, first[controller.AxisLThumbY], 32767)
}

func TestResetMoveswap(t *testing.T) {
	test.Equate(t, ResetMoveswap(false).FrameCount(), 18)
	test.Equate(t, ResetMoveswap(true).FrameCount(), 18)

	// the reset navigates in the opposite direction to the swap
	up := ResetMoveswap(false)
	found := false
	for _, row := range up.Keylist() {
		if row[controller.AxisDPadUp] == 1 {
			found = true
		}
		if row[controller.AxisDPadDown] == 1 && found {
			t.Errorf("unexpected dpad_down after dpad_up in reset")
		}
	}
	test.Equate(t, found, true)
}

func TestItemswap(t *testing.T) {
	s := Itemswap(10, 5, 8)
	test.Equate(t, s.FrameCount(), 28)
}

func TestFramedupe(t *testing.T) {
	s, err := Framedupe(1)
	test.ExpectedSuccess(t, err)
	test.Equate(t, s.FrameCount(), 59)

	s, err = Framedupe(3)
	test.ExpectedSuccess(t, err)
	test.Equate(t, s.FrameCount(), 271)

	_, err = Framedupe(0)
	test.ExpectedSuccess(t, curated.Is(err, controller.InvalidOperand))

	_, err = Framedupe(-1)
	test.ExpectedFailure(t, err)
}

func TestJoyMoveswap(t *testing.T) {
	test.Equate(t, Joy().FrameCount(), 22)
	test.Equate(t, JoyMoveswap().FrameCount(), 144)
}

func TestPoopwalk(t *testing.T) {
	test.Equate(t, Poopwalk().FrameCount(), 14)
}

func TestPrimitivesAreSingleFrame(t *testing.T) {
	for _, k := range []controller.KeyPress{
		Wait, Up, Down, Left, Right, Start, Back,
		A, B, X, Y, L1, R1, L2, R2, LThumb, RThumb, Run, Walk,
	} {
		test.Equate(t, k.Frames, 1)
	}
}
