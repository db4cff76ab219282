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

package controller_test

import (
	"testing"

	"github.com/DavidCEllis/DarkSouls-TAS/controller"
	"github.com/DavidCEllis/DarkSouls-TAS/curated"
	"github.com/DavidCEllis/DarkSouls-TAS/test"
)

func equateKeylists(t *testing.T, value, expected []controller.Row) {
	t.Helper()
	test.DemandEquality(t, len(value), len(expected))
	for i := range value {
		test.EquateRows(t, value[i][:], expected[i][:])
	}
}

func TestAddConcatenates(t *testing.T) {
	a := controller.KeyPress{Frames: 2, A: 1}
	b := controller.KeyPress{Frames: 1, B: 1}

	s := a.Add(b)
	test.Equate(t, s.FrameCount(), 3)

	// flatten(a + b) == flatten(a) ++ flatten(b)
	want := append(controller.Seq(a).Keylist(), controller.Seq(b).Keylist()...)
	equateKeylists(t, s.Keylist(), want)
}

func TestEmptySequenceIsIdentity(t *testing.T) {
	empty := controller.Seq()
	a := controller.Seq(controller.KeyPress{Frames: 3, X: 1})

	equateKeylists(t, empty.Add(a).Keylist(), a.Keylist())
	equateKeylists(t, a.Add(empty).Keylist(), a.Keylist())
	test.Equate(t, empty.Len(), 0)
}

func TestMul(t *testing.T) {
	f := controller.KeyPress{Frames: 2, A: 1}

	for _, n := range []int{0, 1, 3, 10} {
		m, err := f.Mul(n)
		test.ExpectedSuccess(t, err)

		// flatten(f * n) has length n * f.Frames and every row equals the
		// axis values of f
		rows := controller.Seq(m).Keylist()
		test.Equate(t, len(rows), n*f.Frames)
		for i := range rows {
			test.ExpectedSuccess(t, rows[i] == f.Row())
		}
	}

	_, err := f.Mul(-1)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, controller.InvalidOperand))
}

func TestSequenceMul(t *testing.T) {
	s := controller.Seq(
		controller.KeyPress{Frames: 1, A: 1},
		controller.KeyPress{Frames: 1, B: 1},
	)

	r, err := s.Mul(3)
	test.ExpectedSuccess(t, err)
	test.Equate(t, r.FrameCount(), 6)

	_, err = s.Mul(-2)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, controller.InvalidOperand))
}

func TestCondense(t *testing.T) {
	// the sequence [hold-A x2, hold-A x2, hold-B x1] condenses to
	// [hold-A x4, hold-B x1]
	s := controller.Seq(
		controller.KeyPress{Frames: 2, A: 1},
		controller.KeyPress{Frames: 2, A: 1},
		controller.KeyPress{Frames: 1, B: 1},
	)

	test.Equate(t, s.Len(), 2)
	presses := s.Presses()
	test.Equate(t, presses[0].Frames, 4)
	test.Equate(t, presses[0].A, 1)
	test.Equate(t, presses[1].Frames, 1)
	test.Equate(t, presses[1].B, 1)
}

func TestCondenseIdempotent(t *testing.T) {
	s := controller.Seq(
		controller.KeyPress{Frames: 2, A: 1},
		controller.KeyPress{Frames: 2, A: 1},
		controller.KeyPress{Frames: 3},
		controller.KeyPress{Frames: 1},
		controller.KeyPress{Frames: 1, B: 1},
	)

	// re-wrapping a condensed sequence must not change it and flattening is
	// invariant under condensation
	r := controller.Seq(s)
	test.Equate(t, r.Len(), s.Len())
	equateKeylists(t, r.Keylist(), s.Keylist())
	test.Equate(t, s.FrameCount(), 9)
}

func TestCondenseKeepsWaits(t *testing.T) {
	// a neutral press with a duration is a wait and must survive
	// condensation. only zero-duration presses disappear
	s := controller.Seq(
		controller.KeyPress{Frames: 1, A: 1},
		controller.KeyPress{Frames: 5},
		controller.KeyPress{Frames: 0, B: 1},
		controller.KeyPress{Frames: 1, A: 1},
	)

	test.Equate(t, s.Len(), 3)
	test.Equate(t, s.FrameCount(), 7)
}

func TestAndCombination(t *testing.T) {
	a := controller.KeyPress{Frames: 2, A: 1, L2: 100, LThumbX: 20000}
	b := controller.KeyPress{Frames: 5, B: 1, L2: 200, LThumbX: -32768}

	c := a.And(b)

	// digital/trigger axes take the numeric maximum
	test.Equate(t, c.A, 1)
	test.Equate(t, c.B, 1)
	test.Equate(t, c.L2, 200)

	// stick axes take the value of greater magnitude with its own sign
	test.Equate(t, c.LThumbX, -32768)

	// duration is the larger of the two operands'
	test.Equate(t, c.Frames, 5)

	// commutative
	test.ExpectedSuccess(t, c.Same(b.And(a)))
	test.Equate(t, b.And(a).Frames, 5)
}

func TestMutators(t *testing.T) {
	var s controller.KeySequence

	s.Append(controller.KeyPress{Frames: 1, A: 1})
	s.Append(controller.KeyPress{Frames: 1, A: 1})
	test.Equate(t, s.Len(), 1)
	test.Equate(t, s.FrameCount(), 2)

	s.Extend(
		controller.KeyPress{Frames: 1, A: 1},
		controller.Seq(controller.KeyPress{Frames: 2, B: 1}),
	)
	test.Equate(t, s.Len(), 2)
	test.Equate(t, s.FrameCount(), 5)

	other := controller.Seq(controller.KeyPress{Frames: 2, B: 1})
	s.Combine(other)
	test.Equate(t, s.Len(), 2)
	test.Equate(t, s.FrameCount(), 7)
}

func TestSameIgnoresDuration(t *testing.T) {
	a := controller.KeyPress{Frames: 1, X: 1}
	b := controller.KeyPress{Frames: 99, X: 1}
	c := controller.KeyPress{Frames: 1, Y: 1}

	test.ExpectedSuccess(t, a.Same(b))
	test.ExpectedFailure(t, a.Same(c))
}
