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

package controller

import (
	"fmt"
	"strings"

	"github.com/DavidCEllis/DarkSouls-TAS/curated"
)

// InvalidOperand is the sentinel pattern for malformed caller input: a
// negative repetition factor, a wrong-length raw frame row, an axis value
// outside of its range. These errors are local and synchronous and are
// never silently coerced.
const InvalidOperand = "controller: invalid operand: %v"

// indices into a Row. the order is the wire order used by the flattened
// form and the serialised file format.
const (
	AxisDPadUp int = iota
	AxisDPadDown
	AxisDPadLeft
	AxisDPadRight
	AxisStart
	AxisBack
	AxisLThumb
	AxisRThumb
	AxisL1
	AxisR1
	AxisA
	AxisB
	AxisX
	AxisY
	AxisL2
	AxisR2
	AxisLThumbX
	AxisLThumbY
	AxisRThumbX
	AxisRThumbY
	NumAxes
)

// AxisNames are the canonical names for each Row index. The names are also
// used as keyword arguments by the script runner.
var AxisNames = [NumAxes]string{
	"dpad_up",
	"dpad_down",
	"dpad_left",
	"dpad_right",
	"start",
	"back",
	"l_thumb",
	"r_thumb",
	"l1",
	"r1",
	"a",
	"b",
	"x",
	"y",
	"l2",
	"r2",
	"l_thumb_x",
	"l_thumb_y",
	"r_thumb_x",
	"r_thumb_y",
}

// Row is the raw state of the virtual controller for a single frame. It is
// the flattened wire format used for both playback and recording.
//
// Indices 0 to 13 are digital buttons (0 or 1); indices 14 and 15 are the
// triggers (0 to 255); indices 16 to 19 are the stick axes (-32768 to
// 32767).
type Row [NumAxes]int

// ValidateRow checks that every value in the row is within the range
// allowed for its axis. Returns an InvalidOperand error if not.
func ValidateRow(r Row) error {
	for i := AxisDPadUp; i <= AxisY; i++ {
		if r[i] != 0 && r[i] != 1 {
			return curated.Errorf(InvalidOperand, fmt.Sprintf("%s must be 0 or 1 (%d)", AxisNames[i], r[i]))
		}
	}
	for i := AxisL2; i <= AxisR2; i++ {
		if r[i] < 0 || r[i] > 255 {
			return curated.Errorf(InvalidOperand, fmt.Sprintf("%s out of range (%d)", AxisNames[i], r[i]))
		}
	}
	for i := AxisLThumbX; i < NumAxes; i++ {
		if r[i] < -32768 || r[i] > 32767 {
			return curated.Errorf(InvalidOperand, fmt.Sprintf("%s out of range (%d)", AxisNames[i], r[i]))
		}
	}
	return nil
}

// KeyPress is the state of the virtual controller held for a number of
// frames. It is a value type; the composition functions (Add, Mul, And)
// return new values and never alter their operands.
//
// The zero value is the neutral controller state held for no frames at
// all. A KeyPress with Frames less than one contributes nothing to a
// flattened sequence, which is what multiplication by zero produces. Set
// Frames explicitly when constructing by composite literal.
type KeyPress struct {
	// number of frames to hold the press for
	Frames int

	// digital buttons. 0 or 1
	DPadUp    int
	DPadDown  int
	DPadLeft  int
	DPadRight int
	Start     int
	Back      int
	LThumb    int
	RThumb    int
	L1        int
	R1        int
	A         int
	B         int
	X         int
	Y         int

	// triggers. 0 to 255
	L2 int
	R2 int

	// stick axes. -32768 to 32767
	LThumbX int
	LThumbY int
	RThumbX int
	RThumbY int
}

// FromRow creates a KeyPress held for one frame from a raw row.
func FromRow(r Row) KeyPress {
	return KeyPress{
		Frames:    1,
		DPadUp:    r[AxisDPadUp],
		DPadDown:  r[AxisDPadDown],
		DPadLeft:  r[AxisDPadLeft],
		DPadRight: r[AxisDPadRight],
		Start:     r[AxisStart],
		Back:      r[AxisBack],
		LThumb:    r[AxisLThumb],
		RThumb:    r[AxisRThumb],
		L1:        r[AxisL1],
		R1:        r[AxisR1],
		A:         r[AxisA],
		B:         r[AxisB],
		X:         r[AxisX],
		Y:         r[AxisY],
		L2:        r[AxisL2],
		R2:        r[AxisR2],
		LThumbX:   r[AxisLThumbX],
		LThumbY:   r[AxisLThumbY],
		RThumbX:   r[AxisRThumbX],
		RThumbY:   r[AxisRThumbY],
	}
}

// Row returns the axis values of the press as a raw row. The hold duration
// does not appear in the row.
func (k KeyPress) Row() Row {
	return Row{
		k.DPadUp,
		k.DPadDown,
		k.DPadLeft,
		k.DPadRight,
		k.Start,
		k.Back,
		k.LThumb,
		k.RThumb,
		k.L1,
		k.R1,
		k.A,
		k.B,
		k.X,
		k.Y,
		k.L2,
		k.R2,
		k.LThumbX,
		k.LThumbY,
		k.RThumbX,
		k.RThumbY,
	}
}

// Same compares the axis values of two presses. The hold duration is not
// part of the comparison.
func (k KeyPress) Same(other KeyPress) bool {
	return k.Row() == other.Row()
}

// ButtonPressed returns true if any of the on/off buttons, excluding the
// dpad and triggers, is pressed.
func (k KeyPress) ButtonPressed() bool {
	return k.Start+k.Back+k.LThumb+k.RThumb+k.L1+k.R1+k.A+k.B+k.X+k.Y > 0
}

// Add concatenates the press with another press or sequence, producing a
// sequence.
func (k KeyPress) Add(other Item) KeySequence {
	return Seq(k, other)
}

// Mul returns a copy of the press with the hold duration multiplied by n.
// Multiplying by zero produces a press that occupies no frames. A negative
// factor is an InvalidOperand error.
func (k KeyPress) Mul(n int) (KeyPress, error) {
	if n < 0 {
		return KeyPress{}, curated.Errorf(InvalidOperand, fmt.Sprintf("repeat factor is negative (%d)", n))
	}
	m := k
	m.Frames = k.Frames * n
	return m, nil
}

// And combines two presses into one that performs both simultaneously.
//
// For the digital buttons and triggers the combination takes the numeric
// maximum. For the stick axes it takes the value of greater magnitude,
// preserving its sign, so combining opposite stick directions favours the
// stronger input. The combined press is held for the longer of the two
// durations.
//
// And is commutative. When two stick values have equal magnitude but
// opposite sign the positive direction wins.
func (k KeyPress) And(other KeyPress) KeyPress {
	a := k.Row()
	b := other.Row()

	var c Row
	for i := AxisDPadUp; i <= AxisR2; i++ {
		c[i] = maxInt(a[i], b[i])
	}
	for i := AxisLThumbX; i < NumAxes; i++ {
		c[i] = strongest(a[i], b[i])
	}

	n := FromRow(c)
	n.Frames = maxInt(k.Frames, other.Frames)
	return n
}

// implements the Item interface.
func (k KeyPress) items() []KeyPress {
	return []KeyPress{k}
}

func (k KeyPress) String() string {
	r := k.Row()
	parts := make([]string, 0, NumAxes)
	for i, v := range r {
		if v != 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", AxisNames[i], v))
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("KeyPress(frames=%d)", k.Frames)
	}
	return fmt.Sprintf("KeyPress(frames=%d, %s)", k.Frames, strings.Join(parts, ", "))
}

// the value of greater magnitude, sign preserved. ties favour the positive
// direction, keeping the operation commutative.
func strongest(a, b int) int {
	if absInt(a) > absInt(b) {
		return a
	}
	if absInt(b) > absInt(a) {
		return b
	}
	return maxInt(a, b)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
