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

// Item is any value that can take part in sequence composition. KeyPress
// and KeySequence both satisfy the interface.
type Item interface {
	items() []KeyPress
}

// KeySequence is an ordered list of KeyPress values.
//
// A sequence is always stored in condensed form: no two adjacent presses
// share identical axis values (adjacent equal presses are merged by
// summing their durations) and presses occupying no frames are dropped.
// Every function that builds or mutates a sequence re-runs condensation,
// so there is no way to observe an uncondensed sequence.
type KeySequence struct {
	presses []KeyPress
}

// Seq builds a sequence from presses and other sequences, concatenated in
// order. An empty sequence is the identity for concatenation.
func Seq(items ...Item) KeySequence {
	presses := make([]KeyPress, 0, len(items))
	for _, item := range items {
		presses = append(presses, item.items()...)
	}
	return KeySequence{presses: condense(presses)}
}

// Add concatenates the sequence with another press or sequence. The
// operands are unchanged.
func (s KeySequence) Add(other Item) KeySequence {
	return Seq(s, other)
}

// Mul repeats the sequence n times. A negative repeat factor is an
// InvalidOperand error.
func (s KeySequence) Mul(n int) (KeySequence, error) {
	if n < 0 {
		return KeySequence{}, curated.Errorf(InvalidOperand, fmt.Sprintf("repeat factor is negative (%d)", n))
	}
	presses := make([]KeyPress, 0, n*len(s.presses))
	for i := 0; i < n; i++ {
		presses = append(presses, s.presses...)
	}
	return KeySequence{presses: condense(presses)}, nil
}

// Append a press to the sequence.
func (s *KeySequence) Append(k KeyPress) {
	s.presses = condense(append(s.presses, k))
}

// Extend the sequence with any number of presses and sequences.
func (s *KeySequence) Extend(items ...Item) {
	for _, item := range items {
		s.presses = append(s.presses, item.items()...)
	}
	s.presses = condense(s.presses)
}

// Combine another sequence onto the end of this one.
func (s *KeySequence) Combine(other KeySequence) {
	s.presses = condense(append(s.presses, other.presses...))
}

// Len returns the number of presses in the (condensed) sequence.
func (s KeySequence) Len() int {
	return len(s.presses)
}

// FrameCount returns the total number of frames the sequence occupies.
func (s KeySequence) FrameCount() int {
	ct := 0
	for _, p := range s.presses {
		ct += p.Frames
	}
	return ct
}

// Presses returns a copy of the presses in the sequence.
func (s KeySequence) Presses() []KeyPress {
	presses := make([]KeyPress, len(s.presses))
	copy(presses, s.presses)
	return presses
}

// Keylist flattens the sequence to its full ordered list of raw per-frame
// rows - the wire format for playback and recording. A press held for n
// frames produces n identical rows.
func (s KeySequence) Keylist() []Row {
	rows := make([]Row, 0, s.FrameCount())
	for _, p := range s.presses {
		r := p.Row()
		for i := 0; i < p.Frames; i++ {
			rows = append(rows, r)
		}
	}
	return rows
}

// implements the Item interface.
func (s KeySequence) items() []KeyPress {
	return s.presses
}

func (s KeySequence) String() string {
	parts := make([]string, len(s.presses))
	for i, p := range s.presses {
		parts[i] = p.String()
	}
	return fmt.Sprintf("KeySequence([%s])", strings.Join(parts, ", "))
}

// condense collapses consecutive identical-axis presses into one press
// with the summed duration and drops presses that occupy no frames.
// Condensation is idempotent and flattening is invariant under it.
func condense(presses []KeyPress) []KeyPress {
	out := make([]KeyPress, 0, len(presses))
	for _, p := range presses {
		if p.Frames < 1 {
			// a press with no duration contributes nothing
			continue
		}
		if len(out) > 0 && out[len(out)-1].Same(p) {
			out[len(out)-1].Frames += p.Frames
			continue
		}
		out = append(out, p)
	}
	return out
}
