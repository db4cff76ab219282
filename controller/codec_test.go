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
	"path/filepath"
	"testing"

	"github.com/DavidCEllis/DarkSouls-TAS/controller"
	"github.com/DavidCEllis/DarkSouls-TAS/curated"
	"github.com/DavidCEllis/DarkSouls-TAS/test"
)

func TestEncodeDecode(t *testing.T) {
	s := controller.Seq(
		controller.KeyPress{Frames: 2, A: 1},
		controller.KeyPress{Frames: 1, B: 1, LThumbY: 32767},
		controller.KeyPress{Frames: 3},
		controller.KeyPress{Frames: 1, L2: 255, RThumbX: -32768},
	)

	data, err := s.Encode()
	test.ExpectedSuccess(t, err)

	d, err := controller.Decode(data)
	test.ExpectedSuccess(t, err)

	// decode(encode(s)) flattens identically to s
	equateKeylists(t, d.Keylist(), s.Keylist())
}

func TestDecodeLiteral(t *testing.T) {
	// a hand-written two-frame file. every row must have exactly twenty
	// values
	data := []byte(`[[0,0,0,0,0,0,0,0,0,0,1,0,0,0,0,0,0,0,0,0],
		[0,0,0,0,0,0,0,0,0,0,1,0,0,0,0,0,0,0,0,0]]`)

	s, err := controller.Decode(data)
	test.ExpectedSuccess(t, err)

	// the two identical rows condense into a single two-frame press
	test.Equate(t, s.Len(), 1)
	test.Equate(t, s.FrameCount(), 2)
	test.Equate(t, s.Presses()[0].A, 1)
}

func TestDecodeBadRow(t *testing.T) {
	// wrong length row
	_, err := controller.Decode([]byte(`[[0,0,0]]`))
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, controller.InvalidOperand))

	// out of range stick value
	_, err = controller.Decode([]byte(`[[0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,40000,0,0,0]]`))
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, controller.InvalidOperand))

	// digital button with a non-boolean value
	_, err = controller.Decode([]byte(`[[2,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0]]`))
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, controller.InvalidOperand))

	// not json at all
	_, err = controller.Decode([]byte(`not json`))
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, controller.DecodeError))
}

func TestFileRoundTrip(t *testing.T) {
	s := controller.Seq(
		controller.KeyPress{Frames: 1, Start: 1},
		controller.KeyPress{Frames: 5},
		controller.KeyPress{Frames: 2, DPadDown: 1},
	)

	fn := filepath.Join(t.TempDir(), "recording.json")
	test.ExpectedSuccess(t, s.WriteFile(fn))

	d, err := controller.ReadFile(fn)
	test.ExpectedSuccess(t, err)
	equateKeylists(t, d.Keylist(), s.Keylist())
}

func TestReadFileMissing(t *testing.T) {
	_, err := controller.ReadFile(filepath.Join(t.TempDir(), "no-such-file.json"))
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, controller.DecodeError))
}
