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
	"encoding/json"
	"fmt"
	"os"

	"github.com/DavidCEllis/DarkSouls-TAS/curated"
)

// sentinel error pattern for a file or string that cannot be decoded.
const DecodeError = "controller: decode: %v"

// FromRows builds a sequence from raw per-frame rows, one frame per row.
// The result is condensed as usual.
func FromRows(rows []Row) KeySequence {
	presses := make([]KeyPress, len(rows))
	for i, r := range rows {
		presses[i] = FromRow(r)
	}
	return KeySequence{presses: condense(presses)}
}

// Encode the flattened form of the sequence as a JSON array of
// fixed-length-20 integer arrays, one per frame, in playback order. This is
// the only persisted artifact the tool produces or consumes.
func (s KeySequence) Encode() ([]byte, error) {
	data, err := json.Marshal(s.Keylist())
	if err != nil {
		return nil, curated.Errorf("controller: encode: %v", err)
	}
	return data, nil
}

// Decode a sequence from its JSON encoding. Decode(Encode(s)) flattens
// identically to s, although the condensed shape may legitimately differ.
//
// A row of the wrong length, or with a value outside of the range allowed
// for its axis, is an InvalidOperand error.
func Decode(data []byte) (KeySequence, error) {
	var raw [][]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return KeySequence{}, curated.Errorf(DecodeError, err)
	}

	rows := make([]Row, len(raw))
	for i, v := range raw {
		if len(v) != NumAxes {
			return KeySequence{}, curated.Errorf(InvalidOperand,
				fmt.Sprintf("row %d has %d values (wanted %d)", i, len(v), NumAxes))
		}
		copy(rows[i][:], v)
		if err := ValidateRow(rows[i]); err != nil {
			return KeySequence{}, err
		}
	}

	return FromRows(rows), nil
}

// WriteFile saves the encoded sequence to a file.
func (s KeySequence) WriteFile(filename string) error {
	data, err := s.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return curated.Errorf("controller: encode: %v", err)
	}
	return nil
}

// ReadFile loads a sequence from a file written by WriteFile.
func ReadFile(filename string) (KeySequence, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return KeySequence{}, curated.Errorf(DecodeError, err)
	}
	return Decode(data)
}
