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

// Package controller is the model of the virtual gamepad. It has no
// knowledge of the game process; it only describes what the controller is
// doing and for how long.
//
// KeyPress is the controller state for one held run of frames - twenty
// named axes and a duration. KeySequence is an ordered list of presses.
// Sequences are built by composition:
//
//	a.Add(b)        sequential composition (a then b)
//	f.Mul(n)        temporal repetition (hold f for n times as long)
//	a.And(b)        simultaneous combination (a and b together)
//
// and by flattening a raw capture with FromRows(). Sequences are always
// stored condensed: adjacent presses with identical axis values merge by
// summing their durations.
//
// Keylist() expands a sequence to its full ordered list of per-frame rows,
// which is the wire format used by the engine for playback, and by
// Encode()/Decode() for the JSON file format.
package controller
