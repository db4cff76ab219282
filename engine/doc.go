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

// Package engine drives frame-synchronised input playback and recording
// against an attached game.
//
// The TAS type owns the attachment and the input queue. Playback flattens
// a controller.KeySequence into per-frame rows and writes one row to the
// game's controller block per tick of the in-game clock. Recording is the
// inverse: the controller block is sampled once per clock tick and
// condensed back into a KeySequence.
//
// The engine takes exclusive control of the game's input for the duration
// of a run. Control() disables the native controller path and enables
// background input before its argument runs and restores both afterwards,
// on every exit path. Run() and Record() use Control() internally.
//
// The core is deliberately single threaded. Frame synchronisation is a
// busy poll of the in-game clock; there are no goroutines and no internal
// retries. If the game goes away mid-run the failing read unblocks the
// poll and the error propagates to the caller, who may Rehook() and try
// again.
package engine
