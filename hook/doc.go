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

// Package hook attaches to the memory of a running instance of the game.
// The game does not cooperate: the hook finds the game window by its exact
// title, opens the owning process with the minimum rights it needs and
// reads and writes the process's memory directly.
//
// At attach time the hook resolves the base address of the support module
// the game routes controller input through, and reads a fixed signature to
// classify the binary as the debug or the release layout. The two layouts
// place the well-known fields at different addresses; the classification
// selects between two hardcoded offset tables and every later operation
// reads through the selected table.
//
// Beyond raw Read()/Write(), the hook exposes one named accessor per
// well-known field: the live input-state block (ReadInput/WriteInput), the
// in-game-time clock (IGT), the frame counter (FrameCount), the native
// controller path (Controller) and the background-input flag
// (BackgroundInput). Each accessor hides a one- or two-level pointer
// indirection chain; a chain that resolves to zero is reported as a
// NullPointer error, distinct from connection loss, because it usually
// means the layout classification is wrong.
//
// A hook is Unattached until Acquire() succeeds and Detached after
// Release() or after the game exits. Any memory operation that fails after
// a successful attach surfaces as ConnectivityLost; the hook never retries
// and the caller must Rehook() before issuing further operations.
package hook
