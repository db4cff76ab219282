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

package hook

// The addresses in this file are reverse-engineered constants for the two
// known builds of the game. They are not discovered at runtime.

// addresses relative to the support module's base address.
const (
	// pointer to the live input-state block. dereferenced twice, then
	// inputBlock is added to reach the 12 byte controller state
	inputPointer = 0x10C44
	inputBlock   = 0x28

	// the call instruction that feeds native controller input to the game.
	// overwritten with nops to disable the native input path
	controllerPatch = 0x6945
)

// absolute addresses and offsets.
const (
	// the 4 bytes at this address classify the running binary
	signatureAddress = 0x400080

	// offsets added to the dereferenced igt and frame count base pointers
	igtValue        = 0x68
	frameCountValue = 0x58

	// size of the controller state block
	inputBlockSize = 12
)

// the signature identifying the debug build.
var debugSignature = []byte{0xb4, 0x34, 0x96, 0xce}

// instruction sequences for the controller patch.
var (
	controllerOn  = []byte{0xe8, 0xa6, 0xfb, 0xff, 0xff}
	controllerOff = []byte{0x90, 0x90, 0x90, 0x90, 0x90}
)

// instruction sequences for the background input flag.
var (
	backgroundOn  = []byte{0xb0, 0x01, 0x90}
	backgroundOff = []byte{0x0f, 0x94, 0xc0}
)

// layout is the set of absolute addresses that differ between the two
// known builds of the game. Resolved once at attach time and immutable for
// the hook's lifetime until an explicit re-attach.
type layout struct {
	name string

	// address of the instruction controlling input while unfocused
	backgroundInput uint64

	// base pointers for the in-game-time clock and the frame counter
	igtBase        uint64
	frameCountBase uint64
}

var debugLayout = layout{
	name:            "debug",
	backgroundInput: 0xF75BF3,
	igtBase:         0x137C8C0,
	frameCountBase:  0x137C7C4,
}

var releaseLayout = layout{
	name:            "release",
	backgroundInput: 0xF72543,
	igtBase:         0x1378700,
	frameCountBase:  0x1378604,
}
