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

import (
	"encoding/binary"

	"github.com/DavidCEllis/DarkSouls-TAS/controller"
	"github.com/DavidCEllis/DarkSouls-TAS/curated"
	"github.com/DavidCEllis/DarkSouls-TAS/logger"
)

// inputAddress resolves the pointer chain to the live controller-state
// block: module base + inputPointer, dereferenced twice, plus inputBlock.
func (h *Hook) inputAddress() (uint64, error) {
	p, err := h.deref32(h.moduleBase + inputPointer)
	if err != nil {
		return 0, err
	}
	if p == 0 {
		return 0, curated.Errorf(NullPointer, "controller state")
	}

	p, err = h.deref32(p)
	if err != nil {
		return 0, err
	}
	if p == 0 {
		return 0, curated.Errorf(NullPointer, "controller state")
	}

	return p + inputBlock, nil
}

// ReadInput returns the current state of the game's controller block as a
// raw row.
func (h *Hook) ReadInput() (controller.Row, error) {
	addr, err := h.inputAddress()
	if err != nil {
		return controller.Row{}, err
	}

	data, err := h.Read(addr, inputBlockSize)
	if err != nil {
		return controller.Row{}, err
	}

	return unpackInput(data), nil
}

// WriteInput replaces the game's controller block with the given row. The
// game reads the block once per frame; to hold a press for longer than one
// frame the same row must be written again after the frame clock ticks.
func (h *Hook) WriteInput(row controller.Row) error {
	addr, err := h.inputAddress()
	if err != nil {
		return err
	}
	return h.Write(addr, packInput(row))
}

// Controller toggles the game's native input path by patching a short
// instruction sequence in the support module. Disabling it prevents the
// physical controller fighting the virtual one during playback.
func (h *Hook) Controller(enable bool) error {
	if enable {
		return h.Write(h.moduleBase+controllerPatch, controllerOn)
	}
	return h.Write(h.moduleBase+controllerPatch, controllerOff)
}

// BackgroundInput toggles whether the game accepts input while its window
// is unfocused.
func (h *Hook) BackgroundInput(enable bool) error {
	if enable {
		return h.Write(h.layout.backgroundInput, backgroundOn)
	}
	return h.Write(h.layout.backgroundInput, backgroundOff)
}

// IGT returns the in-game time in milliseconds. The clock advances once
// per displayed frame.
func (h *Hook) IGT() (int, error) {
	p, err := h.deref32(h.layout.igtBase)
	if err != nil {
		return 0, err
	}
	if p == 0 {
		return 0, curated.Errorf(NullPointer, "igt clock")
	}

	v, err := h.ReadUint(p+igtValue, 4)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// FrameCount returns the number of frames displayed since the game
// started.
func (h *Hook) FrameCount() (int, error) {
	p, err := h.deref32(h.layout.frameCountBase)
	if err != nil {
		return 0, err
	}
	if p == 0 {
		return 0, curated.Errorf(NullPointer, "frame counter")
	}

	v, err := h.ReadUint(p+frameCountValue, 4)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// ForceQuit asks the OS to terminate the game process. Reports success or
// failure without raising; on success the hook is released.
func (h *Hook) ForceQuit() bool {
	if !h.attached {
		return false
	}
	if err := h.sys.terminateProcess(h.process); err != nil {
		logger.Logf("hook", "force quit failed: %v", err)
		return false
	}
	logger.Log("hook", "force quit successful")
	h.Release()
	return true
}

// unpackInput decodes the 12 byte controller block. Bytes 0-1 are a 16 bit
// button bitmask: bits 0-9 are the first ten digital buttons in row order;
// bits 12-15 are the remaining four digital buttons, reusing the gaps in
// the mask. Byte 2 and 3 are the triggers. Bytes 4-11 are the four signed
// 16 bit stick axes.
func unpackInput(data []byte) controller.Row {
	var row controller.Row

	buttons := binary.LittleEndian.Uint16(data[0:2])
	for n := 0; n < 10; n++ {
		row[n] = int((buttons >> n) & 1)
	}
	for n := 12; n < 16; n++ {
		row[n-2] = int((buttons >> n) & 1)
	}

	row[controller.AxisL2] = int(data[2])
	row[controller.AxisR2] = int(data[3])
	row[controller.AxisLThumbX] = int(int16(binary.LittleEndian.Uint16(data[4:6])))
	row[controller.AxisLThumbY] = int(int16(binary.LittleEndian.Uint16(data[6:8])))
	row[controller.AxisRThumbX] = int(int16(binary.LittleEndian.Uint16(data[8:10])))
	row[controller.AxisRThumbY] = int(int16(binary.LittleEndian.Uint16(data[10:12])))

	return row
}

// packInput is the exact inverse of unpackInput.
func packInput(row controller.Row) []byte {
	data := make([]byte, inputBlockSize)

	var buttons uint16
	for n := 0; n < 10; n++ {
		buttons |= uint16(row[n]&1) << n
	}
	for n := 12; n < 16; n++ {
		buttons |= uint16(row[n-2]&1) << n
	}
	binary.LittleEndian.PutUint16(data[0:2], buttons)

	data[2] = byte(row[controller.AxisL2])
	data[3] = byte(row[controller.AxisR2])
	binary.LittleEndian.PutUint16(data[4:6], uint16(int16(row[controller.AxisLThumbX])))
	binary.LittleEndian.PutUint16(data[6:8], uint16(int16(row[controller.AxisLThumbY])))
	binary.LittleEndian.PutUint16(data[8:10], uint16(int16(row[controller.AxisRThumbX])))
	binary.LittleEndian.PutUint16(data[10:12], uint16(int16(row[controller.AxisRThumbY])))

	return data
}
