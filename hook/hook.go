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
	"bytes"
	"fmt"

	"github.com/DavidCEllis/DarkSouls-TAS/curated"
	"github.com/DavidCEllis/DarkSouls-TAS/logger"
	"github.com/DavidCEllis/DarkSouls-TAS/profiles"
)

// sentinel error patterns for the hook package.
const (
	// the game window or process could not be found at acquire time. fatal
	// until a successful re-acquire
	AttachmentError = "hook: attach: %v"

	// an OS memory call failed after a prior successful attach. typically
	// the game has exited. the caller must stop issuing operations and
	// re-attach
	ConnectivityLost = "hook: lost connection to the game: %v"

	// a pointer chain resolved to a null address. reported distinctly from
	// connection loss because it usually indicates the wrong binary-layout
	// classification
	NullPointer = "hook: null pointer in the chain to the %s"

	// process attachment requires OS support that this platform lacks
	NotSupported = "hook: process attachment is not supported on this platform"
)

// sys is the set of OS process capabilities the hook consumes: window
// lookup by title, process open with a minimal right set, module-list
// snapshot, raw virtual-memory access and process termination. No other
// foreign capability is required.
//
// the indirection exists so that the hook logic can be exercised against
// an in-memory implementation in tests.
type sys interface {
	findWindow(title string) (uintptr, error)
	processID(window uintptr) (uint32, error)
	openProcess(pid uint32) (uintptr, error)
	moduleBase(pid uint32, module string) (uint64, error)
	readMemory(process uintptr, address uint64, p []byte) error
	writeMemory(process uintptr, address uint64, p []byte) error
	terminateProcess(process uintptr) error
	closeHandle(handle uintptr) error
}

// Hook is an attachment to one running instance of the game. It holds
// exclusive ownership of the OS handles it opens; Release() (or a
// successful ForceQuit()) gives them up.
//
// A Hook is not safe for concurrent use. The design assumes exactly one
// TAS engine per attachment.
type Hook struct {
	profile profiles.Profile
	sys     sys

	window     uintptr
	pid        uint32
	process    uintptr
	moduleBase uint64

	// offset table selected by the signature read at attach time
	layout layout
	debug  bool

	attached bool
}

// New creates a Hook for the given profile and acquires it immediately.
func New(profile profiles.Profile) (*Hook, error) {
	h := &Hook{
		profile: profile,
		sys:     newSys(),
	}
	if err := h.Acquire(); err != nil {
		return nil, err
	}
	return h, nil
}

// Acquire the game window and process. Resolves the support module's base
// address and classifies the binary layout. Acquiring an attached hook
// releases it first.
func (h *Hook) Acquire() error {
	h.Release()

	w, err := h.sys.findWindow(h.profile.WindowTitle)
	if err != nil {
		return curated.Errorf(AttachmentError,
			fmt.Sprintf("cannot find the %s game window. make sure the game is running", h.profile.WindowTitle))
	}

	pid, err := h.sys.processID(w)
	if err != nil {
		return curated.Errorf(AttachmentError, err)
	}

	proc, err := h.sys.openProcess(pid)
	if err != nil {
		return curated.Errorf(AttachmentError, err)
	}

	base, err := h.sys.moduleBase(pid, h.profile.Module)
	if err != nil {
		_ = h.sys.closeHandle(proc)
		return curated.Errorf(AttachmentError, err)
	}

	h.window = w
	h.pid = pid
	h.process = proc
	h.moduleBase = base
	h.attached = true

	// classify the running binary and select the offset table
	sig, err := h.Read(signatureAddress, len(debugSignature))
	if err != nil {
		h.Release()
		return curated.Errorf(AttachmentError, err)
	}
	h.debug = bytes.Equal(sig, debugSignature)
	if h.debug {
		h.layout = debugLayout
	} else {
		h.layout = releaseLayout
	}

	logger.Logf("hook", "attached to %s (pid %d, %s layout)", h.profile.WindowTitle, h.pid, h.layout.name)

	return nil
}

// Release all OS handles held by the hook. Idempotent. Errors from a
// target that has already exited are suppressed.
func (h *Hook) Release() {
	if !h.attached {
		return
	}

	// if the game has exited this will fail. there is nothing to do about
	// it so the error is discarded
	_ = h.sys.closeHandle(h.process)

	h.window = 0
	h.pid = 0
	h.process = 0
	h.moduleBase = 0
	h.attached = false

	logger.Log("hook", "released")
}

// Rehook releases the hook and acquires the game again. The offset table
// is re-resolved, so a game restart (or a switch between builds) is
// handled correctly.
func (h *Hook) Rehook() error {
	h.Release()
	return h.Acquire()
}

// Attached returns true while the hook holds an acquired process.
func (h *Hook) Attached() bool {
	return h.attached
}

// Debug returns true if the attached binary was classified as the debug
// layout.
func (h *Hook) Debug() bool {
	return h.debug
}

// Read length bytes of process memory starting at address. A failed read
// is a ConnectivityLost error, never silently ignored.
func (h *Hook) Read(address uint64, length int) ([]byte, error) {
	if !h.attached {
		return nil, curated.Errorf(ConnectivityLost, "hook is not attached")
	}
	p := make([]byte, length)
	if err := h.sys.readMemory(h.process, address, p); err != nil {
		return nil, curated.Errorf(ConnectivityLost, err)
	}
	return p, nil
}

// Write bytes to process memory starting at address. A failed write is a
// ConnectivityLost error.
func (h *Hook) Write(address uint64, data []byte) error {
	if !h.attached {
		return curated.Errorf(ConnectivityLost, "hook is not attached")
	}
	if err := h.sys.writeMemory(h.process, address, data); err != nil {
		return curated.Errorf(ConnectivityLost, err)
	}
	return nil
}

// ReadUint reads a fixed-width little-endian unsigned integer. Width is in
// bytes, up to eight.
func (h *Hook) ReadUint(address uint64, width int) (uint64, error) {
	p, err := h.Read(address, width)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := width - 1; i >= 0; i-- {
		v = v<<8 | uint64(p[i])
	}
	return v, nil
}

// WriteUint writes a fixed-width little-endian unsigned integer.
func (h *Hook) WriteUint(address uint64, value uint64, width int) error {
	p := make([]byte, width)
	for i := 0; i < width; i++ {
		p[i] = byte(value >> (8 * i))
	}
	return h.Write(address, p)
}

// deref32 follows a 32 bit pointer. the game is a 32 bit binary so every
// pointer in the chains is four bytes.
func (h *Hook) deref32(address uint64) (uint64, error) {
	v, err := h.ReadUint(address, 4)
	if err != nil {
		return 0, err
	}
	return v, nil
}
