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

//go:build windows

package hook

import (
	"fmt"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

// FindWindowW and GetWindowThreadProcessId are not wrapped by the windows
// package so they are reached through user32.dll directly.
var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	procFindWindowW              = user32.NewProc("FindWindowW")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
)

// winSys implements the sys interface with real Win32 calls.
type winSys struct{}

func newSys() sys {
	return winSys{}
}

func (winSys) findWindow(title string) (uintptr, error) {
	t, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return 0, err
	}

	// class name is nil. only the window title takes part in the match
	w, _, callErr := procFindWindowW.Call(0, uintptr(unsafe.Pointer(t)))
	if w == 0 {
		return 0, fmt.Errorf("FindWindowW: %v", callErr)
	}
	return w, nil
}

func (winSys) processID(window uintptr) (uint32, error) {
	var pid uint32
	tid, _, callErr := procGetWindowThreadProcessId.Call(window, uintptr(unsafe.Pointer(&pid)))
	if tid == 0 {
		return 0, fmt.Errorf("GetWindowThreadProcessId: %v", callErr)
	}
	return pid, nil
}

func (winSys) openProcess(pid uint32) (uintptr, error) {
	// the minimum right set the tool needs: termination for ForceQuit and
	// the three virtual-memory rights for everything else
	const rights = windows.PROCESS_TERMINATE |
		windows.PROCESS_VM_OPERATION |
		windows.PROCESS_VM_READ |
		windows.PROCESS_VM_WRITE

	h, err := windows.OpenProcess(rights, false, pid)
	if err != nil {
		return 0, fmt.Errorf("OpenProcess: %v", err)
	}
	return uintptr(h), nil
}

func (winSys) moduleBase(pid uint32, module string) (uint64, error) {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPMODULE|windows.TH32CS_SNAPMODULE32, pid)
	if err != nil {
		return 0, fmt.Errorf("CreateToolhelp32Snapshot: %v", err)
	}
	defer windows.CloseHandle(snapshot)

	var entry windows.ModuleEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	// linear scan of the module list for a name match
	err = windows.Module32First(snapshot, &entry)
	for err == nil {
		if strings.EqualFold(windows.UTF16ToString(entry.Module[:]), module) {
			return uint64(entry.ModBaseAddr), nil
		}
		err = windows.Module32Next(snapshot, &entry)
	}

	return 0, fmt.Errorf("module %s not found in process %d", module, pid)
}

func (winSys) readMemory(process uintptr, address uint64, p []byte) error {
	var read uintptr
	err := windows.ReadProcessMemory(windows.Handle(process), uintptr(address), &p[0], uintptr(len(p)), &read)
	if err != nil {
		return fmt.Errorf("ReadProcessMemory: %v", err)
	}
	return nil
}

func (winSys) writeMemory(process uintptr, address uint64, p []byte) error {
	var written uintptr
	err := windows.WriteProcessMemory(windows.Handle(process), uintptr(address), &p[0], uintptr(len(p)), &written)
	if err != nil {
		return fmt.Errorf("WriteProcessMemory: %v", err)
	}
	return nil
}

func (winSys) terminateProcess(process uintptr) error {
	return windows.TerminateProcess(windows.Handle(process), 1)
}

func (winSys) closeHandle(handle uintptr) error {
	return windows.CloseHandle(windows.Handle(handle))
}
