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

//go:build !windows

package hook

import "github.com/DavidCEllis/DarkSouls-TAS/curated"

// stubSys allows the package to compile on non-windows platforms. every
// operation fails with NotSupported.
type stubSys struct{}

func newSys() sys {
	return stubSys{}
}

func (stubSys) findWindow(title string) (uintptr, error) {
	return 0, curated.Errorf(NotSupported)
}

func (stubSys) processID(window uintptr) (uint32, error) {
	return 0, curated.Errorf(NotSupported)
}

func (stubSys) openProcess(pid uint32) (uintptr, error) {
	return 0, curated.Errorf(NotSupported)
}

func (stubSys) moduleBase(pid uint32, module string) (uint64, error) {
	return 0, curated.Errorf(NotSupported)
}

func (stubSys) readMemory(process uintptr, address uint64, p []byte) error {
	return curated.Errorf(NotSupported)
}

func (stubSys) writeMemory(process uintptr, address uint64, p []byte) error {
	return curated.Errorf(NotSupported)
}

func (stubSys) terminateProcess(process uintptr) error {
	return curated.Errorf(NotSupported)
}

func (stubSys) closeHandle(handle uintptr) error {
	return curated.Errorf(NotSupported)
}
