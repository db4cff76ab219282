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

// Package resources prepares paths to files in the dstas configuration
// directory. JoinPath() creates any directories needed to reach the
// file but does not touch or create the file itself.
package resources

import (
	"os"
	"path/filepath"
)

const configDir = "dstas"

// JoinPath prepends the supplied path with the dstas configuration
// directory, creating directories as required.
//
// On modern Linux systems the full path will be something like:
//
//	/home/user/.config/dstas/
//
// and on Windows something like:
//
//	C:\Users\user\AppData\Roaming\dstas\
func JoinPath(path ...string) (string, error) {
	b, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	p := filepath.Join(b, configDir, filepath.Join(path...))

	if _, err := os.Stat(p); err == nil {
		return p, nil
	}

	if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
		return "", err
	}

	return p, nil
}
