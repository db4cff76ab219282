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

// Package profiles describes the game binaries the hook knows how to
// attach to. A profile names the game window and the support module whose
// load address anchors the input-state pointer chain.
//
// The profiles for the known editions of the game are compiled in. A YAML
// file can supply additional profiles (a renamed window title for example)
// without rebuilding the tool.
package profiles

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/DavidCEllis/DarkSouls-TAS/curated"
)

// sentinel error patterns for the profiles package.
const (
	NotFound  = "profiles: no profile named %s"
	LoadError = "profiles: %v"
)

// Profile identifies one attachable game binary.
type Profile struct {
	// name used to select the profile from the command line
	Name string `yaml:"name"`

	// exact title of the game's top-level window
	WindowTitle string `yaml:"window"`

	// the module whose base address anchors the input-state pointer chain
	Module string `yaml:"module"`
}

// the module every known edition routes controller input through.
const defaultModule = "XINPUT1_3.dll"

// Builtin returns the compiled-in profiles. The first profile is the
// default.
func Builtin() []Profile {
	return []Profile{
		{
			Name:        "ptde",
			WindowTitle: "DARK SOULS",
			Module:      defaultModule,
		},
		{
			// the remastered edition is identified by window title only.
			// attaching works but the offset tables have only been verified
			// against the original edition
			Name:        "remaster",
			WindowTitle: "DARK SOULS™: REMASTERED",
			Module:      defaultModule,
		},
	}
}

// yaml file layout.
type profileFile struct {
	Profiles []Profile `yaml:"profiles"`
}

// Load additional profiles from a YAML file.
func Load(path string) ([]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, curated.Errorf(LoadError, err)
	}

	var f profileFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, curated.Errorf(LoadError, err)
	}

	for i, p := range f.Profiles {
		if p.Name == "" {
			return nil, curated.Errorf(LoadError, fmt.Sprintf("%s: profile %d has no name", path, i))
		}
		if p.WindowTitle == "" {
			return nil, curated.Errorf(LoadError, fmt.Sprintf("%s: profile %s has no window title", path, p.Name))
		}
		if p.Module == "" {
			f.Profiles[i].Module = defaultModule
		}
	}

	return f.Profiles, nil
}

// Lookup a named profile. Names are compared case insensitively. Profiles
// later in the list shadow earlier ones, so file-loaded profiles should be
// appended after the builtins.
func Lookup(profiles []Profile, name string) (Profile, error) {
	for i := len(profiles) - 1; i >= 0; i-- {
		if strings.EqualFold(profiles[i].Name, name) {
			return profiles[i], nil
		}
	}
	return Profile{}, curated.Errorf(NotFound, name)
}
