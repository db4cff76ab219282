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

package profiles_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DavidCEllis/DarkSouls-TAS/curated"
	"github.com/DavidCEllis/DarkSouls-TAS/profiles"
	"github.com/DavidCEllis/DarkSouls-TAS/test"
)

func TestBuiltin(t *testing.T) {
	list := profiles.Builtin()

	p, err := profiles.Lookup(list, "ptde")
	test.ExpectedSuccess(t, err)
	test.Equate(t, p.WindowTitle, "DARK SOULS")
	test.Equate(t, p.Module, "XINPUT1_3.dll")

	// lookup is case insensitive
	p, err = profiles.Lookup(list, "PTDE")
	test.ExpectedSuccess(t, err)
	test.Equate(t, p.Name, "ptde")

	_, err = profiles.Lookup(list, "unknown")
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, profiles.NotFound))
}

func TestLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "profiles.yaml")
	content := `profiles:
  - name: renamed
    window: DARK SOULS (modded)
  - name: debugbuild
    window: DARK SOULS DEBUG
    module: XINPUT9_1_0.dll
`
	if err := os.WriteFile(fn, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := profiles.Load(fn)
	test.ExpectedSuccess(t, err)
	test.Equate(t, len(loaded), 2)

	// omitted module falls back to the default
	test.Equate(t, loaded[0].Module, "XINPUT1_3.dll")
	test.Equate(t, loaded[1].Module, "XINPUT9_1_0.dll")

	// loaded profiles shadow builtins of the same name
	list := append(profiles.Builtin(), profiles.Profile{Name: "ptde", WindowTitle: "DARK SOULS (jp)", Module: "XINPUT1_3.dll"})
	p, err := profiles.Lookup(list, "ptde")
	test.ExpectedSuccess(t, err)
	test.Equate(t, p.WindowTitle, "DARK SOULS (jp)")
}

func TestLoadValidation(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "profiles.yaml")
	content := `profiles:
  - window: DARK SOULS
`
	if err := os.WriteFile(fn, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := profiles.Load(fn)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, profiles.LoadError))

	// missing file
	_, err = profiles.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, profiles.LoadError))
}
