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

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DavidCEllis/DarkSouls-TAS/curated"
	"github.com/DavidCEllis/DarkSouls-TAS/modalflag"
	"github.com/DavidCEllis/DarkSouls-TAS/profiles"
	"github.com/DavidCEllis/DarkSouls-TAS/test"
)

// dispatch parses args the way main() does and runs the selected mode.
func dispatch(t *testing.T, args []string) error {
	t.Helper()

	md := &modalflag.Modes{Output: &test.Writer{}}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("RUN", "RECORD", "SCRIPT", "TIMER", "FQ", "VERSION")

	p, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, p == modalflag.ParseContinue, true)

	switch md.Mode() {
	case "RUN":
		return run(md)
	case "RECORD":
		return record(md)
	case "SCRIPT":
		return script(md)
	case "TIMER":
		return timer(md)
	case "FQ":
		return forceQuit(md)
	}

	t.Fatalf("unexpected mode: %s", md.Mode())
	return nil
}

func TestScriptModeDetached(t *testing.T) {
	path := filepath.Join(t.TempDir(), "args.star")
	src := `
if len(args) != 2:
    fail("expected two script arguments")
if args[0] != "alpha" or args[1] != "beta":
    fail("unexpected script argument values")

s = (a + wait * 3) * 2
if frames(s) != 8:
    fail("unexpected frame count")
`
	err := os.WriteFile(path, []byte(src), 0644)
	test.ExpectedSuccess(t, err)

	err = dispatch(t, []string{"script", "-detached", path, "alpha", "beta"})
	test.ExpectedSuccess(t, err)
}

func TestScriptModeMissingFile(t *testing.T) {
	err := dispatch(t, []string{"script", "-detached"})
	test.ExpectedFailure(t, err)
}

func TestUnknownProfile(t *testing.T) {
	err := dispatch(t, []string{"fq", "-profile", "nosuchgame", "-now"})
	test.ExpectedFailure(t, err)
	test.Equate(t, curated.Is(err, profiles.NotFound), true)
}
