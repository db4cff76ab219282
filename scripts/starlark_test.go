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

package scripts

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/DavidCEllis/DarkSouls-TAS/controller"
	"github.com/DavidCEllis/DarkSouls-TAS/curated"
	"github.com/DavidCEllis/DarkSouls-TAS/engine"
	"github.com/DavidCEllis/DarkSouls-TAS/test"
)

func evalScript(t *testing.T, src string) map[string]interface{} {
	t.Helper()

	r := NewRunner(nil)
	r.Output = &test.Writer{}

	globals, err := r.run("test.star", src)
	if err != nil {
		t.Fatalf("script failed: %v", err)
	}

	res := make(map[string]interface{})
	for name, v := range globals {
		res[name] = v
	}
	return res
}

func TestScriptAlgebra(t *testing.T) {
	globals := evalScript(t, `
s = (a + wait * 5) * 2
n = frames(s)
combo = run & b
`)

	s, ok := globals["s"].(seqValue)
	test.Equate(t, ok, true)
	test.Equate(t, s.s.FrameCount(), 12)

	n := fmt.Sprintf("%v", globals["n"])
	test.Equate(t, n, "12")

	combo, ok := globals["combo"].(pressValue)
	test.Equate(t, ok, true)
	test.Equate(t, combo.k.B, 1)
	test.Equate(t, combo.k.LThumbY, 32767)
}

func TestScriptPressBuiltin(t *testing.T) {
	globals := evalScript(t, `
p = press(frames=3, b=1, l_thumb_y=-500)
`)

	p, ok := globals["p"].(pressValue)
	test.Equate(t, ok, true)
	test.Equate(t, p.k.Frames, 3)
	test.Equate(t, p.k.B, 1)
	test.Equate(t, p.k.LThumbY, -500)
}

func TestScriptGlitchBuiltins(t *testing.T) {
	globals := evalScript(t, `
m = moveswap(too_heavy=True)
d = framedupe(dupes=2)
n = frames(d)
`)

	m, ok := globals["m"].(seqValue)
	test.Equate(t, ok, true)
	test.Equate(t, m.s.FrameCount(), 22)

	d, ok := globals["d"].(seqValue)
	test.Equate(t, ok, true)
	test.Equate(t, d.s.FrameCount(), 165)
}

func TestScriptControlFlow(t *testing.T) {
	// while loops and top level control flow are enabled for user scripts
	globals := evalScript(t, `
s = seq()
n = 0
while n < 4:
    s = s + a
    n += 1
`)

	s, ok := globals["s"].(seqValue)
	test.Equate(t, ok, true)
	test.Equate(t, s.s.FrameCount(), 4)

	// identical adjacent presses condense into one
	test.Equate(t, s.s.Len(), 1)
}

func TestScriptSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.json")

	globals := evalScript(t, fmt.Sprintf(`
save(moveswap(), %q)
loaded = load(%q)
n = frames(loaded)
`, path, path))

	loaded, ok := globals["loaded"].(seqValue)
	test.Equate(t, ok, true)
	test.Equate(t, loaded.s.FrameCount(), 22)
}

func TestScriptBadPress(t *testing.T) {
	r := NewRunner(nil)
	r.Output = &test.Writer{}

	_, err := r.run("test.star", `p = press(dpad_up=7)`)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, ScriptError))
}

func TestScriptNoEngine(t *testing.T) {
	r := NewRunner(nil)
	r.Output = &test.Writer{}

	_, err := r.run("test.star", `t = igt()`)
	test.ExpectedFailure(t, err)
}

func TestScriptNegativeRepeat(t *testing.T) {
	r := NewRunner(nil)
	r.Output = &test.Writer{}

	_, err := r.run("test.star", `s = a * -1`)
	test.ExpectedFailure(t, err)
}

// idleIO satisfies engine.IO without a game. the clock never advances.
type idleIO struct{}

func (idleIO) ReadInput() (controller.Row, error) { return controller.Row{}, nil }
func (idleIO) WriteInput(controller.Row) error    { return nil }
func (idleIO) Controller(bool) error              { return nil }
func (idleIO) BackgroundInput(bool) error         { return nil }
func (idleIO) IGT() (int, error)                  { return 0, nil }
func (idleIO) FrameCount() (int, error)           { return 0, nil }
func (idleIO) Rehook() error                      { return nil }
func (idleIO) ForceQuit() bool                    { return true }

func TestScriptWaitLimit(t *testing.T) {
	eng := engine.New(idleIO{})
	eng.Output = &test.Writer{}

	r := NewRunner(eng)
	r.Output = &test.Writer{}

	_, err := r.run("test.star", `wait_limit(polls=25)`)
	test.ExpectedSuccess(t, err)
	test.Equate(t, eng.WaitLimit, 25)

	// a bounded run against the frozen clock fails instead of hanging
	_, err = r.run("test.star", `exec(a, igt_wait=False)`)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, ScriptError))

	_, err = r.run("test.star", `wait_limit(polls=-1)`)
	test.ExpectedFailure(t, err)
}
