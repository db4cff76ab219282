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
	"io"
	"os"
	"time"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/DavidCEllis/DarkSouls-TAS/controller"
	"github.com/DavidCEllis/DarkSouls-TAS/curated"
	"github.com/DavidCEllis/DarkSouls-TAS/engine"
	"github.com/DavidCEllis/DarkSouls-TAS/logger"
)

// sentinel error pattern for script evaluation failures.
const ScriptError = "scripts: %v"

// language options for user scripts. the extensions beyond the starlark
// core make imperative TAS scripts pleasant to write.
var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

// Runner evaluates user scripts written in Starlark. The controller
// algebra is exposed directly: presses and sequences are first class
// values supporting +, * and &, mirroring the Go API.
//
// The engine may be nil, in which case sequence building, saving and
// loading all work but the builtins that touch the game fail.
type Runner struct {
	eng *engine.TAS

	// script print() output
	Output io.Writer

	// Args appear in the script as the predeclared list of strings named
	// "args"
	Args []string
}

// NewRunner is the preferred method of initialisation for the Runner
// type.
func NewRunner(eng *engine.TAS) *Runner {
	return &Runner{
		eng:    eng,
		Output: os.Stdout,
	}
}

// RunFile evaluates the script at path.
func (r *Runner) RunFile(path string) error {
	_, err := r.run(path, nil)
	return err
}

// run evaluates a script and returns its global environment. src may be
// a string containing the script text, or nil to read from filename.
func (r *Runner) run(filename string, src any) (starlark.StringDict, error) {
	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(r.Output, msg)
		},
	}

	globals, err := starlark.ExecFileOptions(fileOptions, thread, filename, src, r.predeclared())
	if err != nil {
		if evalErr, ok := err.(*starlark.EvalError); ok {
			logger.Logf("scripts", "%s", evalErr.Backtrace())
		}
		return nil, curated.Errorf(ScriptError, err)
	}
	return globals, nil
}

// pressValue wraps a KeyPress as a starlark value.
type pressValue struct {
	k controller.KeyPress
}

func (p pressValue) String() string        { return p.k.String() }
func (p pressValue) Type() string          { return "keypress" }
func (p pressValue) Freeze()               {}
func (p pressValue) Truth() starlark.Bool  { return true }
func (p pressValue) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: keypress") }

func (p pressValue) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	switch op {
	case syntax.PLUS:
		item, ok := asItem(y)
		if !ok {
			return nil, nil
		}
		if side == starlark.Right {
			return seqValue{s: controller.Seq(item, p.k)}, nil
		}
		return seqValue{s: p.k.Add(item)}, nil

	case syntax.STAR:
		n, err := starlark.AsInt32(y)
		if err != nil {
			return nil, nil
		}
		k, err := p.k.Mul(n)
		if err != nil {
			return nil, err
		}
		return pressValue{k: k}, nil

	case syntax.AMP:
		other, ok := y.(pressValue)
		if !ok {
			return nil, nil
		}
		return pressValue{k: p.k.And(other.k)}, nil
	}

	return nil, nil
}

// seqValue wraps a KeySequence as a starlark value.
type seqValue struct {
	s controller.KeySequence
}

func (v seqValue) String() string        { return v.s.String() }
func (v seqValue) Type() string          { return "keysequence" }
func (v seqValue) Freeze()               {}
func (v seqValue) Truth() starlark.Bool  { return starlark.Bool(v.s.Len() > 0) }
func (v seqValue) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: keysequence") }

func (v seqValue) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	switch op {
	case syntax.PLUS:
		item, ok := asItem(y)
		if !ok {
			return nil, nil
		}
		if side == starlark.Right {
			return seqValue{s: controller.Seq(item, v.s)}, nil
		}
		return seqValue{s: v.s.Add(item)}, nil

	case syntax.STAR:
		n, err := starlark.AsInt32(y)
		if err != nil {
			return nil, nil
		}
		s, err := v.s.Mul(n)
		if err != nil {
			return nil, err
		}
		return seqValue{s: s}, nil
	}

	return nil, nil
}

// asItem converts a script value to a controller Item.
func asItem(v starlark.Value) (controller.Item, bool) {
	switch v := v.(type) {
	case pressValue:
		return v.k, true
	case seqValue:
		return v.s, true
	}
	return nil, false
}

// asSequence converts a script value to a KeySequence.
func asSequence(v starlark.Value) (controller.KeySequence, bool) {
	item, ok := asItem(v)
	if !ok {
		return controller.KeySequence{}, false
	}
	return controller.Seq(item), true
}

// predeclared builds the global environment for user scripts.
func (r *Runner) predeclared() starlark.StringDict {
	env := starlark.StringDict{
		// the single frame primitives under their canonical names
		"wait":    pressValue{k: Wait},
		"up":      pressValue{k: Up},
		"down":    pressValue{k: Down},
		"left":    pressValue{k: Left},
		"right":   pressValue{k: Right},
		"start":   pressValue{k: Start},
		"back":    pressValue{k: Back},
		"a":       pressValue{k: A},
		"b":       pressValue{k: B},
		"x":       pressValue{k: X},
		"y":       pressValue{k: Y},
		"l1":      pressValue{k: L1},
		"r1":      pressValue{k: R1},
		"l2":      pressValue{k: L2},
		"r2":      pressValue{k: R2},
		"l_thumb": pressValue{k: LThumb},
		"r_thumb": pressValue{k: RThumb},
		"run":     pressValue{k: Run},
		"walk":    pressValue{k: Walk},

		"press":   starlark.NewBuiltin("press", builtinPress),
		"seq":     starlark.NewBuiltin("seq", builtinSeq),
		"waitfor": builtinFrames("waitfor", WaitFor),
		"runfor":  builtinFrames("runfor", RunFor),
		"walkfor": builtinFrames("walkfor", WalkFor),
		"frames":  starlark.NewBuiltin("frames", builtinFrameCount),

		"joy":            starlark.NewBuiltin("joy", builtinJoy),
		"moveswap":       starlark.NewBuiltin("moveswap", builtinMoveswap),
		"roll_moveswap":  starlark.NewBuiltin("roll_moveswap", builtinRollMoveswap),
		"reset_moveswap": starlark.NewBuiltin("reset_moveswap", builtinResetMoveswap),
		"itemswap":       starlark.NewBuiltin("itemswap", builtinItemswap),
		"framedupe":      starlark.NewBuiltin("framedupe", builtinFramedupe),
		"joy_moveswap":   starlark.NewBuiltin("joy_moveswap", builtinJoyMoveswap),
		"poopwalk":       starlark.NewBuiltin("poopwalk", builtinPoopwalk),

		"save": starlark.NewBuiltin("save", builtinSave),
		"load": starlark.NewBuiltin("load", builtinLoad),
	}

	scriptArgs := make([]starlark.Value, len(r.Args))
	for i, a := range r.Args {
		scriptArgs[i] = starlark.String(a)
	}
	env["args"] = starlark.NewList(scriptArgs)

	// the builtins that touch the game
	env["exec"] = starlark.NewBuiltin("exec", r.builtinExec)
	env["record"] = starlark.NewBuiltin("record", r.builtinRecord)
	env["igt"] = starlark.NewBuiltin("igt", r.builtinIGT)
	env["frame_count"] = starlark.NewBuiltin("frame_count", r.builtinFrameCount)
	env["keystate"] = starlark.NewBuiltin("keystate", r.builtinKeystate)
	env["rehook"] = starlark.NewBuiltin("rehook", r.builtinRehook)
	env["force_quit"] = starlark.NewBuiltin("force_quit", r.builtinForceQuit)
	env["wait_limit"] = starlark.NewBuiltin("wait_limit", r.builtinWaitLimit)

	return env
}

// builtinPress builds a KeyPress from keyword arguments: frames plus any
// of the canonical axis names.
func builtinPress(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(args) > 0 {
		return nil, fmt.Errorf("%s: unexpected positional arguments", b.Name())
	}

	frames := 1
	var row controller.Row

	for _, kv := range kwargs {
		name := string(kv[0].(starlark.String))
		val, err := starlark.AsInt32(kv[1])
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %v", b.Name(), name, err)
		}

		if name == "frames" {
			frames = val
			continue
		}

		found := false
		for i, axis := range controller.AxisNames {
			if axis == name {
				row[i] = val
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%s: unknown axis %s", b.Name(), name)
		}
	}

	if err := controller.ValidateRow(row); err != nil {
		return nil, err
	}

	k := controller.FromRow(row)
	k.Frames = frames
	return pressValue{k: k}, nil
}

// builtinSeq concatenates its arguments into a sequence.
func builtinSeq(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%s: unexpected keyword arguments", b.Name())
	}

	items := make([]controller.Item, 0, len(args))
	for _, arg := range args {
		item, ok := asItem(arg)
		if !ok {
			return nil, fmt.Errorf("%s: not a keypress or keysequence: %s", b.Name(), arg.Type())
		}
		items = append(items, item)
	}
	return seqValue{s: controller.Seq(items...)}, nil
}

// builtinFrames adapts the frame-counted primitive builders.
func builtinFrames(name string, f func(int) controller.KeyPress) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var n int
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, "frames", &n); err != nil {
			return nil, err
		}
		return pressValue{k: f(n)}, nil
	})
}

func builtinFrameCount(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var v starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "value", &v); err != nil {
		return nil, err
	}
	s, ok := asSequence(v)
	if !ok {
		return nil, fmt.Errorf("%s: not a keypress or keysequence: %s", b.Name(), v.Type())
	}
	return starlark.MakeInt(s.FrameCount()), nil
}

func builtinJoy(_ *starlark.Thread, _ *starlark.Builtin, _ starlark.Tuple, _ []starlark.Tuple) (starlark.Value, error) {
	return seqValue{s: Joy()}, nil
}

func builtinMoveswap(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var swapUp, tooHeavy bool
	tooHeavy = true
	var delay int
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"swap_up?", &swapUp, "too_heavy?", &tooHeavy, "delay?", &delay); err != nil {
		return nil, err
	}
	return seqValue{s: Moveswap(swapUp, tooHeavy, delay)}, nil
}

func builtinRollMoveswap(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var swapUp, tooHeavy bool
	tooHeavy = true
	delay := 10
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"swap_up?", &swapUp, "too_heavy?", &tooHeavy, "delay?", &delay); err != nil {
		return nil, err
	}
	return seqValue{s: RollMoveswap(swapUp, tooHeavy, delay)}, nil
}

func builtinResetMoveswap(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var swappedUp bool
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "swapped_up?", &swappedUp); err != nil {
		return nil, err
	}
	return seqValue{s: ResetMoveswap(swappedUp)}, nil
}

func builtinItemswap(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var walkTime, toggle, use int
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"walk_time", &walkTime, "toggle", &toggle, "use", &use); err != nil {
		return nil, err
	}
	return seqValue{s: Itemswap(walkTime, toggle, use)}, nil
}

func builtinFramedupe(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var dupes int
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "dupes", &dupes); err != nil {
		return nil, err
	}
	s, err := Framedupe(dupes)
	if err != nil {
		return nil, err
	}
	return seqValue{s: s}, nil
}

func builtinJoyMoveswap(_ *starlark.Thread, _ *starlark.Builtin, _ starlark.Tuple, _ []starlark.Tuple) (starlark.Value, error) {
	return seqValue{s: JoyMoveswap()}, nil
}

func builtinPoopwalk(_ *starlark.Thread, _ *starlark.Builtin, _ starlark.Tuple, _ []starlark.Tuple) (starlark.Value, error) {
	return seqValue{s: Poopwalk()}, nil
}

func builtinSave(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var v starlark.Value
	var path string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "sequence", &v, "path", &path); err != nil {
		return nil, err
	}
	s, ok := asSequence(v)
	if !ok {
		return nil, fmt.Errorf("%s: not a keypress or keysequence: %s", b.Name(), v.Type())
	}
	if err := s.WriteFile(path); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func builtinLoad(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var path string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "path", &path); err != nil {
		return nil, err
	}
	s, err := controller.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return seqValue{s: s}, nil
}

// engine returns the attached engine or an error for scripts that need
// the game.
func (r *Runner) engine(name string) (*engine.TAS, error) {
	if r.eng == nil {
		return nil, curated.Errorf(ScriptError, fmt.Sprintf("%s: no game attached", name))
	}
	return r.eng, nil
}

// builtinExec plays a sequence into the game.
func (r *Runner) builtinExec(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	eng, err := r.engine(b.Name())
	if err != nil {
		return nil, err
	}

	var v starlark.Value
	var delay int
	igtWait := true
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"sequence", &v, "delay?", &delay, "igt_wait?", &igtWait); err != nil {
		return nil, err
	}

	s, ok := asSequence(v)
	if !ok {
		return nil, fmt.Errorf("%s: not a keypress or keysequence: %s", b.Name(), v.Type())
	}

	err = eng.Run(s, engine.RunOptions{
		StartDelay: time.Duration(delay) * time.Second,
		NoIGTWait:  !igtWait,
	})
	if err != nil {
		return nil, err
	}
	return starlark.None, nil
}

// builtinRecord captures live input and returns it as a sequence.
func (r *Runner) builtinRecord(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	eng, err := r.engine(b.Name())
	if err != nil {
		return nil, err
	}

	var seconds int
	buttonWait := true
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"time?", &seconds, "button_wait?", &buttonWait); err != nil {
		return nil, err
	}

	s, err := eng.Record(engine.RecordOptions{
		RecordTime:   time.Duration(seconds) * time.Second,
		NoButtonWait: !buttonWait,
	})
	if err != nil {
		return nil, err
	}
	return seqValue{s: s}, nil
}

func (r *Runner) builtinIGT(_ *starlark.Thread, b *starlark.Builtin, _ starlark.Tuple, _ []starlark.Tuple) (starlark.Value, error) {
	eng, err := r.engine(b.Name())
	if err != nil {
		return nil, err
	}
	igt, err := eng.IGT()
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt(igt), nil
}

func (r *Runner) builtinFrameCount(_ *starlark.Thread, b *starlark.Builtin, _ starlark.Tuple, _ []starlark.Tuple) (starlark.Value, error) {
	eng, err := r.engine(b.Name())
	if err != nil {
		return nil, err
	}
	fc, err := eng.FrameCount()
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt(fc), nil
}

func (r *Runner) builtinKeystate(_ *starlark.Thread, b *starlark.Builtin, _ starlark.Tuple, _ []starlark.Tuple) (starlark.Value, error) {
	eng, err := r.engine(b.Name())
	if err != nil {
		return nil, err
	}
	k, err := eng.KeyState()
	if err != nil {
		return nil, err
	}
	return pressValue{k: k}, nil
}

func (r *Runner) builtinRehook(_ *starlark.Thread, b *starlark.Builtin, _ starlark.Tuple, _ []starlark.Tuple) (starlark.Value, error) {
	eng, err := r.engine(b.Name())
	if err != nil {
		return nil, err
	}
	if err := eng.Rehook(); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func (r *Runner) builtinForceQuit(_ *starlark.Thread, b *starlark.Builtin, _ starlark.Tuple, _ []starlark.Tuple) (starlark.Value, error) {
	eng, err := r.engine(b.Name())
	if err != nil {
		return nil, err
	}
	return starlark.Bool(eng.ForceQuit()), nil
}

// builtinWaitLimit bounds every frame wait to a number of clock polls.
// zero removes the bound.
func (r *Runner) builtinWaitLimit(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	eng, err := r.engine(b.Name())
	if err != nil {
		return nil, err
	}

	var polls int
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "polls", &polls); err != nil {
		return nil, err
	}
	if polls < 0 {
		return nil, fmt.Errorf("%s: polls cannot be negative", b.Name())
	}

	eng.WaitLimit = polls
	return starlark.None, nil
}
