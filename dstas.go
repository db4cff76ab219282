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
	"fmt"
	"os"
	"time"

	"github.com/DavidCEllis/DarkSouls-TAS/controller"
	"github.com/DavidCEllis/DarkSouls-TAS/engine"
	"github.com/DavidCEllis/DarkSouls-TAS/hook"
	"github.com/DavidCEllis/DarkSouls-TAS/logger"
	"github.com/DavidCEllis/DarkSouls-TAS/modalflag"
	"github.com/DavidCEllis/DarkSouls-TAS/profiles"
	"github.com/DavidCEllis/DarkSouls-TAS/resources"
	"github.com/DavidCEllis/DarkSouls-TAS/scripts"
	"github.com/DavidCEllis/DarkSouls-TAS/timers"
	"github.com/DavidCEllis/DarkSouls-TAS/version"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "RECORD", "SCRIPT", "TIMER", "FQ", "VERSION")
	md.AdditionalHelp("frame-precise input playback and recording for Dark Souls (PTDE)")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "RECORD":
		err = record(md)

	case "SCRIPT":
		err = script(md)

	case "TIMER":
		err = timer(md)

	case "FQ":
		err = forceQuit(md)

	case "VERSION":
		v, rev, release := version.Version()
		fmt.Printf("%s %s\n", version.ApplicationName, v)
		if !release {
			fmt.Println(rev)
		}
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

// attachFlags adds the flags shared by every mode that attaches to the
// game. the returned function performs the attachment once flag parsing
// has finished.
func attachFlags(md *modalflag.Modes) func() (*engine.TAS, error) {
	profileName := md.AddString("profile", "ptde", "target game profile")
	profilesFile := md.AddString("profiles", "", "yaml file with additional game profiles")
	waitLimit := md.AddInt("waitlimit", 0, "maximum clock polls per frame wait (0 = no limit)")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	return func() (*engine.TAS, error) {
		if *log {
			logger.SetEcho(os.Stdout)
		} else {
			logger.SetEcho(nil)
		}

		path := *profilesFile
		if path == "" {
			// without an explicit profiles file, use the one in the
			// config directory when present
			if p, err := resources.JoinPath("profiles.yaml"); err == nil {
				if _, err := os.Stat(p); err == nil {
					path = p
				}
			}
		}

		list := profiles.Builtin()
		if path != "" {
			loaded, err := profiles.Load(path)
			if err != nil {
				return nil, err
			}
			list = append(list, loaded...)
		}

		profile, err := profiles.Lookup(list, *profileName)
		if err != nil {
			return nil, err
		}

		h, err := hook.New(profile)
		if err != nil {
			return nil, err
		}

		eng := engine.New(h)
		eng.WaitLimit = *waitLimit
		return eng, nil
	}
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	attach := attachFlags(md)
	delay := md.AddDuration("delay", 5*time.Second, "delay before playback starts")
	noIGTWait := md.AddBool("noigtwait", false, "do not align the first input to the game clock")
	quiet := md.AddBool("quiet", false, "do not display inputs during playback")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("sequence file required for %s mode", md)
	}

	seq, err := controller.ReadFile(md.GetArg(0))
	if err != nil {
		return err
	}

	eng, err := attach()
	if err != nil {
		return err
	}

	opts := engine.RunOptions{
		StartDelay: *delay,
		NoIGTWait:  *noIGTWait,
	}
	if !*quiet {
		opts.Display = func(k controller.KeyPress) {
			fmt.Println(k.String())
		}
	}

	return eng.Run(seq, opts)
}

func record(md *modalflag.Modes) error {
	md.NewMode()

	attach := attachFlags(md)
	delay := md.AddDuration("delay", 0, "delay before recording starts")
	recTime := md.AddDuration("time", 0, "stop recording after this much game time")
	noWait := md.AddBool("nowait", false, "do not wait for a button press before recording")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("output file required for %s mode", md)
	}

	eng, err := attach()
	if err != nil {
		return err
	}

	seq, err := eng.Record(engine.RecordOptions{
		StartDelay:   *delay,
		RecordTime:   *recTime,
		NoButtonWait: *noWait,
	})
	if err != nil {
		return err
	}

	fmt.Printf("recorded %d frames\n", seq.FrameCount())

	return seq.WriteFile(md.GetArg(0))
}

func script(md *modalflag.Modes) error {
	md.NewMode()

	attach := attachFlags(md)
	detached := md.AddBool("detached", false, "evaluate the script without attaching to the game")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) < 1 {
		return fmt.Errorf("script file required for %s mode", md)
	}

	var eng *engine.TAS
	if !*detached {
		eng, err = attach()
		if err != nil {
			return err
		}
	}

	// arguments after the script file are passed to the script
	runner := scripts.NewRunner(eng)
	runner.Args = md.RemainingArgs()[1:]

	return runner.RunFile(md.GetArg(0))
}

func timer(md *modalflag.Modes) error {
	md.NewMode()
	md.AddSubModes("COMPARE", "FRAMES")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch md.Mode() {
	case "COMPARE":
		return timerCompare(md)

	case "FRAMES":
		return timerFrames(md)
	}

	return nil
}

func timerCompare(md *modalflag.Modes) error {
	md.NewMode()

	attach := attachFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	eng, err := attach()
	if err != nil {
		return err
	}

	_, err = timers.New(eng).IGTvsRTA()
	return err
}

func timerFrames(md *modalflag.Modes) error {
	md.NewMode()

	attach := attachFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	eng, err := attach()
	if err != nil {
		return err
	}

	_, err = timers.New(eng).ForceQuitFrames()
	return err
}

func forceQuit(md *modalflag.Modes) error {
	md.NewMode()

	attach := attachFlags(md)
	delay := md.AddInt("delay", 0, "clock ticks to wait after igt resumes before quitting")
	now := md.AddBool("now", false, "quit immediately instead of waiting for an igt pause")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	eng, err := attach()
	if err != nil {
		return err
	}

	if *now {
		if !eng.ForceQuit() {
			return fmt.Errorf("force quit failed")
		}
		return nil
	}

	return timers.New(eng).TimedForceQuit(*delay)
}
