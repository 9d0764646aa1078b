// This file is part of Sprocket.
//
// Sprocket is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Sprocket is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Sprocket.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/sprocketfe/sprocket/audio"
	"github.com/sprocketfe/sprocket/audio/drivers"
	"github.com/sprocketfe/sprocket/audio/nullaudio"
	"github.com/sprocketfe/sprocket/database"
	"github.com/sprocketfe/sprocket/engine"
	"github.com/sprocketfe/sprocket/engine/media"
	"github.com/sprocketfe/sprocket/engine/tone"
	"github.com/sprocketfe/sprocket/environment"
	"github.com/sprocketfe/sprocket/logger"
	"github.com/sprocketfe/sprocket/macro"
	"github.com/sprocketfe/sprocket/modalflag"
	"github.com/sprocketfe/sprocket/paths"
	"github.com/sprocketfe/sprocket/performance"
	"github.com/sprocketfe/sprocket/playmode"
	"github.com/sprocketfe/sprocket/prefs"
	"github.com/sprocketfe/sprocket/resampler"
	"github.com/sprocketfe/sprocket/statsview"
	"github.com/sprocketfe/sprocket/userinput"
	"github.com/sprocketfe/sprocket/userinput/terminal"
	"github.com/sprocketfe/sprocket/version"
)

// frame rate of media engines
const mediaFPS = 60.0

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// reset interrupt signal handling. used when the mode has its own
	// handler.
	//
	// takes no arguments.
	reqNoIntSig stateReq = "NOINTSIG"
)

type stateRequest struct {
	req  stateReq
	args any
}

// communication between the main() function and the launch() function.
type mainSync struct {
	state chan stateRequest
}

// #mainthread
func main() {
	sync := &mainSync{
		state: make(chan stateRequest),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	exitVal := 0

	// #ctrlc default handler. can be turned off with reqNoIntSig request
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	go launch(sync, os.Args[1:])

	done := false
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqNoIntSig:
				signal.Reset(os.Interrupt)
				if state.args != nil {
					panic(fmt.Sprintf("%s does not accept any arguments", reqNoIntSig))
				}
			}
		}
	}

	fmt.Print("\r")
	os.Exit(exitVal)
}

// launch is called from main() as a goroutine.
func launch(sync *mainSync, args []string) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(args)
	md.AddSubModes("RUN", "PERFORMANCE", "DRIVERS", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, sync)

	case "PERFORMANCE":
		err = perform(md)

	case "DRIVERS":
		err = listDrivers(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// flags shared by the RUN and PERFORMANCE modes.
type sessionFlags struct {
	log     *bool
	profile *string
	memviz  *string
	prefs   []string
}

func addSessionFlags(md *modalflag.Modes) *sessionFlags {
	sf := &sessionFlags{
		log:     md.AddBool("log", false, "echo log to stdout"),
		profile: md.AddString("profile", "none", "run with profiling: CPU, MEM, TRACE, ALL (comma separated)"),
		memviz:  md.AddString("memviz", "", "write a graph of the session to the named file on exit"),
	}
	md.AddPrefs("prefs", "preference override for this session: \"key::value; key::value\"", func(v string) error {
		sf.prefs = append(sf.prefs, v)
		return nil
	})
	return sf
}

// apply the flags that must be in effect before the session is created.
func (sf *sessionFlags) apply() {
	if *sf.log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if len(sf.prefs) > 0 {
		prefs.PushCommandLineStack(strings.Join(sf.prefs, ";"))
	}
}

// unused reports preference overrides that did not match any preference.
func (sf *sessionFlags) unused() {
	if len(sf.prefs) == 0 {
		return
	}
	if s := prefs.PopCommandLineStack(); s != "" {
		logger.Logf(logger.Allow, "sprocket", "unused preferences: %s", s)
	}
}

func (sf *sessionFlags) writeMemviz(sess *playmode.Session) error {
	if *sf.memviz == "" {
		return nil
	}
	f, err := os.Create(*sf.memviz)
	if err != nil {
		return err
	}
	memviz.Map(f, sess.Structure()...)
	return f.Close()
}

// createEngine returns the engine named by the remaining arguments. The tone
// engine is used if there are no arguments.
func createEngine(md *modalflag.Modes) (engine.Engine, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return tone.NewTone(), nil
	case 1:
		m, err := media.Load(md.GetArg(0), mediaFPS)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	return nil, fmt.Errorf("too many arguments for %s mode", md)
}

func prefsFile() (string, error) {
	return paths.ResourcePath("", prefs.DefaultPrefsFile)
}

func run(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	sf := addSessionFlags(md)
	record := md.AddString("record", "", "record user input to the named file")
	playback := md.AddString("playback", "", "playback user input from the named file")
	mcr := md.AddString("macro", "", "drive the input from the named macro script")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	nodb := md.AddBool("nodb", false, "run without save states and save memory")

	md.AdditionalHelp(userinput.NewKeyboard().Help())

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	sf.apply()

	profile, err := performance.ParseProfileString(*sf.profile)
	if err != nil {
		return err
	}

	if *stats {
		if !statsview.Available() {
			return fmt.Errorf("stats server is not available in this build")
		}
		statsview.Launch(os.Stdout)
	}

	eng, err := createEngine(md)
	if err != nil {
		return err
	}

	pth, err := prefsFile()
	if err != nil {
		return err
	}

	cfg := playmode.Config{
		Engine:       eng,
		PrefsFile:    pth,
		Record:       *record,
		Playback:     *playback,
		NoticeOutput: os.Stdout,
	}

	if !*nodb {
		dbPth, err := paths.ResourcePath("", database.DefaultDatabaseFile)
		if err != nil {
			return err
		}
		db, err := database.StartSession(dbPth)
		if err != nil {
			return err
		}
		defer db.EndSession()
		cfg.Database = db
	}

	var input userinput.Sources

	trm, err := terminal.NewTerminal(os.Stdin, userinput.NewKeyboard())
	if err != nil {
		logger.Log(logger.Allow, "sprocket", err)
		logger.Log(logger.Allow, "sprocket", "keyboard input is not available")
	} else {
		defer trm.Close()
		input = append(input, trm)
	}

	if *mcr != "" {
		m, err := macro.NewMacro(environment.NewEnvironment(environment.MainSession, nil), *mcr)
		if err != nil {
			return err
		}
		input = append(input, m)
	}

	cfg.Input = input

	sess, err := playmode.NewSession(cfg)
	if err != nil {
		return err
	}
	sf.unused()

	// the session has its own interrupt handler. the session is ended
	// cleanly when the context is cancelled
	sync.state <- stateRequest{req: reqNoIntSig}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = performance.RunProfiler(profile, "play", func() error {
		return sess.Run(ctx)
	})
	if err != nil {
		sess.End()
		return err
	}

	if err := sf.writeMemviz(sess); err != nil {
		logger.Log(logger.Allow, "sprocket", err)
	}

	return sess.End()
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	sf := addSessionFlags(md)
	duration := md.AddString("duration", "5s", "run duration (note: there is a 2s overhead)")
	driver := md.AddBool("driver", false, "use the audio driver from the preferences. otherwise audio is discarded")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	sf.apply()

	profile, err := performance.ParseProfileString(*sf.profile)
	if err != nil {
		return err
	}

	eng, err := createEngine(md)
	if err != nil {
		return err
	}

	pth, err := prefsFile()
	if err != nil {
		return err
	}

	cfg := playmode.Config{
		Engine:    eng,
		PrefsFile: pth,
	}

	if !*driver {
		cfg.Backend, err = nullaudio.NewAudio(audio.BackendConfig{OutputRate: 48000})
		if err != nil {
			return err
		}
	}

	sess, err := playmode.NewSession(cfg)
	if err != nil {
		return err
	}
	sf.unused()

	err = performance.Check(md.Output, profile, sess, eng.Timing().FPS, *duration)
	if err != nil {
		sess.End()
		return err
	}

	if err := sf.writeMemviz(sess); err != nil {
		logger.Log(logger.Allow, "sprocket", err)
	}

	return sess.End()
}

func listDrivers(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	fmt.Fprintf(md.Output, "audio drivers: %s\n", strings.Join(drivers.Registry().Names(), ", "))
	fmt.Fprintf(md.Output, "resamplers: %s\n", strings.Join(resampler.Names(), ", "))

	return nil
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()
	revision := md.AddBool("revision", false, "display revision information from version control")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	ver, rev, _ := version.Version()
	fmt.Fprintf(md.Output, "%s %s\n", version.ApplicationName, ver)
	if *revision {
		fmt.Fprintln(md.Output, rev)
	}

	return nil
}
