// This file is part of GopherMSX.
//
// GopherMSX is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherMSX is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherMSX.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"

	"github.com/jetsetilly/gophermsx/digest"
	"github.com/jetsetilly/gophermsx/environment"
	"github.com/jetsetilly/gophermsx/govern"
	"github.com/jetsetilly/gophermsx/gui/otoaudio"
	"github.com/jetsetilly/gophermsx/gui/sdlaudio"
	"github.com/jetsetilly/gophermsx/hardware"
	"github.com/jetsetilly/gophermsx/hardware/cassette"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/cpu"
	"github.com/jetsetilly/gophermsx/hardware/preferences"
	"github.com/jetsetilly/gophermsx/hardware/sound"
	"github.com/jetsetilly/gophermsx/logger"
	"github.com/jetsetilly/gophermsx/modalflag"
	"github.com/jetsetilly/gophermsx/performance"
	"github.com/jetsetilly/gophermsx/performance/limiter"
	"github.com/jetsetilly/gophermsx/reflection"
	"github.com/jetsetilly/gophermsx/rewind"
	"github.com/jetsetilly/gophermsx/screenshot"
	"github.com/jetsetilly/gophermsx/statsview"
	"github.com/jetsetilly/gophermsx/wavwriter"
)

func main() {
	// #ctrlc sets the quit flag. the emulation checks the flag regularly
	var quit atomic.Bool
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	go func() {
		<-intChan
		fmt.Print("\r")
		quit.Store(true)
	}()

	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "PERFORMANCE", "DIGEST")

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
		err = run(md, &quit)
	case "PERFORMANCE":
		err = perform(md)
	case "DIGEST":
		err = dgst(md, &quit)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

// machineFlags adds the flags common to all modes that create a Machine. The
// returned function creates the Machine and should be called after parsing.
func machineFlags(md *modalflag.Modes) func() (*hardware.Machine, error) {
	spec := md.AddString("video", "", "video standard: NTSC, PAL (default from preferences)")
	lineSync := md.AddBool("linesync", false, "render video at the end of every line")
	rom := md.AddString("rom", "", "cartridge ROM file")
	pac := md.AddBool("pac", false, "insert a PAC cartridge")
	pacFile := md.AddString("pacfile", "", "file to persist PAC SRAM to")
	boot := md.AddString("boot", "", "boot ROM file")
	bootDelay := md.AddUint64("bootdelay", 0, "number of CPU cycles before the boot ROM is hidden")
	tones := md.AddInt("tones", 1, "number of tone generators")
	tape := md.AddString("tape", "", "tape file (WAV or MP3) to insert")
	tapeRec := md.AddString("taperec", "", "record the cassette-out signal to a WAV file (ejects any tape)")
	motorControl := md.AddBool("motorcontrol", true, "tape only rolls when the motor bit is set")
	script := md.AddString("script", "", "bus access script to run in place of a CPU")
	log := md.AddBool("log", false, "echo log to terminal")

	return func() (*hardware.Machine, error) {
		if *log {
			logger.SetEcho(logger.NewColorizer(os.Stdout), true)
		}

		prefs, err := preferences.NewPreferences()
		if err != nil {
			return nil, err
		}
		if *spec != "" {
			if err := prefs.VideoStandard.Set(strings.ToUpper(*spec)); err != nil {
				return nil, err
			}
		}
		if *lineSync {
			if err := prefs.LineSync.Set(true); err != nil {
				return nil, err
			}
		}

		env, err := environment.NewEnvironment(environment.MainEmulation, prefs)
		if err != nil {
			return nil, err
		}

		l := hardware.DefaultLayout()
		l.PAC = *pac
		l.PACFile = *pacFile
		l.BootDelay = clocks.DurationOf(*bootDelay, clocks.CPUFreq)
		l.Tones = *tones
		l.Tape = *tape

		if *rom != "" {
			l.ROM, err = os.ReadFile(*rom)
			if err != nil {
				return nil, err
			}
		}
		if *boot != "" {
			l.Boot, err = os.ReadFile(*boot)
			if err != nil {
				return nil, err
			}
		}
		if *script != "" {
			f, err := os.Open(*script)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			l.Engine, err = cpu.ParseScript(f)
			if err != nil {
				return nil, err
			}
		}

		m, err := hardware.NewMachine(env, l)
		if err != nil {
			return nil, err
		}

		if !*motorControl {
			if err := m.Cassette.SetMotorControl(false, m.Scheduler.CurrentTime()); err != nil {
				return nil, err
			}
		}
		if *tapeRec != "" {
			ww, err := wavwriter.New(*tapeRec, cassette.RecordFreq)
			if err != nil {
				return nil, err
			}
			if err := m.Cassette.Record(ww, m.Scheduler.CurrentTime()); err != nil {
				return nil, err
			}
		}

		return m, nil
	}
}

func run(md *modalflag.Modes, quit *atomic.Bool) (rerr error) {
	md.NewMode()

	newMachine := machineFlags(md)
	audio := md.AddString("audio", "SDL", "audio output: SDL, OTO, NONE")
	wav := md.AddString("wav", "", "record audio to WAV file")
	frames := md.AddInt("frames", 0, "number of frames to run for (0 to run until interrupted)")
	fpsCap := md.AddBool("fpscap", true, "limit emulation to the video refresh rate")
	shot := md.AddString("screenshot", "", "save the final frame as a PNG file")
	viz := md.AddString("memviz", "", "write a graphviz description of the final machine state")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%v)", statsview.Available()))
	rewindTo := md.AddInt("rewind", -1, "rewind to the specified frame before ending")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	if *stats {
		if !statsview.Available() {
			return fmt.Errorf("statsview not available in this build")
		}
		statsview.Launch(md.Output)
	}

	m, err := newMachine()
	if err != nil {
		return err
	}
	defer func() {
		if err := m.End(); err != nil && rerr == nil {
			rerr = err
		}
	}()

	rate := m.Mixer.SampleRate()
	bufferLength := m.Mixer.BufferLength()

	switch strings.ToUpper(*audio) {
	case "SDL":
		aud, err := sdlaudio.NewAudio(rate, bufferLength)
		if err != nil {
			return err
		}
		m.Mixer.AddAudioMixer(aud)
	case "OTO":
		aud, err := otoaudio.NewAudio(rate, bufferLength)
		if err != nil {
			return err
		}
		m.Mixer.AddAudioMixer(aud)
	case "NONE":
	default:
		return fmt.Errorf("unknown audio output (%s)", *audio)
	}

	if *wav != "" {
		aw, err := wavwriter.New(*wav, rate)
		if err != nil {
			return err
		}

		// file writes happen on a different goroutine to the emulation
		m.Mixer.AddAudioMixer(sound.NewHandoff(aw, 16))
	}

	rew, err := rewind.NewRewind(m, "")
	if err != nil {
		return err
	}
	rew.Reset()

	ref := reflection.NewReflector(m, 1)

	var lim *limiter.Limiter
	if *fpsCap {
		lim = limiter.NewLimiter(m.Video.Timing().RefreshRate())
		defer lim.Stop()
	}

	lastFrame := m.Video.FrameNum()
	targetFrame := lastFrame + *frames

	err = m.Run(func() (govern.State, error) {
		if quit.Load() {
			return govern.Ending, nil
		}

		fn := m.Video.FrameNum()
		if fn == lastFrame {
			return govern.Running, nil
		}
		lastFrame = fn

		rew.Check()
		if lim != nil {
			lim.Wait()
		}

		if *frames > 0 && fn >= targetFrame {
			return govern.Ending, nil
		}
		return govern.Running, nil
	})
	if err != nil {
		return err
	}

	if f := ref.Frames(); len(f) > 0 {
		fmt.Fprintln(md.Output, f[len(f)-1])
	}

	if *rewindTo >= 0 {
		fn, err := rew.GotoFrame(*rewindTo)
		if err != nil {
			return err
		}
		fmt.Fprintf(md.Output, "rewound to frame %d\n", fn)
	}

	if *shot != "" {
		frame, err := m.Video.CurrentFrame(m.Scheduler.CurrentTime())
		if err != nil {
			return err
		}
		if err := screenshot.Save(frame, 2, *shot); err != nil {
			return err
		}
	}

	if *viz != "" {
		f, err := os.Create(*viz)
		if err != nil {
			return err
		}
		defer f.Close()
		reflection.Memviz(f, m)
	}

	return nil
}

func perform(md *modalflag.Modes) (rerr error) {
	md.NewMode()

	newMachine := machineFlags(md)
	duration := md.AddString("duration", "5s", "run duration (note: there is a half second overhead)")
	profile := md.AddString("profile", "NONE", "run performance check with profiling: CPU, MEM, TRACE, ALL (comma sep)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	m, err := newMachine()
	if err != nil {
		return err
	}
	defer func() {
		if err := m.End(); err != nil && rerr == nil {
			rerr = err
		}
	}()

	return performance.Check(md.Output, prf, m, *duration)
}

func dgst(md *modalflag.Modes, quit *atomic.Bool) (rerr error) {
	md.NewMode()

	newMachine := machineFlags(md)
	frames := md.AddInt("frames", 60, "number of frames to run for")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	m, err := newMachine()
	if err != nil {
		return err
	}
	defer func() {
		if err := m.End(); err != nil && rerr == nil {
			rerr = err
		}
	}()

	v := digest.NewVideo(m.Video)
	a := digest.NewAudio(m.Mixer)

	err = m.RunForFrameCount(*frames, func(_ int) (govern.State, error) {
		if quit.Load() {
			return govern.Ending, nil
		}
		return govern.Running, nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(md.Output, "video: %s (%d frames)\n", v.Hash(), v.FrameNum()+1)
	fmt.Fprintf(md.Output, "audio: %s (%d samples)\n", a.Hash(), a.Samples())

	return nil
}
