package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/kfowler/Space-Invaders-Emulator/invaders"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	romDir    string
	headless  bool
	termMode  bool
	uncapped  bool
	speed     float64
	frames    int
	dip0      uint
	dip1      uint
	dip2      uint
	soundDir  string
	statePath string
	resume    bool
)

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func init() {
	flag.StringVar(&romDir, "roms", "roms", "Directory containing invaders.h/g/f/e")
	flag.BoolVar(&headless, "headless", false, "Run without any display")
	flag.BoolVar(&termMode, "term", false, "Render in the terminal instead of SDL")
	flag.BoolVar(&uncapped, "uncapped", false, "Run as fast as possible")
	flag.Float64Var(&speed, "speed", 1.0, "Speed multiplier (0 = uncapped)")
	flag.IntVar(&frames, "frames", 0, "Stop after N frames (0 = run until quit)")
	flag.UintVar(&dip0, "dip0", 0x0e, "DIP switch bank 0")
	flag.UintVar(&dip1, "dip1", 0x08, "DIP switch bank 1")
	flag.UintVar(&dip2, "dip2", 0x00, "DIP switch bank 2 (lives, bonus)")
	flag.StringVar(&soundDir, "sounds", "", "Directory of WAV sound samples (empty = silent)")
	flag.StringVar(&statePath, "state", "invaders.state", "Save state file for F5/F7")
	flag.BoolVar(&resume, "resume", false, "Restore the save state file on startup")
	flag.Parse()
}

// frameDuration returns how long one frame should take on the wall clock.
func frameDuration() time.Duration {
	if uncapped || speed <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / (60.0 * speed))
}

func loadMachine() (*invaders.Machine, error) {
	m, err := invaders.NewFromFiles(
		filepath.Join(romDir, "invaders.h"),
		filepath.Join(romDir, "invaders.g"),
		filepath.Join(romDir, "invaders.f"),
		filepath.Join(romDir, "invaders.e"),
	)
	if err != nil {
		return nil, err
	}
	m.SetDIPSwitches(uint8(dip0), uint8(dip1), uint8(dip2))
	return m, nil
}

func saveState(m *invaders.Machine) {
	if err := os.WriteFile(statePath, m.Snapshot(), 0644); err != nil {
		log.Printf("save state: %v", err)
		return
	}
	log.Printf("state saved to %s", statePath)
}

func loadState(m *invaders.Machine) {
	blob, err := os.ReadFile(statePath)
	if err != nil {
		log.Printf("load state: %v", err)
		return
	}
	if err := m.Restore(blob); err != nil {
		log.Printf("load state: %v", err)
		return
	}
	log.Printf("state restored from %s", statePath)
}

func runHeadless(m *invaders.Machine) {
	total := frames
	if total == 0 {
		total = 60 * 60 // one minute of game time
	}
	pace := frameDuration()
	for i := 0; i < total; i++ {
		start := time.Now()
		m.StepFrame()
		if pace > 0 {
			time.Sleep(pace - time.Since(start))
		}
	}
	fmt.Printf("frames=%d cycles=%d score=%d lives=%d gameover=%v\n",
		m.FrameCount(), m.CycleCount(), m.Score(), m.Lives(), m.GameOver())
}

func runSDL(m *invaders.Machine) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return err
	}
	defer sdl.Quit()

	screen, err := newScreen()
	if err != nil {
		return err
	}
	defer screen.destroy()

	if soundDir != "" {
		bank, err := newSoundBank(soundDir)
		if err != nil {
			log.Printf("sound disabled: %v", err)
		} else {
			defer bank.close()
			m.SetSoundPort(bank)
		}
	}

	pace := frameDuration()
	var input uint8
	running := true
	for running {
		start := time.Now()

		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				running = false
			case *sdl.KeyboardEvent:
				switch e.Type {
				case sdl.KEYDOWN:
					switch e.Keysym.Sym {
					case sdl.K_ESCAPE:
						running = false
					case sdl.K_F5:
						saveState(m)
					case sdl.K_F7:
						loadState(m)
					default:
						input |= buttonFor(e.Keysym.Sym)
					}
				case sdl.KEYUP:
					input &^= buttonFor(e.Keysym.Sym)
				}
			}
		}

		m.SetInput(input)
		m.StepFrame()
		screen.draw(m.VideoRAM())

		if frames > 0 && m.FrameCount() >= uint32(frames) {
			running = false
		}
		if pace > 0 {
			time.Sleep(pace - time.Since(start))
		}
	}
	return nil
}

func buttonFor(key sdl.Keycode) uint8 {
	switch key {
	case sdl.K_c:
		return invaders.ButtonCoin
	case sdl.K_1, sdl.K_RETURN:
		return invaders.ButtonP1Start
	case sdl.K_2:
		return invaders.ButtonP2Start
	case sdl.K_SPACE, sdl.K_j:
		return invaders.ButtonFire
	case sdl.K_a, sdl.K_LEFT:
		return invaders.ButtonLeft
	case sdl.K_d, sdl.K_RIGHT:
		return invaders.ButtonRight
	}
	return 0
}

func run() int {
	m, err := loadMachine()
	if err != nil {
		log.Println(err)
		return 1
	}
	if resume {
		loadState(m)
	}

	switch {
	case headless:
		runHeadless(m)
	case termMode:
		if err := runTerm(m); err != nil {
			log.Println(err)
			return 1
		}
	default:
		if err := runSDL(m); err != nil {
			log.Println(err)
			return 1
		}
	}
	return 0
}

func main() {
	os.Exit(run())
}
