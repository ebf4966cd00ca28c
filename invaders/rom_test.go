package invaders

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// loadGameROM loads the real ROM set from testdata. The ROMs are not
// distributable, so these tests skip when the files are absent.
func loadGameROM(t *testing.T) *Machine {
	t.Helper()
	paths := make([]string, 4)
	for i, name := range []string{"invaders.h", "invaders.g", "invaders.f", "invaders.e"} {
		path := filepath.Join("testdata", name)
		if _, err := os.Stat(path); err != nil {
			t.Skipf("ROM set not present: %v", err)
		}
		paths[i] = path
	}
	m, err := NewFromFiles(paths[0], paths[1], paths[2], paths[3])
	if err != nil {
		t.Fatalf("NewFromFiles: %v", err)
	}
	return m
}

func TestGameBoot(t *testing.T) {
	m := loadGameROM(t)

	// let the attract mode come up
	for i := 0; i < 240; i++ {
		m.StepFrame()
	}
	if m.Halted() {
		t.Fatal("CPU halted during attract mode")
	}

	// insert a coin, then press player 1 start
	m.SetInput(ButtonCoin)
	for i := 0; i < 10; i++ {
		m.StepFrame()
	}
	m.SetInput(0)
	for i := 0; i < 10; i++ {
		m.StepFrame()
	}
	m.SetInput(ButtonP1Start)
	for i := 0; i < 10; i++ {
		m.StepFrame()
	}
	m.SetInput(0)
	for i := 0; i < 180; i++ {
		m.StepFrame()
	}

	// default DIP configuration starts a game with 3 lives
	if got := m.Lives(); got != 3 {
		t.Errorf("Lives = %d, want 3 under default DIP settings", got)
	}
	if got := m.Score(); got != 0 {
		t.Errorf("Score = %d, want 0 at game start", got)
	}
	if m.GameOver() {
		t.Error("game must be running after start")
	}
}

func TestGameDeterminism(t *testing.T) {
	a := loadGameROM(t)
	b := loadGameROM(t)
	script := func(m *Machine) {
		for i := 0; i < 600; i++ {
			switch {
			case i == 120:
				m.SetInput(ButtonCoin)
			case i == 130:
				m.SetInput(0)
			case i == 140:
				m.SetInput(ButtonP1Start)
			case i == 150:
				m.SetInput(0)
			case i > 200 && i%7 == 0:
				m.SetInput(ButtonFire | ButtonRight)
			case i > 200:
				m.SetInput(0)
			}
			m.StepFrame()
		}
	}
	script(a)
	script(b)
	if !bytes.Equal(a.Snapshot(), b.Snapshot()) {
		t.Error("two identical runs diverged")
	}
}
