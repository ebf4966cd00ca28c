package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"github.com/kfowler/Space-Invaders-Emulator/invaders"
)

var termRestore unix.Termios

func enterRawTerm() error {
	termios, err := unix.IoctlGetTermios(int(os.Stdin.Fd()), unix.TCGETS)
	if err != nil {
		return err
	}

	termRestore = *termios
	termstate := *termios

	termstate.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR
	termstate.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	termstate.Cflag &^= unix.CSIZE | unix.PARENB
	termstate.Cflag |= unix.CS8

	termstate.Cc[unix.VMIN] = 0
	termstate.Cc[unix.VTIME] = 0

	return unix.IoctlSetTermios(int(os.Stdin.Fd()), unix.TCSETS, &termstate)
}

func exitRawTerm() {
	unix.IoctlSetTermios(int(os.Stdin.Fd()), unix.TCSETS, &termRestore)
}

// keyHoldFrames is how long a keypress counts as held. Terminals only
// deliver key repeats, not releases, so each press is stretched enough
// for the game to register it.
const keyHoldFrames = 6

// runTerm renders the framebuffer as text, one character per 2x4 pixel
// block, and polls raw stdin for input. Quit with q.
func runTerm(m *invaders.Machine) error {
	if err := enterRawTerm(); err != nil {
		return err
	}
	defer exitRawTerm()

	fmt.Print("\x1b[2J\x1b[?25l") // clear, hide cursor
	defer fmt.Print("\x1b[?25h\x1b[2J\x1b[H")

	hold := map[uint8]int{}
	gray := make([]byte, invaders.ScreenWidth*invaders.ScreenHeight)
	pace := frameDuration()
	buf := make([]byte, 64)

	for {
		start := time.Now()

		n, _ := os.Stdin.Read(buf)
		for _, c := range buf[:n] {
			if c == 'q' || c == 0x03 {
				return nil
			}
			if b := buttonForByte(c); b != 0 {
				hold[b] = keyHoldFrames
			}
		}

		var input uint8
		for b, left := range hold {
			if left > 0 {
				input |= b
				hold[b] = left - 1
			}
		}
		m.SetInput(input)
		m.StepFrame()

		if m.FrameCount()%2 == 0 {
			m.Grayscale(gray)
			fmt.Print(renderText(gray))
		}
		if frames > 0 && m.FrameCount() >= uint32(frames) {
			return nil
		}
		if pace > 0 {
			time.Sleep(pace - time.Since(start))
		}
	}
}

func buttonForByte(c byte) uint8 {
	switch c {
	case 'c':
		return invaders.ButtonCoin
	case '1', '\r':
		return invaders.ButtonP1Start
	case '2':
		return invaders.ButtonP2Start
	case ' ', 'j':
		return invaders.ButtonFire
	case 'a':
		return invaders.ButtonLeft
	case 'd':
		return invaders.ButtonRight
	}
	return 0
}

var shadeChars = [...]rune{' ', '░', '▒', '█'}

// renderText downsamples the 224x256 display image to 112x64 characters,
// shading each cell by how many of its 8 pixels are lit. Grayscale hands
// back pixels in framebuffer order, a 256-pixel scanline per column of
// the display, so the rotation happens during sampling.
func renderText(gray []byte) string {
	var sb strings.Builder
	sb.Grow(112*64 + 64*8)
	sb.WriteString("\x1b[H")
	for row := 0; row < 64; row++ {
		for col := 0; col < 112; col++ {
			lit := 0
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					x := col*2 + dx
					y := row*4 + dy
					// The display row counts down the scanline.
					lit += int(gray[x*256+(255-y)]) & 1
				}
			}
			sb.WriteRune(shadeChars[(lit*3)/8])
		}
		sb.WriteString("\x1b[K\r\n")
	}
	return sb.String()
}
