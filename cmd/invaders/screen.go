package main

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/kfowler/Space-Invaders-Emulator/invaders"
)

const screenScale = 3

var (
	colorBlack = [4]byte{0x00, 0x00, 0x00, 0xff}
	colorWhite = [4]byte{0xff, 0xff, 0xff, 0xff}
	colorRed   = [4]byte{0xff, 0x00, 0x00, 0xff}
	colorGreen = [4]byte{0x00, 0xff, 0x00, 0xff}
)

// screen draws the rotated monitor image with the cabinet's color gel
// overlay. The framebuffer holds the picture rotated 90 degrees, 224
// scanlines of 256 pixels each, so drawing un-rotates it.
type screen struct {
	win *sdl.Window
	ren *sdl.Renderer
	tex *sdl.Texture
	buf []byte
}

func newScreen() (*screen, error) {
	w := int32(invaders.ScreenHeight)
	h := int32(invaders.ScreenWidth)

	win, err := sdl.CreateWindow("Space Invaders", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		w*screenScale, h*screenScale, sdl.WINDOW_ALLOW_HIGHDPI)
	if err != nil {
		return nil, err
	}
	ren, err := sdl.CreateRenderer(win, -1,
		sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		win.Destroy()
		return nil, err
	}
	ren.SetLogicalSize(w, h)
	tex, err := ren.CreateTexture(uint32(sdl.PIXELFORMAT_RGBA32),
		sdl.TEXTUREACCESS_STREAMING, w, h)
	if err != nil {
		ren.Destroy()
		win.Destroy()
		return nil, err
	}
	return &screen{
		win: win,
		ren: ren,
		tex: tex,
		buf: make([]byte, int(w)*int(h)*4),
	}, nil
}

func (s *screen) destroy() {
	s.tex.Destroy()
	s.ren.Destroy()
	s.win.Destroy()
}

func (s *screen) draw(vram []byte) {
	w := invaders.ScreenHeight // display width after rotation
	for i, b := range vram {
		col := i / 32
		rowBase := (i % 32) * 8
		for bit := 0; bit < 8; bit++ {
			on := (b>>uint(bit))&1 == 1
			// Rotate: scanline position becomes the display row,
			// counted from the bottom of the picture.
			x := col
			y := invaders.ScreenWidth - 1 - (rowBase + bit)
			c := overlayColor(on, x, y)
			off := (y*w + x) * 4
			copy(s.buf[off:off+4], c[:])
		}
	}
	s.tex.Update(nil, s.buf, w*4)
	s.ren.Copy(s.tex, nil, nil)
	s.ren.Present()
}

// overlayColor applies the cabinet gel regions by display position: red
// over the flying saucer band, green over the shields and player, white
// elsewhere. The bottom strip is green only across the player area, the
// score digits at the edges stay white.
func overlayColor(on bool, x, y int) [4]byte {
	if !on {
		return colorBlack
	}
	switch {
	case y >= 32 && y < 64:
		return colorRed
	case y >= 184 && y < 240:
		return colorGreen
	case y >= 240 && x >= 16 && x <= 134:
		return colorGreen
	default:
		return colorWhite
	}
}
