package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/kfowler/Space-Invaders-Emulator/invaders"
)

// sampleFiles maps each sound latch bit to the WAV file the arcade
// cabinet played for it. Missing files are skipped, the rest still play.
var sampleFiles = map[string]string{
	"ufo":        "ufo.wav",
	"shot":       "shot.wav",
	"playerDie":  "player_die.wav",
	"invaderDie": "invader_die.wav",
	"fleet1":     "fleet1.wav",
	"fleet2":     "fleet2.wav",
	"fleet3":     "fleet3.wav",
	"fleet4":     "fleet4.wav",
	"ufoHit":     "ufo_hit.wav",
}

// soundBank plays one-shot samples on the rising edge of each sound
// latch bit, mirroring the discrete analog board the latch drove.
type soundBank struct {
	dev     sdl.AudioDeviceID
	samples map[string][]byte
	prev3   uint8
	prev5   uint8
}

func newSoundBank(dir string) (*soundBank, error) {
	bank := &soundBank{samples: make(map[string][]byte)}
	rate := 0
	for name, file := range sampleFiles {
		data, sampleRate, err := loadSample(filepath.Join(dir, file))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		if rate == 0 {
			rate = sampleRate
		} else if rate != sampleRate {
			return nil, fmt.Errorf("%s: sample rate %d differs from %d", file, sampleRate, rate)
		}
		bank.samples[name] = data
	}
	if len(bank.samples) == 0 {
		return nil, fmt.Errorf("no samples found in %s", dir)
	}

	want := sdl.AudioSpec{
		Freq:     int32(rate),
		Format:   sdl.AUDIO_S16LSB,
		Channels: 1,
		Samples:  2048,
	}
	dev, err := sdl.OpenAudioDevice("", false, &want, nil, 0)
	if err != nil {
		return nil, err
	}
	sdl.PauseAudioDevice(dev, false)
	bank.dev = dev
	return bank, nil
}

// loadSample decodes a WAV file to mono signed 16-bit little endian PCM.
func loadSample(path string) ([]byte, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	return pcmBytes(buf), buf.Format.SampleRate, nil
}

func pcmBytes(buf *audio.IntBuffer) []byte {
	shift := uint(0)
	if buf.SourceBitDepth > 0 && buf.SourceBitDepth < 16 {
		shift = uint(16 - buf.SourceBitDepth)
	}
	step := buf.Format.NumChannels
	if step < 1 {
		step = 1
	}
	out := make([]byte, 0, 2*(len(buf.Data)/step))
	for i := 0; i < len(buf.Data); i += step {
		s := int16(buf.Data[i] << shift)
		out = append(out, byte(s), byte(s>>8))
	}
	return out
}

func (b *soundBank) close() {
	sdl.CloseAudioDevice(b.dev)
}

func (b *soundBank) play(name string) {
	if data, ok := b.samples[name]; ok {
		sdl.QueueAudio(b.dev, data)
	}
}

// SoundOut implements invaders.SoundPort. Samples trigger on the 0 to 1
// transition of each bit so a held latch does not retrigger.
func (b *soundBank) SoundOut(port uint8, val uint8) {
	switch port {
	case 3:
		rising := val &^ b.prev3
		b.prev3 = val
		if rising&invaders.SoundUFO != 0 {
			b.play("ufo")
		}
		if rising&invaders.SoundShot != 0 {
			b.play("shot")
		}
		if rising&invaders.SoundPlayerDie != 0 {
			b.play("playerDie")
		}
		if rising&invaders.SoundInvaderDie != 0 {
			b.play("invaderDie")
		}
	case 5:
		rising := val &^ b.prev5
		b.prev5 = val
		if rising&invaders.SoundFleet1 != 0 {
			b.play("fleet1")
		}
		if rising&invaders.SoundFleet2 != 0 {
			b.play("fleet2")
		}
		if rising&invaders.SoundFleet3 != 0 {
			b.play("fleet3")
		}
		if rising&invaders.SoundFleet4 != 0 {
			b.play("fleet4")
		}
		if rising&invaders.SoundUFOHit != 0 {
			b.play("ufoHit")
		}
	}
}
