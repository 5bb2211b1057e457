// Package audio decodes synthesized speech payloads and plays them back.
package audio

import (
	"encoding/base64"
	"time"

	"github.com/charmbracelet/log"
)

// Synthesized speech format: 24kHz mono signed 16-bit little-endian PCM.
const (
	SampleRate = 24000
	Channels   = 1
	BitDepth   = 16
)

const bytesPerSample = BitDepth / 8 * Channels

// Clip is a decoded, playable audio buffer. Samples are normalized to the
// range [-1.0, 1.0).
type Clip struct {
	Samples    []float32
	SampleRate int
	Channels   int
}

// Decode converts a base64 PCM payload into a playable clip. It never
// fails: empty input, unparseable base64, a zero-length result, or a
// buffer that cannot align to 16-bit samples all decode to one second of
// silence, so playback call sites need no fallback of their own.
func Decode(payload string) *Clip {
	if payload == "" {
		return Silence()
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		log.Debug("audio payload is not valid base64, substituting silence", "err", err)
		return Silence()
	}
	if len(raw) == 0 || len(raw)%bytesPerSample != 0 {
		log.Debug("audio payload is not aligned to 16-bit samples, substituting silence", "len", len(raw))
		return Silence()
	}

	samples := make([]float32, len(raw)/bytesPerSample)
	for i := range samples {
		// little-endian signed 16-bit
		s := int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8)
		samples[i] = float32(s) / 32768.0
	}
	return &Clip{Samples: samples, SampleRate: SampleRate, Channels: Channels}
}

// Silence returns a one-second silent clip at the synthesis sample rate.
func Silence() *Clip {
	return &Clip{
		Samples:    make([]float32, SampleRate*Channels),
		SampleRate: SampleRate,
		Channels:   Channels,
	}
}

// Duration returns the clip's playback duration.
func (c *Clip) Duration() time.Duration {
	if c.SampleRate == 0 || c.Channels == 0 {
		return 0
	}
	frames := len(c.Samples) / c.Channels
	return time.Duration(frames) * time.Second / time.Duration(c.SampleRate)
}

// PCM16 re-encodes the clip as signed 16-bit little-endian PCM bytes for
// the playback device.
func (c *Clip) PCM16() []byte {
	out := make([]byte, len(c.Samples)*2)
	for i, f := range c.Samples {
		v := f * 32768.0
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		s := int16(v)
		out[2*i] = byte(uint16(s))
		out[2*i+1] = byte(uint16(s) >> 8)
	}
	return out
}
