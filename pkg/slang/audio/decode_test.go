package audio

import (
	"encoding/base64"
	"testing"
	"time"
)

func TestDecodeEmptyPayloadIsSilence(t *testing.T) {
	clip := Decode("")
	if got, want := len(clip.Samples), SampleRate; got != want {
		t.Fatalf("expected %d samples of silence, got %d", want, got)
	}
	for i, s := range clip.Samples {
		if s != 0 {
			t.Fatalf("sample %d is %f, want 0", i, s)
		}
	}
	if got, want := clip.Duration(), time.Second; got != want {
		t.Errorf("Duration() = %v, want %v", got, want)
	}
}

func TestDecodeGarbageBase64IsSilence(t *testing.T) {
	clip := Decode("not!!valid@@base64")
	if got, want := len(clip.Samples), SampleRate; got != want {
		t.Fatalf("expected silence fallback, got %d samples", got)
	}
}

func TestDecodeOddLengthIsSilence(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte{0x01, 0x02, 0x03})
	clip := Decode(payload)
	if got, want := len(clip.Samples), SampleRate; got != want {
		t.Fatalf("expected silence fallback for odd-length PCM, got %d samples", got)
	}
}

func TestDecodeNormalizesSamples(t *testing.T) {
	// Four samples: 0, max positive, min negative, -1.
	pcm := []byte{
		0x00, 0x00,
		0xFF, 0x7F,
		0x00, 0x80,
		0xFF, 0xFF,
	}
	clip := Decode(base64.StdEncoding.EncodeToString(pcm))
	want := []float32{0, 32767.0 / 32768.0, -1, -1.0 / 32768.0}
	if len(clip.Samples) != len(want) {
		t.Fatalf("got %d samples, want %d", len(clip.Samples), len(want))
	}
	for i := range want {
		if clip.Samples[i] != want[i] {
			t.Errorf("sample %d = %f, want %f", i, clip.Samples[i], want[i])
		}
	}
	if clip.SampleRate != SampleRate || clip.Channels != Channels {
		t.Errorf("format = %d/%d, want %d/%d", clip.SampleRate, clip.Channels, SampleRate, Channels)
	}
}

func TestPCM16RoundTrip(t *testing.T) {
	pcm := []byte{0x34, 0x12, 0xCC, 0xED, 0x00, 0x80, 0xFF, 0x7F}
	clip := Decode(base64.StdEncoding.EncodeToString(pcm))
	got := clip.PCM16()
	if len(got) != len(pcm) {
		t.Fatalf("PCM16 length = %d, want %d", len(got), len(pcm))
	}
	for i := range pcm {
		if got[i] != pcm[i] {
			t.Errorf("byte %d = %#x, want %#x", i, got[i], pcm[i])
		}
	}
}

func TestDurationHalfSecond(t *testing.T) {
	clip := &Clip{
		Samples:    make([]float32, SampleRate/2),
		SampleRate: SampleRate,
		Channels:   1,
	}
	if got, want := clip.Duration(), 500*time.Millisecond; got != want {
		t.Errorf("Duration() = %v, want %v", got, want)
	}
}
