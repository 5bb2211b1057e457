package audio

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Player plays decoded clips on the system audio device. A single oto
// context is created lazily and reused for the life of the process; oto
// does not support re-initialization.
type Player struct {
	mu      sync.Mutex
	context *oto.Context

	// current holds the playback buffer. It must stay referenced until the
	// oto player is closed or playback degrades to static.
	current *playback
}

type playback struct {
	data   []byte
	player *oto.Player
	done   chan struct{}
	once   sync.Once
}

// NewPlayer creates a player. The audio device is not opened until the
// first Play call.
func NewPlayer() *Player {
	return &Player{}
}

func (p *Player) ensureContext() error {
	if p.context != nil {
		return nil
	}
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: Channels,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("open audio device: %w", err)
	}
	<-ready
	p.context = ctx
	return nil
}

// Play starts playback of a clip, stopping whatever was playing before.
// It returns a channel closed when playback finishes or is stopped.
func (p *Player) Play(clip *Clip) (<-chan struct{}, error) {
	if clip == nil || len(clip.Samples) == 0 {
		return nil, errors.New("empty clip")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureContext(); err != nil {
		return nil, err
	}
	p.stopLocked()

	data := clip.PCM16()
	pb := &playback{
		data: data,
		done: make(chan struct{}),
	}
	pb.player = p.context.NewPlayer(bytes.NewReader(pb.data))
	pb.player.Play()
	p.current = pb

	go p.watch(pb, clip.Duration())
	return pb.done, nil
}

// watch polls until the device drains, then releases the buffer.
func (p *Player) watch(pb *playback, duration time.Duration) {
	deadline := time.Now().Add(duration + time.Second)
	for pb.player.IsPlaying() && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == pb {
		p.current = nil
	}
	pb.finish()
}

// Stop halts the current playback, if any.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Player) stopLocked() {
	if p.current == nil {
		return
	}
	p.current.finish()
	p.current = nil
}

// IsPlaying reports whether a clip is currently playing.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current != nil && p.current.player.IsPlaying()
}

func (pb *playback) finish() {
	pb.once.Do(func() {
		pb.player.Pause()
		_ = pb.player.Close()
		pb.data = nil
		close(pb.done)
	})
}
