package game

import (
	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// speakerOutput sends a player's stream to the system audio device.
type speakerOutput struct{}

func (speakerOutput) Init(sr beep.SampleRate, bufferSize int) error {
	return speaker.Init(sr, bufferSize)
}

func (speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }

func (speakerOutput) Clear() { speaker.Clear() }

func (speakerOutput) Lock() { speaker.Lock() }

func (speakerOutput) Unlock() { speaker.Unlock() }
