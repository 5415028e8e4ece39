package speech

import (
	"fmt"
	"strings"
)

// Voice describes one platform voice.
type Voice struct {
	Name    string `json:"name"`
	Lang    string `json:"lang"`
	Default bool   `json:"default,omitempty"`
}

// Utterance is a single unit of playback handed to the engine.
type Utterance struct {
	Text   string
	Voice  *Voice // nil selects the engine default
	Rate   float64
	Pitch  float64
	Volume float64
}

// Synthesizer is the platform speech engine contract: enumerate voices,
// play one utterance at a time with an end-or-error completion, cancel
// everything, and pause/resume. Sequencing on top of it is the
// Narrator's job.
type Synthesizer interface {
	Voices() []Voice
	// SetVoicesChangedHandler registers a callback fired whenever the
	// voice list changes. Engines that load voices asynchronously fire
	// it once the list becomes available.
	SetVoicesChangedHandler(fn func())
	// Speak starts playback of u and invokes done exactly once when the
	// utterance ends, fails, or is cancelled.
	Speak(u Utterance, done func(error))
	Cancel()
	Pause()
	Resume()
	Paused() bool
	Speaking() bool
	Pending() bool
}

// NewSynthesizer selects an engine backend. "auto" prefers espeak when
// the binary is present and falls back to the mock engine.
func NewSynthesizer(backend, espeakBinary string) (Synthesizer, string, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "espeak":
		s, err := NewEspeakSynth(EspeakConfig{Binary: espeakBinary})
		if err != nil {
			return nil, "", err
		}
		return s, "espeak", nil
	case "mock":
		return NewMockSynth(), "mock", nil
	case "auto", "":
		if s, err := NewEspeakSynth(EspeakConfig{Binary: espeakBinary}); err == nil {
			return s, "espeak", nil
		}
		return NewMockSynth(), "mock", nil
	default:
		return nil, "", fmt.Errorf("invalid speech backend: %q (expected auto|espeak|mock)", backend)
	}
}
