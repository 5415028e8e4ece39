package speech

import (
	"errors"
	"sync"
	"time"
)

// ErrCancelled is the completion error reported for utterances cut off
// by Cancel.
var ErrCancelled = errors.New("utterance cancelled")

// MockSynth is an in-memory engine used by tests and the "mock"
// backend. It records every utterance it starts, in order. By default
// each utterance completes on its own after a tiny delay; with manual
// completion enabled the caller releases utterances one at a time.
type MockSynth struct {
	mu        sync.Mutex
	voices    []Voice
	onVoices  func()
	started   []Utterance
	inflight  []func(error)
	manual    bool
	paused    bool
	cancels   int
	failNext  error
	autoDelay time.Duration
}

func NewMockSynth() *MockSynth {
	return &MockSynth{
		voices: []Voice{
			{Name: "Mock English", Lang: "en-US", Default: true},
			{Name: "Mock Spanish", Lang: "es-ES"},
		},
		autoDelay: time.Millisecond,
	}
}

// SetManualCompletion makes Speak park utterances until CompleteNext is
// called, so tests control exactly when playback finishes.
func (m *MockSynth) SetManualCompletion(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.manual = on
}

// SetVoices replaces the voice list and fires the voices-changed
// handler if one is registered.
func (m *MockSynth) SetVoices(voices []Voice) {
	m.mu.Lock()
	m.voices = append([]Voice(nil), voices...)
	fn := m.onVoices
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// FailNext makes the next utterance complete with err instead of nil.
func (m *MockSynth) FailNext(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = err
}

func (m *MockSynth) Voices() []Voice {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Voice(nil), m.voices...)
}

func (m *MockSynth) SetVoicesChangedHandler(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onVoices = fn
}

func (m *MockSynth) Speak(u Utterance, done func(error)) {
	m.mu.Lock()
	m.started = append(m.started, u)
	err := m.failNext
	m.failNext = nil
	if m.manual {
		m.inflight = append(m.inflight, func(e error) {
			if err != nil {
				e = err
			}
			done(e)
		})
		m.mu.Unlock()
		return
	}
	delay := m.autoDelay
	m.mu.Unlock()
	go func() {
		time.Sleep(delay)
		done(err)
	}()
}

// CompleteNext finishes the oldest in-flight utterance. It reports
// whether one was pending. Only meaningful with manual completion.
func (m *MockSynth) CompleteNext() bool {
	m.mu.Lock()
	if len(m.inflight) == 0 {
		m.mu.Unlock()
		return false
	}
	fn := m.inflight[0]
	m.inflight = m.inflight[1:]
	m.mu.Unlock()
	fn(nil)
	return true
}

func (m *MockSynth) Cancel() {
	m.mu.Lock()
	m.cancels++
	pending := m.inflight
	m.inflight = nil
	m.mu.Unlock()
	for _, fn := range pending {
		fn(ErrCancelled)
	}
}

func (m *MockSynth) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = true
}

func (m *MockSynth) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = false
}

func (m *MockSynth) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

func (m *MockSynth) Speaking() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.inflight) > 0
}

func (m *MockSynth) Pending() bool { return false }

// Started returns a copy of every utterance handed to the engine so
// far, in submission order.
func (m *MockSynth) Started() []Utterance {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Utterance(nil), m.started...)
}

// StartedTexts returns just the texts of started utterances.
func (m *MockSynth) StartedTexts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.started))
	for _, u := range m.started {
		out = append(out, u.Text)
	}
	return out
}

// Cancels reports how many times Cancel was called.
func (m *MockSynth) Cancels() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancels
}
