package speech

import "testing"

func TestNewSynthesizerBackends(t *testing.T) {
	missing := "definitely-not-a-speech-binary"

	t.Run("mock", func(t *testing.T) {
		s, backend, err := NewSynthesizer("mock", "")
		if err != nil {
			t.Fatalf("err = %v", err)
		}
		if backend != "mock" {
			t.Fatalf("backend = %q, want mock", backend)
		}
		if _, ok := s.(*MockSynth); !ok {
			t.Fatalf("engine = %T, want *MockSynth", s)
		}
	})

	t.Run("auto falls back to mock", func(t *testing.T) {
		s, backend, err := NewSynthesizer("auto", missing)
		if err != nil {
			t.Fatalf("err = %v", err)
		}
		if backend != "mock" {
			t.Fatalf("backend = %q, want mock", backend)
		}
		if _, ok := s.(*MockSynth); !ok {
			t.Fatalf("engine = %T, want *MockSynth", s)
		}
	})

	t.Run("espeak with missing binary errors", func(t *testing.T) {
		if _, _, err := NewSynthesizer("espeak", missing); err == nil {
			t.Fatalf("expected error for missing binary")
		}
	})

	t.Run("unknown backend rejected", func(t *testing.T) {
		if _, _, err := NewSynthesizer("polyphonic", ""); err == nil {
			t.Fatalf("expected error for unknown backend")
		}
	})
}
