package speech

import "testing"

func voicesFixture() []Voice {
	return []Voice{
		{Name: "Monica", Lang: "es-ES"},
		{Name: "Narrator Lite", Lang: "en-AU"},
		{Name: "Google US English", Lang: "en-US"},
		{Name: "Court Voice Pro", Lang: "en-GB"},
	}
}

func TestResolverExactPreferredName(t *testing.T) {
	synth := NewMockSynth()
	synth.SetVoices(voicesFixture())
	r := NewResolver(synth, "en")
	r.SetPreferredName("Court Voice Pro")
	if v := r.Selected(); v == nil || v.Name != "Court Voice Pro" {
		t.Fatalf("expected exact match, got %+v", v)
	}
}

func TestResolverExactNameIgnoresCase(t *testing.T) {
	synth := NewMockSynth()
	synth.SetVoices([]Voice{
		{Name: "Samantha Enhanced", Lang: "en-US"},
		{Name: "samantha", Lang: "en-US"},
	})
	r := NewResolver(synth, "en")
	r.SetPreferredName("Samantha")
	// a case-insensitive exact name beats any substring hit
	if v := r.Selected(); v == nil || v.Name != "samantha" {
		t.Fatalf("expected case-insensitive exact match, got %+v", v)
	}
}

func TestResolverPreferredSubstring(t *testing.T) {
	synth := NewMockSynth()
	synth.SetVoices(voicesFixture())
	r := NewResolver(synth, "en")
	r.SetPreferredName("court voice")
	if v := r.Selected(); v == nil || v.Name != "Court Voice Pro" {
		t.Fatalf("expected substring match, got %+v", v)
	}
}

func TestResolverKnownGoodFallback(t *testing.T) {
	synth := NewMockSynth()
	synth.SetVoices(voicesFixture())
	r := NewResolver(synth, "en")
	r.SetPreferredName("No Such Voice")
	if v := r.Selected(); v == nil || v.Name != "Google US English" {
		t.Fatalf("expected known-good fallback, got %+v", v)
	}
}

func TestResolverFirstCandidateFallback(t *testing.T) {
	synth := NewMockSynth()
	synth.SetVoices([]Voice{
		{Name: "Obscure A", Lang: "en-ZA"},
		{Name: "Obscure B", Lang: "en-ZA"},
	})
	r := NewResolver(synth, "en")
	if v := r.Selected(); v == nil || v.Name != "Obscure A" {
		t.Fatalf("expected first candidate, got %+v", v)
	}
}

func TestResolverLocaleFilter(t *testing.T) {
	synth := NewMockSynth()
	synth.SetVoices(voicesFixture())
	r := NewResolver(synth, "en")

	for _, v := range r.Candidates() {
		if v.Lang[:2] != "en" {
			t.Fatalf("candidate outside locale: %+v", v)
		}
	}
	r.SetPreferredName("Monica")
	if v := r.Selected(); v != nil && v.Name == "Monica" {
		t.Fatalf("selected a voice outside the locale filter")
	}
}

func TestResolverNoVoices(t *testing.T) {
	synth := NewMockSynth()
	synth.SetVoices(nil)
	r := NewResolver(synth, "en")
	if v := r.Selected(); v != nil {
		t.Fatalf("expected nil selection with no voices, got %+v", v)
	}
	if r.Ready() {
		t.Fatalf("resolver reported ready with no voices")
	}
}

func TestResolverRefreshesOnVoicesChanged(t *testing.T) {
	synth := NewMockSynth()
	synth.SetVoices(nil)
	r := NewResolver(synth, "en")
	r.SetPreferredName("Court Voice Pro")
	if r.Selected() != nil {
		t.Fatalf("expected no selection before voices load")
	}

	synth.SetVoices(voicesFixture())
	if v := r.Selected(); v == nil || v.Name != "Court Voice Pro" {
		t.Fatalf("expected selection after voices changed, got %+v", v)
	}
}
