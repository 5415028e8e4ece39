package speech

import (
	"strings"
	"sync"
)

// knownGoodVoices are names commonly shipped by desktop and mobile
// platforms, in preference order. Used when no preferred name matches.
var knownGoodVoices = []string{
	"Google US English",
	"Google UK English Male",
	"Google UK English Female",
	"Microsoft David",
	"Microsoft Zira",
	"Samantha",
	"Daniel",
	"Alex",
	"english-us",
	"english",
}

// Resolver picks a narration voice from whatever the engine exposes.
// Selection never fails: when nothing matches it settles for the first
// voice in the wanted locale, and past that the engine default applies.
type Resolver struct {
	mu         sync.Mutex
	synth      Synthesizer
	langPrefix string
	preferred  string
	selected   *Voice
}

// NewResolver builds a resolver over synth, filtering candidates to
// voices whose language starts with langPrefix (for example "en"). An
// empty prefix admits every voice. The resolver re-runs selection
// whenever the engine reports a voice list change.
func NewResolver(synth Synthesizer, langPrefix string) *Resolver {
	r := &Resolver{synth: synth, langPrefix: strings.ToLower(strings.TrimSpace(langPrefix))}
	synth.SetVoicesChangedHandler(r.Refresh)
	r.Refresh()
	return r
}

// SetPreferredName records a caller-requested voice name and re-runs
// selection immediately.
func (r *Resolver) SetPreferredName(name string) {
	r.mu.Lock()
	r.preferred = strings.TrimSpace(name)
	r.mu.Unlock()
	r.Refresh()
}

// Selected returns the current pick, or nil when no usable voice
// exists yet.
func (r *Resolver) Selected() *Voice {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.selected == nil {
		return nil
	}
	v := *r.selected
	return &v
}

// Ready reports whether the engine has produced a non-empty voice list.
func (r *Resolver) Ready() bool {
	return len(r.synth.Voices()) > 0
}

// Candidates returns the locale-filtered voice list, preserving engine
// order.
func (r *Resolver) Candidates() []Voice {
	return r.filter(r.synth.Voices())
}

// Refresh re-runs selection against the engine's current voice list.
func (r *Resolver) Refresh() {
	candidates := r.filter(r.synth.Voices())

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(candidates) == 0 {
		r.selected = nil
		return
	}
	r.selected = pickVoice(candidates, r.preferred)
}

func (r *Resolver) filter(voices []Voice) []Voice {
	if r.langPrefix == "" {
		return voices
	}
	out := make([]Voice, 0, len(voices))
	for _, v := range voices {
		if strings.HasPrefix(strings.ToLower(v.Lang), r.langPrefix) {
			out = append(out, v)
		}
	}
	return out
}

// pickVoice applies the selection ladder: exact preferred name, then
// preferred name as a substring, then the known-good list, then the
// first candidate.
func pickVoice(candidates []Voice, preferred string) *Voice {
	if preferred != "" {
		for i := range candidates {
			if strings.EqualFold(candidates[i].Name, preferred) {
				return &candidates[i]
			}
		}
		lower := strings.ToLower(preferred)
		for i := range candidates {
			if strings.Contains(strings.ToLower(candidates[i].Name), lower) {
				return &candidates[i]
			}
		}
	}
	for _, want := range knownGoodVoices {
		lower := strings.ToLower(want)
		for i := range candidates {
			if strings.Contains(strings.ToLower(candidates[i].Name), lower) {
				return &candidates[i]
			}
		}
	}
	return &candidates[0]
}
