package speech

import (
	"log"
	"sync"
	"time"

	"github.com/courtsideapp/courtside/internal/observability"
)

// DefaultSettleDelay is the pause between queued chunks. Engines lose
// utterances fired back to back; a short settle keeps playback stable.
const DefaultSettleDelay = 8 * time.Millisecond

const (
	voiceWaitAttempts = 10
	voiceWaitInterval = 150 * time.Millisecond
)

// Ducker lowers and restores background audio around narration.
type Ducker interface {
	Duck()
	Release()
}

// SpeakOptions tune one narration request. Zero values fall back to the
// narrator's configured defaults.
type SpeakOptions struct {
	VoiceName     string
	Rate          float64
	Pitch         float64
	Volume        float64
	MaxChunkChars int
	// AllowAfterFinalize lets a request through after Finalize. Only the
	// end-of-match announcement sets it.
	AllowAfterFinalize bool
}

// NarratorConfig carries narrator defaults resolved from configuration.
type NarratorConfig struct {
	Enabled       bool
	Profile       string
	Lang          string
	PreferredName string
	Rate          float64
	Pitch         float64
	Volume        float64
	SettleDelay   time.Duration
	Ducker        Ducker
	Metrics       *observability.Metrics
}

type request struct {
	token  uint64
	chunks []string
	opts   SpeakOptions
	done   chan struct{}
}

// Narrator serializes narration over a Synthesizer. Requests queue up
// and play one chunk at a time; Stop discards everything at once by
// advancing a generation token that every queued and in-flight request
// re-checks before touching the engine.
type Narrator struct {
	synth    Synthesizer
	resolver *Resolver
	cfg      NarratorConfig

	mu            sync.Mutex
	queue         []*request
	token         uint64
	pendingChunks int
	finalized     bool
	enabled       bool

	wake   chan struct{}
	closed chan struct{}

	unlockOnce sync.Once
}

func NewNarrator(synth Synthesizer, cfg NarratorConfig) *Narrator {
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = DefaultSettleDelay
	}
	if cfg.Rate <= 0 {
		cfg.Rate = 1.0
	}
	if cfg.Pitch <= 0 {
		cfg.Pitch = 1.0
	}
	if cfg.Volume <= 0 {
		cfg.Volume = 1.0
	}
	n := &Narrator{
		synth:    synth,
		resolver: NewResolver(synth, cfg.Lang),
		cfg:      cfg,
		enabled:  cfg.Enabled,
		wake:     make(chan struct{}, 1),
		closed:   make(chan struct{}),
	}
	if cfg.PreferredName != "" {
		n.resolver.SetPreferredName(cfg.PreferredName)
	}
	go n.worker()
	return n
}

// Speak queues text for narration and returns a channel closed when the
// request finishes playing, is discarded by Stop, or is rejected. A
// rejected or empty request returns an already-closed channel.
func (n *Narrator) Speak(text string, opts SpeakOptions) <-chan struct{} {
	done := make(chan struct{})

	n.mu.Lock()
	if !n.enabled || (n.finalized && !opts.AllowAfterFinalize) {
		n.mu.Unlock()
		close(done)
		return done
	}
	token := n.token
	n.mu.Unlock()

	if opts.VoiceName != "" {
		n.resolver.SetPreferredName(opts.VoiceName)
	}

	budget := ChunkBudget(opts.MaxChunkChars, n.cfg.Profile)
	chunks := SplitChunks(NormalizeText(text), budget)
	if len(chunks) == 0 {
		close(done)
		return done
	}

	n.mu.Lock()
	if token != n.token {
		n.mu.Unlock()
		close(done)
		return done
	}
	n.pendingChunks += len(chunks)
	n.queue = append(n.queue, &request{token: token, chunks: chunks, opts: opts, done: done})
	n.mu.Unlock()

	select {
	case n.wake <- struct{}{}:
	default:
	}
	return done
}

// Stop discards the queue and the in-flight utterance. Playback halted
// mid-chunk never resumes; the engine is also un-paused in case a
// pause was latched.
func (n *Narrator) Stop() {
	n.mu.Lock()
	n.token++
	for _, req := range n.queue {
		close(req.done)
	}
	n.queue = nil
	n.pendingChunks = 0
	n.mu.Unlock()

	n.synth.Cancel()
	n.synth.Resume()
}

// IsSpeaking reports whether anything is playing or waiting to play.
func (n *Narrator) IsSpeaking() bool {
	n.mu.Lock()
	pending := n.pendingChunks > 0
	n.mu.Unlock()
	return pending || n.synth.Speaking() || n.synth.Pending()
}

// Finalize marks the session done: further requests are rejected unless
// they carry AllowAfterFinalize.
func (n *Narrator) Finalize() {
	n.mu.Lock()
	n.finalized = true
	n.mu.Unlock()
}

// ResetForNewMatch clears the finalized flag and silences any leftover
// narration so a fresh match starts clean.
func (n *Narrator) ResetForNewMatch() {
	n.mu.Lock()
	n.finalized = false
	n.mu.Unlock()
	n.Stop()
}

// SetEnabled toggles narration. Disabling silences anything queued.
func (n *Narrator) SetEnabled(on bool) {
	n.mu.Lock()
	n.enabled = on
	n.mu.Unlock()
	if !on {
		n.Stop()
	}
}

func (n *Narrator) Enabled() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.enabled
}

// SetPreferredVoiceName re-targets voice selection for subsequent
// requests.
func (n *Narrator) SetPreferredVoiceName(name string) {
	n.resolver.SetPreferredName(name)
}

// VoiceNames lists the usable voices in the configured locale.
func (n *Narrator) VoiceNames() []Voice {
	return n.resolver.Candidates()
}

// SelectedVoice returns the voice narration currently targets, or nil.
func (n *Narrator) SelectedVoice() *Voice {
	return n.resolver.Selected()
}

// NotifyUserGesture primes engines that refuse to play until a user
// interaction has occurred. The first call plays a silent warm-up
// utterance; later calls are no-ops.
func (n *Narrator) NotifyUserGesture() {
	n.unlockOnce.Do(func() {
		n.synth.Resume()
		n.synth.Speak(Utterance{Text: " ", Volume: 0}, func(error) {})
	})
}

// Close stops the worker. The narrator is unusable afterwards.
func (n *Narrator) Close() {
	n.Stop()
	select {
	case <-n.closed:
	default:
		close(n.closed)
	}
}

func (n *Narrator) worker() {
	for {
		select {
		case <-n.closed:
			return
		case <-n.wake:
		}
		for {
			req := n.dequeue()
			if req == nil {
				break
			}
			n.run(req)
		}
	}
}

func (n *Narrator) dequeue() *request {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.queue) == 0 {
		return nil
	}
	req := n.queue[0]
	n.queue = n.queue[1:]
	return req
}

func (n *Narrator) tokenValid(token uint64) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return token == n.token
}

func (n *Narrator) finishChunks(count int) {
	n.mu.Lock()
	n.pendingChunks -= count
	if n.pendingChunks < 0 {
		n.pendingChunks = 0
	}
	n.mu.Unlock()
}

func (n *Narrator) run(req *request) {
	defer close(req.done)

	if !n.tokenValid(req.token) {
		n.countChunks("abandoned", len(req.chunks))
		return
	}

	n.waitVoices(req.token)

	if n.cfg.Ducker != nil {
		n.cfg.Ducker.Duck()
		defer n.cfg.Ducker.Release()
	}
	if n.synth.Paused() {
		n.synth.Resume()
	}

	for i, chunk := range req.chunks {
		if !n.tokenValid(req.token) {
			n.countChunks("abandoned", len(req.chunks)-i)
			return
		}
		if err := n.speakChunk(req, chunk); err != nil {
			if err == errStale {
				n.countChunks("abandoned", len(req.chunks)-i)
				return
			}
			log.Printf("narrator: chunk playback failed: %v", err)
			n.countChunk("failed")
			n.countError(err)
			if n.synth.Paused() {
				n.synth.Resume()
			}
			n.finishChunks(1)
			continue
		}
		n.countChunk("spoken")
		n.finishChunks(1)
	}
}

var errStale = staleError{}

type staleError struct{}

func (staleError) Error() string { return "narration superseded" }

func (n *Narrator) speakChunk(req *request, chunk string) error {
	timer := time.NewTimer(n.cfg.SettleDelay)
	select {
	case <-timer.C:
	case <-n.closed:
		timer.Stop()
		return errStale
	}
	if !n.tokenValid(req.token) {
		return errStale
	}
	if n.synth.Paused() {
		n.synth.Resume()
	}

	u := Utterance{
		Text:   chunk,
		Voice:  n.resolver.Selected(),
		Rate:   pickValue(req.opts.Rate, n.cfg.Rate),
		Pitch:  pickValue(req.opts.Pitch, n.cfg.Pitch),
		Volume: pickValue(req.opts.Volume, n.cfg.Volume),
	}

	result := make(chan error, 1)
	n.synth.Speak(u, func(err error) {
		select {
		case result <- err:
		default:
		}
	})

	select {
	case err := <-result:
		if !n.tokenValid(req.token) {
			return errStale
		}
		return err
	case <-n.closed:
		return errStale
	}
}

func (n *Narrator) waitVoices(token uint64) {
	if n.resolver.Ready() {
		return
	}
	ticker := time.NewTicker(voiceWaitInterval)
	defer ticker.Stop()
	for i := 0; i < voiceWaitAttempts; i++ {
		select {
		case <-n.closed:
			return
		case <-ticker.C:
		}
		if !n.tokenValid(token) {
			return
		}
		n.resolver.Refresh()
		if n.resolver.Ready() {
			return
		}
	}
}

func (n *Narrator) countChunk(outcome string) {
	if n.cfg.Metrics != nil {
		n.cfg.Metrics.NarrationChunks.WithLabelValues(outcome).Inc()
	}
}

func (n *Narrator) countChunks(outcome string, count int) {
	if n.cfg.Metrics != nil && count > 0 {
		n.cfg.Metrics.NarrationChunks.WithLabelValues(outcome).Add(float64(count))
	}
	if count > 0 {
		n.finishChunks(count)
	}
}

func (n *Narrator) countError(err error) {
	if n.cfg.Metrics == nil {
		return
	}
	code := "playback"
	if err == ErrCancelled {
		code = "cancelled"
	}
	n.cfg.Metrics.NarrationErrors.WithLabelValues(code).Inc()
}

func pickValue(override, base float64) float64 {
	if override > 0 {
		return override
	}
	return base
}
