package speech

import (
	"bufio"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"syscall"
)

// EspeakConfig configures the espeak-ng backed engine.
type EspeakConfig struct {
	// Binary is the espeak executable name or path. Empty means
	// "espeak-ng".
	Binary string
}

// EspeakSynth plays utterances through the espeak CLI, one process per
// utterance. Pause and resume map to stopping and continuing the
// current process.
type EspeakSynth struct {
	path string

	mu       sync.Mutex
	voices   []Voice
	onVoices func()
	current  *exec.Cmd
	paused   bool
}

func NewEspeakSynth(cfg EspeakConfig) (*EspeakSynth, error) {
	binary := cfg.Binary
	if binary == "" {
		binary = "espeak-ng"
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("espeak binary %q not found: %w", binary, err)
	}
	s := &EspeakSynth{path: path}
	s.loadVoices()
	return s, nil
}

func (s *EspeakSynth) loadVoices() {
	out, err := exec.Command(s.path, "--voices").Output()
	if err != nil {
		return
	}
	var voices []Voice
	scanner := bufio.NewScanner(strings.NewReader(string(out)))
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			// column header
			first = false
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		voices = append(voices, Voice{Name: fields[3], Lang: fields[1]})
	}
	s.mu.Lock()
	s.voices = voices
	fn := s.onVoices
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (s *EspeakSynth) Voices() []Voice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Voice(nil), s.voices...)
}

func (s *EspeakSynth) SetVoicesChangedHandler(fn func()) {
	s.mu.Lock()
	s.onVoices = fn
	ready := len(s.voices) > 0
	s.mu.Unlock()
	if ready && fn != nil {
		fn()
	}
}

func (s *EspeakSynth) Speak(u Utterance, done func(error)) {
	args := buildEspeakArgs(u)
	cmd := exec.Command(s.path, args...)

	s.mu.Lock()
	if err := cmd.Start(); err != nil {
		s.mu.Unlock()
		done(fmt.Errorf("start espeak: %w", err))
		return
	}
	s.current = cmd
	s.paused = false
	s.mu.Unlock()

	go func() {
		err := cmd.Wait()

		s.mu.Lock()
		cancelled := s.current != cmd
		if s.current == cmd {
			s.current = nil
			s.paused = false
		}
		s.mu.Unlock()

		if cancelled || (err != nil && strings.Contains(err.Error(), "killed")) {
			done(ErrCancelled)
			return
		}
		done(err)
	}()
}

func buildEspeakArgs(u Utterance) []string {
	rate := u.Rate
	if rate <= 0 {
		rate = 1.0
	}
	pitch := u.Pitch
	if pitch <= 0 {
		pitch = 1.0
	}
	// espeak: -s words per minute, -p pitch 0..99, -a amplitude 0..200
	args := []string{
		"-s", fmt.Sprintf("%d", int(rate*175)),
		"-p", fmt.Sprintf("%d", clampInt(int(pitch*50), 0, 99)),
		"-a", fmt.Sprintf("%d", clampInt(int(u.Volume*100), 0, 200)),
	}
	if u.Voice != nil && u.Voice.Name != "" {
		args = append(args, "-v", u.Voice.Name)
	}
	return append(args, "--", u.Text)
}

func (s *EspeakSynth) Cancel() {
	s.mu.Lock()
	cmd := s.current
	s.current = nil
	s.paused = false
	s.mu.Unlock()
	if cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
}

func (s *EspeakSynth) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.Process != nil {
		if s.current.Process.Signal(syscall.SIGSTOP) == nil {
			s.paused = true
		}
	}
}

func (s *EspeakSynth) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.Process != nil {
		_ = s.current.Process.Signal(syscall.SIGCONT)
	}
	s.paused = false
}

func (s *EspeakSynth) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

func (s *EspeakSynth) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

func (s *EspeakSynth) Pending() bool { return false }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
