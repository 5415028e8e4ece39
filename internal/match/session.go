package match

import (
	"sort"
	"sync"
	"time"

	"github.com/courtsideapp/courtside/internal/roster"
)

// Side identifies a team.
type Side string

const (
	SideNone Side = ""
	SideA    Side = "A"
	SideB    Side = "B"
)

// Winner is the terminal result. Once set it never changes.
type Winner string

const (
	WinnerNone Winner = ""
	WinnerA    Winner = "A"
	WinnerB    Winner = "B"
	WinnerTie  Winner = "Tie"
)

// Phase is the session lifecycle state.
type Phase string

const (
	PhaseAssembling Phase = "assembling"
	PhaseReady      Phase = "ready"
	PhaseInProgress Phase = "in_progress"
	PhaseFinished   Phase = "finished"
)

// Defaults for a pickup run.
const (
	DefaultTeamSize = 3
	DefaultWinScore = 14
	DefaultDuration = 600 * time.Second
)

// Tier names for a player's in-match points.
const (
	TierDiamond = "diamond"
	TierGold    = "gold"
	TierSilver  = "silver"
	TierBronze  = "bronze"
)

// Config tunes a session. Zero values take the defaults above; Tick
// only shrinks below one second in tests.
type Config struct {
	TeamSize int
	WinScore int
	Duration time.Duration
	Tick     time.Duration
}

func (c Config) withDefaults() Config {
	if c.TeamSize <= 0 {
		c.TeamSize = DefaultTeamSize
	}
	if c.WinScore <= 0 {
		c.WinScore = DefaultWinScore
	}
	if c.Duration <= 0 {
		c.Duration = DefaultDuration
	}
	if c.Tick <= 0 {
		c.Tick = time.Second
	}
	return c
}

// PlayerPoints is one participant's line in the match.
type PlayerPoints struct {
	Name        string `json:"name"`
	Side        Side   `json:"side"`
	Points      int    `json:"points"`
	Level       int    `json:"level"`
	TotalPoints int    `json:"totalPoints"`
}

// PendingAdjustment is a staged score change awaiting sign
// confirmation. It exists only while the confirmation dialog is open.
type PendingAdjustment struct {
	Side      Side   `json:"side"`
	Player    string `json:"player"`
	Magnitude int    `json:"magnitude"`
}

// ScoreEvent reports one applied positive score change.
type ScoreEvent struct {
	Scorer       string
	Side         Side
	Delta        int
	ScoreA       int
	ScoreB       int
	Participants []PlayerPoints
}

// Summary is the end-of-match report.
type Summary struct {
	Winner  Winner
	ScoreA  int
	ScoreB  int
	MVP     string
	Winners []string
	Losers  []string
	Points  map[string]int
}

// Hooks receive session events. They are invoked without the session
// lock held; nil hooks are skipped.
type Hooks struct {
	OnStart  func()
	OnScore  func(ScoreEvent)
	OnTick   func(secondsLeft int)
	OnFinish func(Summary)
}

type participant struct {
	player roster.Player
	points int
}

// Session is the match state machine: team assembly, countdown, score
// bookkeeping, win detection. Invalid operations are silent no-ops;
// mutating methods report whether they applied.
type Session struct {
	mu    sync.Mutex
	cfg   Config
	hooks Hooks

	phase       Phase
	selected    Side
	teamA       []*participant
	teamB       []*participant
	scoreA      int
	scoreB      int
	secondsLeft int
	running     bool
	winner      Winner
	pending     *PendingAdjustment

	timerStop chan struct{}
}

func NewSession(cfg Config, hooks Hooks) *Session {
	return &Session{cfg: cfg.withDefaults(), hooks: hooks, phase: PhaseAssembling}
}

// ChooseSide sets the side currently being edited.
func (s *Session) ChooseSide(side Side) {
	if side != SideA && side != SideB {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseAssembling || s.phase == PhaseReady {
		s.selected = side
	}
}

// SelectedSide returns the side being edited, SideNone before any pick.
func (s *Session) SelectedSide() Side {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// TogglePlayer adds p to the selected side, or removes them if already
// there. Removal is always allowed; adding requires room on the side
// and that the player is not on the other side. When the selected side
// fills up and the other still has room, selection switches over.
func (s *Session) TogglePlayer(p roster.Player) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseAssembling && s.phase != PhaseReady {
		return false
	}
	if s.selected == SideNone {
		return false
	}

	target, other := &s.teamA, &s.teamB
	otherSide := SideB
	if s.selected == SideB {
		target, other = &s.teamB, &s.teamA
		otherSide = SideA
	}

	if idx := indexOf(*target, p.Name); idx >= 0 {
		*target = append((*target)[:idx], (*target)[idx+1:]...)
		s.recomputeAssemblyLocked(otherSide)
		return true
	}
	if indexOf(*other, p.Name) >= 0 {
		return false
	}
	if len(*target) >= s.cfg.TeamSize {
		return false
	}
	*target = append(*target, &participant{player: p})
	s.recomputeAssemblyLocked(otherSide)
	return true
}

func (s *Session) recomputeAssemblyLocked(otherSide Side) {
	if len(s.teamA) == s.cfg.TeamSize && len(s.teamB) == s.cfg.TeamSize {
		s.phase = PhaseReady
	} else {
		s.phase = PhaseAssembling
	}
	// convenience auto-advance, not a hard rule
	selectedFull := (s.selected == SideA && len(s.teamA) == s.cfg.TeamSize) ||
		(s.selected == SideB && len(s.teamB) == s.cfg.TeamSize)
	otherFull := (otherSide == SideA && len(s.teamA) == s.cfg.TeamSize) ||
		(otherSide == SideB && len(s.teamB) == s.cfg.TeamSize)
	if selectedFull && !otherFull {
		s.selected = otherSide
	}
}

// ResetSelection clears both teams and any game state, returning to
// assembly. Any running countdown stops.
func (s *Session) ResetSelection() {
	s.mu.Lock()
	s.stopTimerLocked()
	s.teamA, s.teamB = nil, nil
	s.scoreA, s.scoreB = 0, 0
	s.secondsLeft = 0
	s.running = false
	s.winner = WinnerNone
	s.pending = nil
	s.selected = SideNone
	s.phase = PhaseAssembling
	s.mu.Unlock()
}

// StartMatch begins play. Both teams must be at capacity.
// CanStart reports whether StartMatch would proceed right now.
func (s *Session) CanStart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.teamA) == s.cfg.TeamSize &&
		len(s.teamB) == s.cfg.TeamSize &&
		s.phase != PhaseInProgress
}

func (s *Session) StartMatch() bool {
	s.mu.Lock()
	if len(s.teamA) != s.cfg.TeamSize || len(s.teamB) != s.cfg.TeamSize {
		s.mu.Unlock()
		return false
	}
	if s.phase == PhaseInProgress {
		s.mu.Unlock()
		return false
	}
	s.stopTimerLocked()
	for _, p := range append(append([]*participant{}, s.teamA...), s.teamB...) {
		p.points = 0
	}
	s.scoreA, s.scoreB = 0, 0
	s.secondsLeft = int(s.cfg.Duration / time.Second)
	s.winner = WinnerNone
	s.pending = nil
	s.phase = PhaseInProgress
	s.running = true
	stop := make(chan struct{})
	s.timerStop = stop
	hook := s.hooks.OnStart
	s.mu.Unlock()

	go s.countdown(stop)
	if hook != nil {
		hook()
	}
	return true
}

func (s *Session) countdown(stop chan struct{}) {
	ticker := time.NewTicker(s.cfg.Tick)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		s.mu.Lock()
		if s.timerStop != stop || s.phase != PhaseInProgress {
			s.mu.Unlock()
			return
		}
		if !s.running {
			s.mu.Unlock()
			continue
		}
		s.secondsLeft--
		left := s.secondsLeft
		tickHook := s.hooks.OnTick
		s.mu.Unlock()

		if tickHook != nil {
			tickHook(left)
		}
		if left <= 0 {
			s.finish(SideNone)
			return
		}
	}
}

// stopTimerLocked invalidates the current countdown goroutine.
func (s *Session) stopTimerLocked() {
	if s.timerStop != nil {
		close(s.timerStop)
		s.timerStop = nil
	}
}

// ToggleTimer pauses or resumes the countdown. Only effective after
// start and before the finish.
func (s *Session) ToggleTimer() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseInProgress {
		return false
	}
	s.running = !s.running
	return true
}

// AdjustPoints changes a player's match points by delta, clamping at
// zero, and moves the team score by the same applied amount. Crossing
// the win score on a positive delta ends the match immediately. The
// applied delta is returned; zero means nothing happened.
func (s *Session) AdjustPoints(side Side, playerName string, delta int) int {
	s.mu.Lock()
	if s.phase != PhaseInProgress || s.winner != WinnerNone {
		s.mu.Unlock()
		return 0
	}
	team := &s.teamA
	score := &s.scoreA
	if side == SideB {
		team, score = &s.teamB, &s.scoreB
	} else if side != SideA {
		s.mu.Unlock()
		return 0
	}
	idx := indexOf(*team, playerName)
	if idx < 0 {
		s.mu.Unlock()
		return 0
	}
	part := (*team)[idx]

	newTotal := part.points + delta
	if newTotal < 0 {
		newTotal = 0
	}
	applied := newTotal - part.points
	if applied == 0 {
		s.mu.Unlock()
		return 0
	}
	part.points = newTotal
	*score += applied
	if *score < 0 {
		*score = 0
	}

	won := applied > 0 && *score >= s.cfg.WinScore
	var ev ScoreEvent
	scoreHook := s.hooks.OnScore
	if applied > 0 {
		ev = ScoreEvent{
			Scorer:       playerName,
			Side:         side,
			Delta:        applied,
			ScoreA:       s.scoreA,
			ScoreB:       s.scoreB,
			Participants: s.participantsLocked(),
		}
	}
	s.mu.Unlock()

	if applied > 0 && scoreHook != nil {
		scoreHook(ev)
	}
	if won {
		s.finish(side)
	}
	return applied
}

// OpenAdjustment stages a score change for the confirmation dialog.
func (s *Session) OpenAdjustment(side Side, playerName string, magnitude int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseInProgress || s.winner != WinnerNone || magnitude <= 0 {
		return false
	}
	team := s.teamA
	if side == SideB {
		team = s.teamB
	} else if side != SideA {
		return false
	}
	if indexOf(team, playerName) < 0 {
		return false
	}
	s.pending = &PendingAdjustment{Side: side, Player: playerName, Magnitude: magnitude}
	return true
}

// ConfirmAdjustment applies the staged change with the confirmed sign
// and clears it. Returns the applied delta.
func (s *Session) ConfirmAdjustment(add bool) int {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()
	if pending == nil {
		return 0
	}
	delta := pending.Magnitude
	if !add {
		delta = -delta
	}
	return s.AdjustPoints(pending.Side, pending.Player, delta)
}

// CancelAdjustment discards the staged change.
func (s *Session) CancelAdjustment() {
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
}

// Pending returns a copy of the staged adjustment, nil when none.
func (s *Session) Pending() *PendingAdjustment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return nil
	}
	p := *s.pending
	return &p
}

// finish resolves the winner and closes the match. With no explicit
// side the scores decide, equal scores meaning a tie. Idempotent.
func (s *Session) finish(explicit Side) {
	s.mu.Lock()
	if s.phase != PhaseInProgress || s.winner != WinnerNone {
		s.mu.Unlock()
		return
	}
	s.stopTimerLocked()
	s.running = false
	s.pending = nil
	switch {
	case explicit == SideA:
		s.winner = WinnerA
	case explicit == SideB:
		s.winner = WinnerB
	case s.scoreA > s.scoreB:
		s.winner = WinnerA
	case s.scoreB > s.scoreA:
		s.winner = WinnerB
	default:
		s.winner = WinnerTie
	}
	s.phase = PhaseFinished
	summary := s.summaryLocked()
	hook := s.hooks.OnFinish
	s.mu.Unlock()

	if hook != nil {
		hook(summary)
	}
}

// Teardown stops the countdown. Mandatory when the session is
// abandoned; safe to call repeatedly.
func (s *Session) Teardown() {
	s.mu.Lock()
	s.stopTimerLocked()
	s.running = false
	s.mu.Unlock()
}

func (s *Session) summaryLocked() Summary {
	summary := Summary{
		Winner: s.winner,
		ScoreA: s.scoreA,
		ScoreB: s.scoreB,
		Points: make(map[string]int),
	}
	// a draw crowns nobody: no MVP callout, no MVP badge or level
	if s.winner != WinnerTie {
		summary.MVP = s.mvpLocked()
	}
	for _, p := range s.teamA {
		summary.Points[p.player.Name] = p.points
	}
	for _, p := range s.teamB {
		summary.Points[p.player.Name] = p.points
	}
	switch s.winner {
	case WinnerA:
		summary.Winners, summary.Losers = names(s.teamA), names(s.teamB)
	case WinnerB:
		summary.Winners, summary.Losers = names(s.teamB), names(s.teamA)
	}
	return summary
}

// MVP is the top scorer; ties break by higher level, then higher
// career points, then the lexicographically smaller name.
func (s *Session) MVP() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mvpLocked()
}

func (s *Session) mvpLocked() string {
	all := append(append([]*participant{}, s.teamA...), s.teamB...)
	if len(all) == 0 {
		return ""
	}
	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.points != b.points {
			return a.points > b.points
		}
		if a.player.Level != b.player.Level {
			return a.player.Level > b.player.Level
		}
		if a.player.TotalPoints != b.player.TotalPoints {
			return a.player.TotalPoints > b.player.TotalPoints
		}
		return a.player.Name < b.player.Name
	})
	return all[0].player.Name
}

// TopPoints and BottomPoints are the leaderboard extremes across all
// participants. Both are nil when every participant is tied, so a
// uniform board gets no decoration.
func (s *Session) TopPoints() (top, bottom *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := append(append([]*participant{}, s.teamA...), s.teamB...)
	if len(all) == 0 {
		return nil, nil
	}
	hi, lo := all[0].points, all[0].points
	for _, p := range all[1:] {
		if p.points > hi {
			hi = p.points
		}
		if p.points < lo {
			lo = p.points
		}
	}
	if hi == lo {
		return nil, nil
	}
	return &hi, &lo
}

// Tier maps in-match points to a display band.
func Tier(points int) string {
	switch {
	case points >= 12:
		return TierDiamond
	case points >= 9:
		return TierGold
	case points >= 6:
		return TierSilver
	default:
		return TierBronze
	}
}

// IsInAnyTeam reports whether the named player sits on either side.
func (s *Session) IsInAnyTeam(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOf(s.teamA, name) >= 0 || indexOf(s.teamB, name) >= 0
}

// CanSelect reports whether the named player could be added right now.
func (s *Session) CanSelect(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseAssembling && s.phase != PhaseReady {
		return false
	}
	if s.selected == SideNone {
		return false
	}
	target, other := s.teamA, s.teamB
	if s.selected == SideB {
		target, other = s.teamB, s.teamA
	}
	if indexOf(target, name) >= 0 {
		return true
	}
	return indexOf(other, name) < 0 && len(target) < s.cfg.TeamSize
}

// AllSelected reports whether both sides are at capacity.
func (s *Session) AllSelected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.teamA) == s.cfg.TeamSize && len(s.teamB) == s.cfg.TeamSize
}

// Snapshot is the full externally visible state.
type Snapshot struct {
	Phase        Phase              `json:"phase"`
	SelectedSide Side               `json:"selectedSide"`
	TeamA        []PlayerPoints     `json:"teamA"`
	TeamB        []PlayerPoints     `json:"teamB"`
	ScoreA       int                `json:"scoreA"`
	ScoreB       int                `json:"scoreB"`
	SecondsLeft  int                `json:"secondsLeft"`
	Running      bool               `json:"running"`
	Winner       Winner             `json:"winner,omitempty"`
	Pending      *PendingAdjustment `json:"pending,omitempty"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Phase:        s.phase,
		SelectedSide: s.selected,
		TeamA:        teamPoints(s.teamA, SideA),
		TeamB:        teamPoints(s.teamB, SideB),
		ScoreA:       s.scoreA,
		ScoreB:       s.scoreB,
		SecondsLeft:  s.secondsLeft,
		Running:      s.running,
		Winner:       s.winner,
	}
	if s.pending != nil {
		p := *s.pending
		snap.Pending = &p
	}
	return snap
}

// Scores returns both team scores.
func (s *Session) Scores() (a, b int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scoreA, s.scoreB
}

// Winner returns the terminal result, WinnerNone while playing.
func (s *Session) Winner() Winner {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.winner
}

// Phase returns the lifecycle state.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// SecondsLeft returns the countdown value.
func (s *Session) SecondsLeft() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.secondsLeft
}

func (s *Session) participantsLocked() []PlayerPoints {
	out := make([]PlayerPoints, 0, len(s.teamA)+len(s.teamB))
	out = append(out, teamPoints(s.teamA, SideA)...)
	return append(out, teamPoints(s.teamB, SideB)...)
}

func teamPoints(team []*participant, sd Side) []PlayerPoints {
	out := make([]PlayerPoints, 0, len(team))
	for _, p := range team {
		out = append(out, PlayerPoints{
			Name:        p.player.Name,
			Side:        sd,
			Points:      p.points,
			Level:       p.player.Level,
			TotalPoints: p.player.TotalPoints,
		})
	}
	return out
}

func names(team []*participant) []string {
	out := make([]string, 0, len(team))
	for _, p := range team {
		out = append(out, p.player.Name)
	}
	return out
}

func indexOf(team []*participant, name string) int {
	for i, p := range team {
		if p.player.Name == name {
			return i
		}
	}
	return -1
}
