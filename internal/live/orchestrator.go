package live

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/courtsideapp/courtside/internal/badges"
	"github.com/courtsideapp/courtside/internal/coins"
	"github.com/courtsideapp/courtside/internal/commentary"
	"github.com/courtsideapp/courtside/internal/match"
	"github.com/courtsideapp/courtside/internal/observability"
	"github.com/courtsideapp/courtside/internal/protocol"
	"github.com/courtsideapp/courtside/internal/roster"
	"github.com/courtsideapp/courtside/internal/session"
	"github.com/courtsideapp/courtside/internal/speech"
	"github.com/courtsideapp/courtside/internal/stats"
)

// Display labels for the two sides.
const (
	teamALabel = "Team A"
	teamBLabel = "Team B"
)

// progressionTimeout bounds post-match persistence work.
const progressionTimeout = 5 * time.Second

// Deps are the collaborators one orchestrator drives. Narrator is a
// process-wide singleton; everything else is shared service state.
type Deps struct {
	Sessions  *session.Manager
	Store     roster.Store
	Narrator  *speech.Narrator
	Composer  *commentary.Composer
	Badges    *badges.Service
	Coins     *coins.Ledger
	Stats     *stats.Recorder
	Metrics   *observability.Metrics
	MatchCfg  match.Config
	Scoreline bool

	// MaxChunkChars overrides the narration chunk budget when positive.
	MaxChunkChars int
}

type conn struct {
	ctx      context.Context
	outbound chan<- any
}

// Orchestrator owns the court sessions: it builds each session's match
// state machine, narrates its events, and relays state to whichever
// websocket connection is currently attached. Sessions outlive
// connections; narration and the countdown carry on across reconnects.
type Orchestrator struct {
	deps  Deps
	mu    sync.Mutex
	conns map[string]*conn
}

func NewOrchestrator(deps Deps) *Orchestrator {
	return &Orchestrator{
		deps:  deps,
		conns: make(map[string]*conn),
	}
}

type sessionRef struct {
	id          string
	communityID string
}

// CreateSession builds a match session for a community and registers
// it with the session manager.
func (o *Orchestrator) CreateSession(communityID string) *session.Session {
	ref := &sessionRef{communityID: communityID}
	ms := match.NewSession(o.deps.MatchCfg, match.Hooks{
		OnStart:  func() { o.onMatchStart(ref) },
		OnScore:  func(ev match.ScoreEvent) { o.onScore(ref, ev) },
		OnTick:   func(left int) { o.onTick(ref, left) },
		OnFinish: func(sum match.Summary) { o.onFinish(ref, sum) },
	})
	s := o.deps.Sessions.Create(communityID, ms)
	ref.id = s.ID
	return s
}

// TeardownSession stops the session's countdown and silences
// narration. Run when a session ends or expires; session accounting
// metrics belong to the caller.
func (o *Orchestrator) TeardownSession(s *session.Session) {
	if s.Match != nil {
		s.Match.Teardown()
	}
	o.deps.Narrator.Stop()
}

// RunConnection drives one websocket connection over a session. It
// returns when inbound closes or ctx ends; the session itself stays
// alive for reconnects.
func (o *Orchestrator) RunConnection(ctx context.Context, s *session.Session, inbound <-chan any, outbound chan<- any) error {
	ms := s.Match
	if ms == nil {
		return session.ErrNotFound
	}

	players, err := o.playersByName(ctx, s.CommunityID)
	if err != nil {
		// A broken roster degrades to an empty one, the session stays up.
		log.Printf("live: roster fetch for community %s failed: %v", s.CommunityID, err)
		o.sendTo(ctx, outbound, protocol.ErrorEvent{
			Type:      protocol.TypeErrorEvent,
			SessionID: s.ID,
			Code:      "roster_unavailable",
			Source:    "roster",
			Retryable: true,
			Detail:    err.Error(),
		})
		players = map[string]roster.Player{}
	}

	o.attach(s.ID, &conn{ctx: ctx, outbound: outbound})
	defer o.detach(s.ID)

	o.sendTo(ctx, outbound, o.stateMessage(s.ID, ms))

	for {
		var (
			msg any
			ok  bool
		)
		select {
		case <-ctx.Done():
			return nil
		case msg, ok = <-inbound:
			if !ok {
				return nil
			}
		}

		_ = o.deps.Sessions.Touch(s.ID)
		o.countInbound(msg)

		switch m := msg.(type) {
		case protocol.ChooseSide:
			ms.ChooseSide(match.Side(m.Side))
		case protocol.TogglePlayer:
			p, known := players[m.Player]
			if !known {
				o.sendTo(ctx, outbound, protocol.ErrorEvent{
					Type:      protocol.TypeErrorEvent,
					SessionID: s.ID,
					Code:      "unknown_player",
					Source:    "roster",
					Detail:    m.Player,
				})
				continue
			}
			ms.TogglePlayer(p)
		case protocol.ResetSelection:
			ms.ResetSelection()
			o.deps.Narrator.ResetForNewMatch()
		case protocol.StartMatch:
			// A rejected start must not disturb whatever is narrating,
			// so the reset happens only once the start is going through.
			if !ms.CanStart() {
				o.sendTo(ctx, outbound, protocol.ErrorEvent{
					Type:      protocol.TypeErrorEvent,
					SessionID: s.ID,
					Code:      "match_not_ready",
					Source:    "match",
					Detail:    "both teams must be full",
				})
				continue
			}
			o.deps.Narrator.ResetForNewMatch()
			ms.StartMatch()
		case protocol.ToggleTimer:
			ms.ToggleTimer()
		case protocol.OpenAdjust:
			ms.OpenAdjustment(match.Side(m.Side), m.Player, m.Magnitude)
		case protocol.ConfirmAdjust:
			ms.ConfirmAdjustment(m.Add)
		case protocol.CancelAdjust:
			ms.CancelAdjustment()
		case protocol.SpeakScore:
			a, b := ms.Scores()
			o.speak(o.deps.Composer.Scoreline(a, b), true)
			continue
		case protocol.NarratorControl:
			o.handleNarratorControl(m)
			continue
		case protocol.UserGesture:
			o.deps.Narrator.NotifyUserGesture()
			o.sendTo(ctx, outbound, protocol.SystemEvent{
				Type:      protocol.TypeSystemEvent,
				SessionID: s.ID,
				Code:      "audio_unlocked",
			})
			continue
		default:
			continue
		}

		o.sendTo(ctx, outbound, o.stateMessage(s.ID, ms))
	}
}

func (o *Orchestrator) handleNarratorControl(m protocol.NarratorControl) {
	switch m.Action {
	case protocol.NarratorEnable:
		o.deps.Narrator.SetEnabled(true)
	case protocol.NarratorDisable:
		o.deps.Narrator.SetEnabled(false)
	case protocol.NarratorStop:
		o.deps.Narrator.Stop()
	case protocol.NarratorSetVoice:
		o.deps.Narrator.SetPreferredVoiceName(m.Voice)
	}
}

func (o *Orchestrator) onMatchStart(ref *sessionRef) {
	o.speak(o.deps.Composer.MatchStart(), false)
}

func (o *Orchestrator) onScore(ref *sessionRef, ev match.ScoreEvent) {
	if o.deps.Metrics != nil {
		o.deps.Metrics.ScoreEvents.WithLabelValues(string(ev.Side)).Inc()
	}
	line := o.deps.Composer.ScoreCall(commentary.ScoreEvent{
		Scorer:    ev.Scorer,
		Team:      string(ev.Side),
		Delta:     ev.Delta,
		TeamA:     teamALabel,
		TeamB:     teamBLabel,
		ScoreA:    ev.ScoreA,
		ScoreB:    ev.ScoreB,
		Players:   commentaryPlayers(ev.Participants),
		Scoreline: o.deps.Scoreline,
	})
	o.speak(line, false)

	o.post(ref.id, protocol.ScoreEvent{
		Type:      protocol.TypeScoreEvent,
		SessionID: ref.id,
		Scorer:    ev.Scorer,
		Side:      string(ev.Side),
		Delta:     ev.Delta,
		ScoreA:    ev.ScoreA,
		ScoreB:    ev.ScoreB,
	})
}

func (o *Orchestrator) onTick(ref *sessionRef, left int) {
	// ticks are best effort, a slow reader just misses some
	o.tryPost(ref.id, protocol.TimerTick{
		Type:        protocol.TypeTimerTick,
		SessionID:   ref.id,
		SecondsLeft: left,
	})
}

func (o *Orchestrator) onFinish(ref *sessionRef, sum match.Summary) {
	o.deps.Narrator.Stop()
	o.deps.Narrator.Finalize()

	winnerLabel := ""
	switch sum.Winner {
	case match.WinnerA:
		winnerLabel = teamALabel
	case match.WinnerB:
		winnerLabel = teamBLabel
	}
	line := o.deps.Composer.MatchEnd(winnerLabel, sum.ScoreA, sum.ScoreB, sum.ScoreA, sum.MVP)
	rate, pitch := o.deps.Composer.Delivery()
	o.deps.Narrator.Speak(line, speech.SpeakOptions{Rate: rate, Pitch: pitch, AllowAfterFinalize: true})

	if o.deps.Metrics != nil {
		o.deps.Metrics.MatchesFinished.WithLabelValues(string(sum.Winner)).Inc()
		gap := sum.ScoreA - sum.ScoreB
		if gap < 0 {
			gap = -gap
		}
		o.deps.Metrics.FinalScoreGap.Observe(float64(gap))
	}

	earned := o.applyProgression(ref, sum)

	badgeNames := make(map[string][]string, len(earned))
	for player, list := range earned {
		for _, b := range list {
			badgeNames[player] = append(badgeNames[player], string(b))
		}
	}
	o.post(ref.id, protocol.MatchFinished{
		Type:      protocol.TypeMatchFinished,
		SessionID: ref.id,
		Winner:    string(sum.Winner),
		ScoreA:    sum.ScoreA,
		ScoreB:    sum.ScoreB,
		MVP:       sum.MVP,
		Badges:    badgeNames,
	})
}

// applyProgression runs the post-match collaborators: badge rules,
// coin rewards, roster progression. Failures are logged, not fatal;
// the match result already went out.
func (o *Orchestrator) applyProgression(ref *sessionRef, sum match.Summary) map[string][]badges.Badge {
	ctx, cancel := context.WithTimeout(context.Background(), progressionTimeout)
	defer cancel()

	var earned map[string][]badges.Badge
	if o.deps.Badges != nil {
		var err error
		earned, err = o.deps.Badges.Evaluate(ctx, badges.MatchResult{
			Winners: sum.Winners,
			Losers:  sum.Losers,
			MVP:     sum.MVP,
			Points:  sum.Points,
		})
		if err != nil {
			log.Printf("live: badge evaluation failed: %v", err)
		}
	}
	if o.deps.Coins != nil {
		counts := make(map[string]int, len(earned))
		for player, list := range earned {
			counts[player] = len(list)
		}
		if err := o.deps.Coins.RewardMatch(ctx, sum.Winners, counts); err != nil {
			log.Printf("live: coin rewards failed: %v", err)
		}
	}
	if o.deps.Stats != nil {
		err := o.deps.Stats.Record(ctx, ref.communityID, stats.Outcome{
			Winners: sum.Winners,
			Losers:  sum.Losers,
			MVP:     sum.MVP,
			Earned:  sum.Points,
		})
		if err != nil {
			log.Printf("live: progression recording failed: %v", err)
		}
	}
	return earned
}

func (o *Orchestrator) speak(line string, afterFinal bool) {
	if line == "" {
		return
	}
	rate, pitch := o.deps.Composer.Delivery()
	o.deps.Narrator.Speak(line, speech.SpeakOptions{
		Rate:               rate,
		Pitch:              pitch,
		MaxChunkChars:      o.deps.MaxChunkChars,
		AllowAfterFinalize: afterFinal,
	})
}

func (o *Orchestrator) stateMessage(sessionID string, ms *match.Session) protocol.MatchState {
	return protocol.MatchState{
		Type:      protocol.TypeMatchState,
		SessionID: sessionID,
		State:     ms.Snapshot(),
	}
}

func (o *Orchestrator) playersByName(ctx context.Context, communityID string) (map[string]roster.Player, error) {
	players, err := o.deps.Store.PlayersByCommunity(ctx, communityID)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]roster.Player, len(players))
	for _, p := range players {
		byName[p.Name] = p
	}
	return byName, nil
}

func (o *Orchestrator) attach(sessionID string, c *conn) {
	o.mu.Lock()
	o.conns[sessionID] = c
	o.mu.Unlock()
}

func (o *Orchestrator) detach(sessionID string) {
	o.mu.Lock()
	delete(o.conns, sessionID)
	o.mu.Unlock()
}

func (o *Orchestrator) lookup(sessionID string) *conn {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.conns[sessionID]
}

// post delivers to the attached connection, blocking until accepted or
// the connection goes away.
func (o *Orchestrator) post(sessionID string, msg any) {
	c := o.lookup(sessionID)
	if c == nil {
		return
	}
	o.sendTo(c.ctx, c.outbound, msg)
}

// tryPost delivers without blocking; a full buffer drops the message.
func (o *Orchestrator) tryPost(sessionID string, msg any) {
	c := o.lookup(sessionID)
	if c == nil {
		return
	}
	select {
	case c.outbound <- msg:
		o.countOutbound(msg)
	default:
	}
}

func (o *Orchestrator) sendTo(ctx context.Context, outbound chan<- any, msg any) {
	select {
	case outbound <- msg:
		o.countOutbound(msg)
	case <-ctx.Done():
	}
}

func (o *Orchestrator) countInbound(msg any) {
	if o.deps.Metrics == nil {
		return
	}
	o.deps.Metrics.WSMessages.WithLabelValues("in", messageType(msg)).Inc()
}

func (o *Orchestrator) countOutbound(msg any) {
	if o.deps.Metrics == nil {
		return
	}
	o.deps.Metrics.WSMessages.WithLabelValues("out", messageType(msg)).Inc()
}

func messageType(msg any) string {
	switch m := msg.(type) {
	case protocol.ChooseSide:
		return string(m.Type)
	case protocol.TogglePlayer:
		return string(m.Type)
	case protocol.ResetSelection:
		return string(m.Type)
	case protocol.StartMatch:
		return string(m.Type)
	case protocol.ToggleTimer:
		return string(m.Type)
	case protocol.OpenAdjust:
		return string(m.Type)
	case protocol.ConfirmAdjust:
		return string(m.Type)
	case protocol.CancelAdjust:
		return string(m.Type)
	case protocol.SpeakScore:
		return string(m.Type)
	case protocol.NarratorControl:
		return string(m.Type)
	case protocol.UserGesture:
		return string(m.Type)
	case protocol.MatchState:
		return string(m.Type)
	case protocol.ScoreEvent:
		return string(m.Type)
	case protocol.TimerTick:
		return string(m.Type)
	case protocol.MatchFinished:
		return string(m.Type)
	case protocol.SystemEvent:
		return string(m.Type)
	case protocol.ErrorEvent:
		return string(m.Type)
	default:
		return "unknown"
	}
}

func commentaryPlayers(participants []match.PlayerPoints) []commentary.PlayerScore {
	out := make([]commentary.PlayerScore, 0, len(participants))
	for _, p := range participants {
		out = append(out, commentary.PlayerScore{
			Name:   p.Name,
			Team:   string(p.Side),
			Points: p.Points,
		})
	}
	return out
}
