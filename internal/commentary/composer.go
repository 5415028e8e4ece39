package commentary

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Style selects the caller's delivery.
type Style string

const (
	StyleEnergetic Style = "energetic"
	StylePlain     Style = "plain"
)

// jabMaxPoints is the highest score at which a non-scorer is still fair
// game for a playful jab.
const jabMaxPoints = 2

// PlayerScore is one player's running total, used for jabs and leader
// callouts.
type PlayerScore struct {
	Name   string
	Team   string
	Points int
}

// ScoreEvent describes a confirmed scoring play.
type ScoreEvent struct {
	Scorer    string
	Team      string
	Delta     int
	TeamA     string
	TeamB     string
	ScoreA    int
	ScoreB    int
	Players   []PlayerScore
	Scoreline bool
}

// Composer assembles commentary lines. It remembers the last phrase
// picked from each bank and steps past it on a repeat draw, so
// back-to-back calls never reuse the same line from a bank.
type Composer struct {
	style Style

	mu       sync.Mutex
	rng      *rand.Rand
	lastPick map[string]int
}

// NewComposer builds a composer for the given style. A nil rng gets a
// time-seeded one; tests pass a fixed seed.
func NewComposer(style Style, rng *rand.Rand) *Composer {
	if style != StylePlain {
		style = StyleEnergetic
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Composer{style: style, rng: rng, lastPick: make(map[string]int)}
}

func (c *Composer) Style() Style { return c.style }

// Delivery returns the rate and pitch the caller's style asks of the
// speech engine.
func (c *Composer) Delivery() (rate, pitch float64) {
	if c.style == StyleEnergetic {
		return 1.15, 1.1
	}
	return 1.0, 1.0
}

// ScoreCall builds the line for a confirmed scoring play. Non-positive
// deltas produce no narration.
func (c *Composer) ScoreCall(ev ScoreEvent) string {
	if ev.Delta <= 0 {
		return ""
	}
	var parts []string
	if c.style == StyleEnergetic {
		parts = append(parts, c.hype(ev.Delta))
	}
	parts = append(parts, fmt.Sprintf(c.action(ev.Delta), ev.Scorer, c.teamName(ev, ev.Team)))
	if leader := c.leaderCall(ev); leader != "" {
		parts = append(parts, leader)
	}
	parts = append(parts, c.gapCall(ev))
	if jab := c.jab(ev); jab != "" {
		parts = append(parts, jab)
	}
	if ev.Scoreline {
		parts = append(parts, c.Scoreline(ev.ScoreA, ev.ScoreB))
	}
	return strings.Join(parts, " ")
}

// Scoreline reads the current score.
func (c *Composer) Scoreline(scoreA, scoreB int) string {
	if scoreA == scoreB {
		return fmt.Sprintf(c.pick("scoreline_tie", scorelineTiePhrases), scoreA)
	}
	return fmt.Sprintf(c.pick("scoreline", scorelinePhrases), scoreA, scoreB)
}

// MatchStart announces the opening tip.
func (c *Composer) MatchStart() string {
	return c.pick("match_start", matchStartPhrases)
}

// MatchEnd announces the final: result, MVP callout when an MVP
// exists, then a sign-off. An empty winner means a draw.
func (c *Composer) MatchEnd(winner string, scoreA, scoreB, tieScore int, mvp string) string {
	var parts []string
	if winner == "" {
		parts = append(parts, fmt.Sprintf(c.pick("match_end_tie", matchEndTiePhrases), tieScore))
	} else {
		hi, lo := scoreA, scoreB
		if lo > hi {
			hi, lo = lo, hi
		}
		parts = append(parts, fmt.Sprintf(c.pick("match_end_win", matchEndWinPhrases), winner, hi, lo))
	}
	if mvp != "" {
		parts = append(parts, fmt.Sprintf(c.pick("mvp", mvpPhrases), mvp))
	}
	parts = append(parts, c.pick("sign_off", signOffPhrases))
	return strings.Join(parts, " ")
}

func (c *Composer) hype(delta int) string {
	switch {
	case delta >= 3:
		return c.pick("hype_big", hypeBigPhrases)
	case delta == 2:
		return c.pick("hype_mid", hypeMidPhrases)
	default:
		return c.pick("hype_small", hypeSmallPhrases)
	}
}

func (c *Composer) action(delta int) string {
	switch {
	case delta >= 3:
		return c.pick("action_big", actionBigPhrases)
	case delta == 2:
		return c.pick("action_two", actionTwoPhrases)
	default:
		return c.pick("action_one", actionOnePhrases)
	}
}

func (c *Composer) teamName(ev ScoreEvent, side string) string {
	if side == "B" {
		if ev.TeamB != "" {
			return ev.TeamB
		}
		return "Team B"
	}
	if ev.TeamA != "" {
		return ev.TeamA
	}
	return "Team A"
}

// leaderCall fires when the scorer now tops the per-player scoring
// chart, alone or tied.
func (c *Composer) leaderCall(ev ScoreEvent) string {
	var scorerPoints, maxPoints, atMax int
	found := false
	for _, p := range ev.Players {
		if p.Points > maxPoints {
			maxPoints = p.Points
			atMax = 1
		} else if p.Points == maxPoints {
			atMax++
		}
		if p.Name == ev.Scorer {
			scorerPoints = p.Points
			found = true
		}
	}
	if !found || scorerPoints == 0 || scorerPoints < maxPoints {
		return ""
	}
	if atMax == 1 {
		return fmt.Sprintf(c.pick("leader_sole", leaderSolePhrases), ev.Scorer)
	}
	return fmt.Sprintf(c.pick("leader_tied", leaderTiedPhrases), ev.Scorer)
}

// gapCall reads the team-score gap, naming the leading team.
func (c *Composer) gapCall(ev ScoreEvent) string {
	gap := ev.ScoreA - ev.ScoreB
	leading := c.teamName(ev, "A")
	if gap < 0 {
		gap = -gap
		leading = c.teamName(ev, "B")
	}
	switch {
	case gap == 0:
		return c.pick("gap_tie", gapTiePhrases)
	case gap <= 2:
		return fmt.Sprintf(c.pick("gap_close", gapClosePhrases), leading)
	case gap <= 6:
		return fmt.Sprintf(c.pick("gap_mid", gapMidPhrases), leading)
	default:
		return fmt.Sprintf(c.pick("gap_blowout", gapBlowoutPhrases), leading)
	}
}

// jab picks on a struggling non-scorer. Scoreless players are the
// preferred target; failing that, anyone at jabMaxPoints or under. The
// scorer is never the target.
func (c *Composer) jab(ev ScoreEvent) string {
	var scoreless, struggling []string
	for _, p := range ev.Players {
		if p.Name == ev.Scorer {
			continue
		}
		switch {
		case p.Points == 0:
			scoreless = append(scoreless, p.Name)
		case p.Points <= jabMaxPoints:
			struggling = append(struggling, p.Name)
		}
	}
	targets := scoreless
	if len(targets) == 0 {
		targets = struggling
	}
	if len(targets) == 0 {
		return ""
	}

	c.mu.Lock()
	target := targets[c.rng.Intn(len(targets))]
	c.mu.Unlock()
	return fmt.Sprintf(c.pick("jab", jabPhrases), target)
}

// pick draws from a bank, stepping past the previous pick for the same
// bank so consecutive draws never repeat.
func (c *Composer) pick(key string, bank []string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.rng.Intn(len(bank))
	if last, ok := c.lastPick[key]; ok && idx == last && len(bank) > 1 {
		idx = (idx + 1) % len(bank)
	}
	c.lastPick[key] = idx
	return bank[idx]
}
