package speech

import (
	"regexp"
	"strings"
)

// Chunk budgets in runes. Long narration is sliced so no single
// utterance outlives what speech engines reliably play back.
const (
	DesktopChunkChars = 240
	MobileChunkChars  = 200
	MinChunkChars     = 80
	MaxChunkChars     = 400
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	punctSpacing  = regexp.MustCompile(`\s*([.!?…:,;])\s*`)
	sentenceSplit = regexp.MustCompile(`[^.!?…]+[.!?…]?`)
)

// ChunkBudget resolves the per-chunk rune budget for a profile
// ("desktop" or "mobile"), with custom overriding when positive.
// Overrides are clamped to [MinChunkChars, MaxChunkChars].
func ChunkBudget(custom int, profile string) int {
	if custom > 0 {
		if custom < MinChunkChars {
			return MinChunkChars
		}
		if custom > MaxChunkChars {
			return MaxChunkChars
		}
		return custom
	}
	if strings.EqualFold(profile, "mobile") {
		return MobileChunkChars
	}
	return DesktopChunkChars
}

// NormalizeText collapses whitespace and tidies punctuation spacing so
// engines do not stall on ragged input.
func NormalizeText(s string) string {
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = punctSpacing.ReplaceAllString(s, "$1 ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// SplitChunks breaks text into pieces of at most max runes. Sentence
// boundaries are preferred, then commas, semicolons, colons and
// spaces; anything still too long is sliced mid-word. The result never
// contains an empty chunk, and non-empty input always yields at least
// one chunk.
func SplitChunks(text string, max int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if max <= 0 {
		max = DesktopChunkChars
	}

	var chunks []string
	for _, sentence := range splitSentences(text) {
		if runeLen(sentence) <= max {
			chunks = append(chunks, sentence)
			continue
		}
		chunks = append(chunks, splitByLength(sentence, max)...)
	}
	return chunks
}

func splitSentences(text string) []string {
	parts := sentenceSplit.FindAllString(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitByLength packs separator-delimited tokens greedily, then hard
// slices whatever still exceeds max.
func splitByLength(sentence string, max int) []string {
	var pieces []string
	var cur strings.Builder
	flush := func() {
		if p := strings.TrimSpace(cur.String()); p != "" {
			pieces = append(pieces, p)
		}
		cur.Reset()
	}
	for _, tok := range splitTokens(sentence) {
		if cur.Len() > 0 && runeLen(strings.TrimSpace(cur.String()+tok)) > max {
			flush()
			tok = strings.TrimLeft(tok, " \t")
			if tok == "" {
				continue
			}
		}
		cur.WriteString(tok)
	}
	flush()

	var out []string
	for _, p := range pieces {
		out = append(out, hardSlice(p, max)...)
	}
	return out
}

// splitTokens cuts a sentence into runs that each end at a soft
// boundary (comma, semicolon, colon or space), keeping the boundary
// rune attached.
func splitTokens(sentence string) []string {
	var tokens []string
	var cur strings.Builder
	for _, r := range sentence {
		cur.WriteRune(r)
		switch r {
		case ',', ';', ':', ' ':
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens
}

func hardSlice(s string, max int) []string {
	runes := []rune(s)
	if len(runes) <= max {
		return []string{s}
	}
	var out []string
	for len(runes) > 0 {
		n := max
		if n > len(runes) {
			n = len(runes)
		}
		piece := strings.TrimSpace(string(runes[:n]))
		if piece != "" {
			out = append(out, piece)
		}
		runes = runes[n:]
	}
	return out
}

func runeLen(s string) int { return len([]rune(s)) }
