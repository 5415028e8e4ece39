package speech

import (
	"strings"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"collapses whitespace", "two   points\tby  Leo", "two points by Leo"},
		{"tidies punctuation spacing", "Score : 4 to 2 . Big lead !", "Score: 4 to 2. Big lead!"},
		{"trims edges", "  And one.  ", "And one."},
		{"empty stays empty", "   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeText(tc.in); got != tc.want {
				t.Fatalf("NormalizeText(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSplitChunksShortText(t *testing.T) {
	chunks := SplitChunks("Bucket by Leo!", 240)
	if len(chunks) != 1 || chunks[0] != "Bucket by Leo!" {
		t.Fatalf("expected single chunk, got %v", chunks)
	}
}

func TestSplitChunksEmptyText(t *testing.T) {
	if chunks := SplitChunks("   ", 240); chunks != nil {
		t.Fatalf("expected no chunks for blank input, got %v", chunks)
	}
}

func TestSplitChunksPrefersSentenceBoundaries(t *testing.T) {
	text := "First sentence here. Second sentence follows! Third one asks?"
	chunks := SplitChunks(text, 30)
	want := []string{"First sentence here.", "Second sentence follows!", "Third one asks?"}
	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %d: %v", len(want), len(chunks), chunks)
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Fatalf("chunk %d = %q, want %q", i, chunks[i], want[i])
		}
	}
}

func TestSplitChunksRespectsBudget(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString("a very long clause that keeps going, ")
	}
	chunks := SplitChunks(sb.String(), 100)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c == "" {
			t.Fatalf("chunk %d is empty", i)
		}
		if n := len([]rune(c)); n > 100 {
			t.Fatalf("chunk %d has %d runes, budget 100: %q", i, n, c)
		}
	}
}

func TestSplitChunksHardSlicesUnbrokenRuns(t *testing.T) {
	chunks := SplitChunks(strings.Repeat("x", 950), 100)
	if len(chunks) != 10 {
		t.Fatalf("expected 10 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len([]rune(c)) > 100 {
			t.Fatalf("chunk %d exceeds budget: %d runes", i, len([]rune(c)))
		}
	}
}

func TestChunkBudget(t *testing.T) {
	cases := []struct {
		name    string
		custom  int
		profile string
		want    int
	}{
		{"desktop default", 0, "desktop", DesktopChunkChars},
		{"mobile default", 0, "mobile", MobileChunkChars},
		{"unknown profile falls back to desktop", 0, "tablet", DesktopChunkChars},
		{"custom in range", 300, "desktop", 300},
		{"custom clamped low", 10, "desktop", MinChunkChars},
		{"custom clamped high", 5000, "mobile", MaxChunkChars},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ChunkBudget(tc.custom, tc.profile); got != tc.want {
				t.Fatalf("ChunkBudget(%d, %q) = %d, want %d", tc.custom, tc.profile, got, tc.want)
			}
		})
	}
}
