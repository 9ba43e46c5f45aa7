package quiz

import (
	"testing"
	"time"

	"github.com/robalobadob/wordquest/internal/content"
)

type fakeClock struct{ now time.Time }

func newFakeClock() *fakeClock { return &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)} }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// noShuffle keeps pools in content order.
type noShuffle struct{}

func (noShuffle) Shuffle(int, func(i, j int)) {}

// reverseShuffle reverses every pool.
type reverseShuffle struct{}

func (reverseShuffle) Shuffle(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

// firstOnly reverses the first pool it is asked to shuffle and leaves the rest.
type firstOnly struct{ calls []int }

func (f *firstOnly) Shuffle(n int, swap func(i, j int)) {
	f.calls = append(f.calls, n)
	if len(f.calls) == 1 {
		reverseShuffle{}.Shuffle(n, swap)
	}
}

func testDataset() content.Dataset {
	return content.Dataset{
		Vocabulary: []content.VocabularyEntry{
			{Word: "ubiquitous", Definition: "Present, appearing, or found everywhere", Options: []string{"rare", "everywhere", "loud", "small"}, Correct: 1},
			{Word: "ephemeral", Definition: "Lasting for a very short time", Options: []string{"lasting", "brief", "heavy", "bright"}, Correct: 1},
		},
		Spelling: []content.SpellingEntry{
			{Word: "necessary", Phonetic: "/ˈnesəseri/", Difficulty: "Medium"},
			{Word: "rhythm", Phonetic: "/ˈrɪðəm/", Difficulty: "Hard"},
		},
		Grammar: []content.GrammarEntry{
			{Question: "She ___ to school every day.", Options: []string{"go", "goes", "going", "gone"}, Correct: 1, Explanation: "Third person singular takes -s."},
		},
		WordMatch: []content.MatchEntry{
			{Word: "cat", Meaning: "feline", Category: "animals"},
			{Word: "happy", Meaning: "joyful", Category: "feelings"},
			{Word: "dog", Meaning: "canine", Category: "animals"},
			{Word: "sad", Meaning: "sorrowful", Category: "feelings"},
		},
	}
}

func startTest(t *testing.T, mode Mode, clock *fakeClock) *Session {
	t.Helper()
	s, err := Start(mode, testDataset(), WithClock(clock), WithShuffler(noShuffle{}), WithID("test"))
	if err != nil {
		t.Fatalf("start %s: %v", mode, err)
	}
	return s
}
