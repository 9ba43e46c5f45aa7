package quiz

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func catDog() *MatchQuestion {
	return &MatchQuestion{Category: "animals", Words: []string{"cat", "dog"}, Meanings: []string{"feline", "canine"}}
}

func TestScenarioMatchPairing(t *testing.T) {
	m := NewMatchState(catDog(), reverseShuffle{}, newFakeClock(), 0)

	res, err := m.AttemptPairing("cat", "canine")
	if err != nil || res.IsCorrect {
		t.Fatalf("expected incorrect pairing, got %+v %v", res, err)
	}
	if len(m.RemainingWords()) != 2 || len(m.RemainingMeanings()) != 2 {
		t.Fatal("incorrect pairing must not shrink the pools")
	}

	res, err = m.AttemptPairing("cat", "feline")
	if err != nil || !res.IsCorrect {
		t.Fatalf("expected correct pairing, got %+v %v", res, err)
	}
	if got := m.RemainingWords(); !reflect.DeepEqual(got, []string{"dog"}) {
		t.Errorf("expected only dog left, got %v", got)
	}
	if got := m.RemainingMeanings(); !reflect.DeepEqual(got, []string{"canine"}) {
		t.Errorf("expected only canine left, got %v", got)
	}

	if res, err := m.AttemptPairing("dog", "canine"); err != nil || !res.IsCorrect {
		t.Fatalf("expected correct pairing, got %+v %v", res, err)
	}
	if !m.Resolved() {
		t.Error("expected resolved")
	}
	if !m.AllCorrect() {
		t.Error("expected all correct")
	}
}

func TestIncorrectPairingCanBeRetried(t *testing.T) {
	m := NewMatchState(catDog(), noShuffle{}, newFakeClock(), 0)

	for i := 0; i < 3; i++ {
		if res, err := m.AttemptPairing("dog", "feline"); err != nil || res.IsCorrect {
			t.Fatalf("attempt %d: %+v %v", i, res, err)
		}
	}
	if m.AllCorrect() {
		t.Error("latest judgment for dog is incorrect")
	}
	if m.Resolved() {
		t.Error("nothing was removed")
	}
	if got := m.Pairings()["dog"]; got.Meaning != "feline" || got.IsCorrect {
		t.Errorf("unexpected pairing record %+v", got)
	}

	if res, _ := m.AttemptPairing("dog", "canine"); !res.IsCorrect {
		t.Fatal("expected retry to succeed")
	}
	if !m.AllCorrect() {
		t.Error("correct retry should overwrite the failed judgment")
	}
}

func TestAllPairsInAnyOrderResolve(t *testing.T) {
	q := &MatchQuestion{
		Category: "adjectives",
		Words:    []string{"big", "small", "fast", "slow"},
		Meanings: []string{"large", "tiny", "quick", "sluggish"},
	}
	orders := [][]int{{0, 1, 2, 3}, {3, 2, 1, 0}, {2, 0, 3, 1}}
	for _, order := range orders {
		m := NewMatchState(q, reverseShuffle{}, newFakeClock(), 0)
		for _, i := range order {
			if res, err := m.AttemptPairing(q.Words[i], q.Meanings[i]); err != nil || !res.IsCorrect {
				t.Fatalf("order %v word %q: %+v %v", order, q.Words[i], res, err)
			}
		}
		if !m.Resolved() || !m.AllCorrect() {
			t.Errorf("order %v: resolved=%v allCorrect=%v", order, m.Resolved(), m.AllCorrect())
		}
	}
}

func TestConsumedItemsAreNotProposable(t *testing.T) {
	m := NewMatchState(catDog(), noShuffle{}, newFakeClock(), 0)
	if _, err := m.AttemptPairing("cat", "feline"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name          string
		word, meaning string
		want          error
	}{
		{"consumed meaning", "dog", "feline", ErrMeaningUnavailable},
		{"matched word", "cat", "canine", ErrWordMatched},
		{"unknown word", "cow", "canine", ErrUnknownWord},
		{"unknown meaning", "dog", "bovine", ErrUnknownMeaning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.AttemptPairing(tt.word, tt.meaning); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
	if _, ok := m.Pairings()["cow"]; ok {
		t.Error("rejected attempts must not be recorded")
	}
}

func TestDuplicateMeaningsRemoveOneSlotEach(t *testing.T) {
	q := &MatchQuestion{
		Category: "synonyms",
		Words:    []string{"big", "large"},
		Meanings: []string{"of great size", "of great size"},
	}
	m := NewMatchState(q, noShuffle{}, newFakeClock(), 0)

	m.AttemptPairing("big", "of great size")
	if got := m.RemainingMeanings(); len(got) != 1 {
		t.Fatalf("expected one slot left, got %v", got)
	}
	if res, err := m.AttemptPairing("large", "of great size"); err != nil || !res.IsCorrect {
		t.Fatalf("second slot should still be a target: %+v %v", res, err)
	}
	if !m.Resolved() {
		t.Error("expected resolved")
	}
}

func TestRemovalWaitsForDelay(t *testing.T) {
	clock := newFakeClock()
	m := NewMatchState(catDog(), noShuffle{}, clock, time.Second)

	m.AttemptPairing("cat", "feline")
	if got := m.RemainingWords(); len(got) != 2 {
		t.Fatalf("matched word should stay visible during the delay, got %v", got)
	}
	if _, err := m.AttemptPairing("dog", "feline"); !errors.Is(err, ErrMeaningUnavailable) {
		t.Errorf("matched meaning must not be a target during the delay: %v", err)
	}
	if _, err := m.AttemptPairing("cat", "feline"); !errors.Is(err, ErrWordMatched) {
		t.Errorf("matched word must not be re-attempted: %v", err)
	}
	if next, ok := m.nextRemoval(); !ok || !next.Equal(clock.Now().Add(time.Second)) {
		t.Errorf("unexpected next removal %v %v", next, ok)
	}

	clock.Advance(time.Second)
	if got := m.RemainingWords(); !reflect.DeepEqual(got, []string{"dog"}) {
		t.Errorf("expected cat removed after delay, got %v", got)
	}
}

func TestPoolsShuffleIndependently(t *testing.T) {
	sh := &firstOnly{}
	q := &MatchQuestion{Category: "c", Words: []string{"a", "b", "c"}, Meanings: []string{"x", "y", "z"}}
	m := NewMatchState(q, sh, newFakeClock(), 0)

	if !reflect.DeepEqual(sh.calls, []int{3, 3}) {
		t.Fatalf("expected two shuffles of 3, got %v", sh.calls)
	}
	if got := m.RemainingWords(); !reflect.DeepEqual(got, []string{"c", "b", "a"}) {
		t.Errorf("words: %v", got)
	}
	if got := m.RemainingMeanings(); !reflect.DeepEqual(got, []string{"x", "y", "z"}) {
		t.Errorf("meanings: %v", got)
	}
	if !reflect.DeepEqual(q.Words, []string{"a", "b", "c"}) {
		t.Error("shuffling must not reorder the question")
	}

	// Positions no longer line up, judgment still goes by value.
	if res, _ := m.AttemptPairing("c", "z"); !res.IsCorrect {
		t.Error("expected c→z to be correct regardless of pool positions")
	}
}
