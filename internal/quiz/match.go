// internal/quiz/match.go
//
// Match resolver for a single MatchQuestion.
// Responsibilities:
//   - Hold independently shuffled word and meaning pools.
//   - Judge pairing attempts by value against the unshuffled question.
//   - Remove a correctly paired word and its meaning slot after PairRemoval.
//   - Report resolution once both pools are empty.
//
// A MatchState is not safe for concurrent use; Session serializes access.

package quiz

import "time"

// Pairing is the latest judgment recorded for a word.
type Pairing struct {
	Meaning   string `json:"meaning"`
	IsCorrect bool   `json:"isCorrect"`
}

// PairingResult is returned from AttemptPairing.
type PairingResult struct {
	Word      string `json:"word"`
	Meaning   string `json:"meaning"`
	IsCorrect bool   `json:"isCorrect"`
}

// poolItem is one draggable word or meaning slot.
type poolItem struct {
	text     string
	matched  bool      // correctly paired, no longer a valid target
	removeAt time.Time // when a matched item leaves the pool
}

// MatchState tracks the pools and pairings of one match question.
type MatchState struct {
	question     *MatchQuestion
	clock        Clock
	removalDelay time.Duration
	words        []poolItem
	meanings     []poolItem
	pairings     map[string]Pairing
}

// NewMatchState shuffles the words and, independently, the meanings of q.
func NewMatchState(q *MatchQuestion, sh Shuffler, clock Clock, removalDelay time.Duration) *MatchState {
	if clock == nil {
		clock = SystemClock
	}
	m := &MatchState{
		question:     q,
		clock:        clock,
		removalDelay: removalDelay,
		words:        toPool(q.Words),
		meanings:     toPool(q.Meanings),
		pairings:     make(map[string]Pairing, len(q.Words)),
	}
	if sh != nil {
		sh.Shuffle(len(m.words), func(i, j int) { m.words[i], m.words[j] = m.words[j], m.words[i] })
		sh.Shuffle(len(m.meanings), func(i, j int) { m.meanings[i], m.meanings[j] = m.meanings[j], m.meanings[i] })
	}
	return m
}

func toPool(items []string) []poolItem {
	out := make([]poolItem, len(items))
	for i, s := range items {
		out[i] = poolItem{text: s}
	}
	return out
}

// Question returns the question being resolved.
func (m *MatchState) Question() *MatchQuestion { return m.question }

// AttemptPairing judges word against meaning and records the outcome.
// Incorrect attempts leave both pools untouched so the word can be retried.
func (m *MatchState) AttemptPairing(word, meaning string) (PairingResult, error) {
	m.prune()

	wi := indexOf(m.words, word)
	if wi < 0 {
		if _, ok := m.question.meaningOf(word); ok {
			return PairingResult{}, ErrWordMatched
		}
		return PairingResult{}, ErrUnknownWord
	}
	if m.words[wi].matched {
		return PairingResult{}, ErrWordMatched
	}

	mi := available(m.meanings, meaning)
	if mi < 0 {
		if m.question.hasMeaning(meaning) {
			return PairingResult{}, ErrMeaningUnavailable
		}
		return PairingResult{}, ErrUnknownMeaning
	}

	want, _ := m.question.meaningOf(word)
	correct := want == meaning
	m.pairings[word] = Pairing{Meaning: meaning, IsCorrect: correct}

	if correct {
		removeAt := m.clock.Now().Add(m.removalDelay)
		m.words[wi].matched, m.words[wi].removeAt = true, removeAt
		m.meanings[mi].matched, m.meanings[mi].removeAt = true, removeAt
		if m.removalDelay <= 0 {
			m.prune()
		}
	}
	return PairingResult{Word: word, Meaning: meaning, IsCorrect: correct}, nil
}

// indexOf returns the slot holding text, matched or not.
func indexOf(pool []poolItem, text string) int {
	for i, it := range pool {
		if it.text == text {
			return i
		}
	}
	return -1
}

// available returns the first slot holding text that is still a valid target.
func available(pool []poolItem, text string) int {
	for i, it := range pool {
		if it.text == text && !it.matched {
			return i
		}
	}
	return -1
}

// Resolved reports whether both pools have emptied.
func (m *MatchState) Resolved() bool {
	m.prune()
	return len(m.words) == 0 && len(m.meanings) == 0
}

// AllCorrect reports whether the latest judgment for every attempted word is
// correct.
func (m *MatchState) AllCorrect() bool {
	for _, p := range m.pairings {
		if !p.IsCorrect {
			return false
		}
	}
	return true
}

// RemainingWords returns the words still on the board, matched ones included
// until their removal delay has passed.
func (m *MatchState) RemainingWords() []string {
	m.prune()
	return texts(m.words)
}

// RemainingMeanings is RemainingWords for the meaning pool.
func (m *MatchState) RemainingMeanings() []string {
	m.prune()
	return texts(m.meanings)
}

// Pairings returns a copy of the recorded pairings.
func (m *MatchState) Pairings() map[string]Pairing {
	out := make(map[string]Pairing, len(m.pairings))
	for k, v := range m.pairings {
		out[k] = v
	}
	return out
}

// nextRemoval is the earliest pending removal, if any.
func (m *MatchState) nextRemoval() (time.Time, bool) {
	var next time.Time
	for _, pool := range [][]poolItem{m.words, m.meanings} {
		for _, it := range pool {
			if it.matched && (next.IsZero() || it.removeAt.Before(next)) {
				next = it.removeAt
			}
		}
	}
	return next, !next.IsZero()
}

// prune drops matched items whose removal time has come.
func (m *MatchState) prune() {
	now := m.clock.Now()
	m.words = pruneDue(m.words, now)
	m.meanings = pruneDue(m.meanings, now)
}

func pruneDue(pool []poolItem, now time.Time) []poolItem {
	out := pool[:0]
	for _, it := range pool {
		if it.matched && !now.Before(it.removeAt) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func texts(pool []poolItem) []string {
	out := make([]string, len(pool))
	for i, it := range pool {
		out[i] = it.text
	}
	return out
}
