// internal/quiz/types.go
//
// Core type definitions for the quiz session engine.
// Defines:
//   - Mode: the four game modes and their point values.
//   - Phase: the session state machine (awaiting → settling → completed).
//   - Question variants: ChoiceQuestion, SpellingQuestion, MatchQuestion.
//   - Timings: settle/removal delays applied after a judgment.

package quiz

import (
	"fmt"
	"time"
)

// Mode selects the question shape and scoring of a session.
type Mode string

const (
	ModeVocabulary Mode = "vocabulary"
	ModeSpelling   Mode = "spelling"
	ModeGrammar    Mode = "grammar"
	ModeMatch      Mode = "match"
)

// Modes lists every supported mode in display order.
var Modes = []Mode{ModeVocabulary, ModeSpelling, ModeGrammar, ModeMatch}

// Valid reports whether m is one of the supported tags.
func (m Mode) Valid() bool {
	switch m {
	case ModeVocabulary, ModeSpelling, ModeGrammar, ModeMatch:
		return true
	}
	return false
}

// Points is the award for one correct judgment in this mode.
func (m Mode) Points() int {
	switch m {
	case ModeVocabulary, ModeGrammar:
		return 10
	case ModeSpelling:
		return 15
	case ModeMatch:
		return 12
	}
	return 0
}

// choice reports whether the mode is answered by picking an option index.
func (m Mode) choice() bool { return m == ModeVocabulary || m == ModeGrammar }

// Phase is the coarse state of a session.
type Phase string

const (
	PhaseAwaiting  Phase = "awaiting_answer"
	PhaseSettling  Phase = "settling"
	PhaseCompleted Phase = "completed"
)

// Question is one of *ChoiceQuestion, *SpellingQuestion or *MatchQuestion.
type Question interface {
	Kind() string
	Validate() error
}

// ChoiceQuestion is a multiple-choice question (vocabulary and grammar).
type ChoiceQuestion struct {
	Prompt      string
	Options     []string
	Correct     int // index into Options
	Explanation string
}

func (q *ChoiceQuestion) Kind() string { return "choice" }

// Validate checks that the correct index lies within the options.
func (q *ChoiceQuestion) Validate() error {
	if len(q.Options) == 0 {
		return fmt.Errorf("%w: choice %q has no options", ErrInvalidQuestion, q.Prompt)
	}
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return fmt.Errorf("%w: choice %q correct index %d outside %d options",
			ErrInvalidQuestion, q.Prompt, q.Correct, len(q.Options))
	}
	return nil
}

// SpellingQuestion asks the player to type Word.
type SpellingQuestion struct {
	Prompt     string
	Phonetic   string
	Hint       string
	Word       string // compared case-insensitively
	Difficulty string
}

func (q *SpellingQuestion) Kind() string { return "spelling" }

func (q *SpellingQuestion) Validate() error {
	if q.Word == "" {
		return fmt.Errorf("%w: spelling question without a word", ErrInvalidQuestion)
	}
	return nil
}

// MatchQuestion pairs Words[i] with Meanings[i] for one category.
type MatchQuestion struct {
	Category string
	Words    []string
	Meanings []string
}

func (q *MatchQuestion) Kind() string { return "match" }

// Validate enforces equal, non-zero lengths and unique words.
func (q *MatchQuestion) Validate() error {
	if len(q.Words) == 0 || len(q.Words) != len(q.Meanings) {
		return fmt.Errorf("%w: match %q has %d words and %d meanings",
			ErrInvalidQuestion, q.Category, len(q.Words), len(q.Meanings))
	}
	seen := make(map[string]struct{}, len(q.Words))
	for _, w := range q.Words {
		if _, dup := seen[w]; dup {
			return fmt.Errorf("%w: match %q repeats word %q", ErrInvalidQuestion, q.Category, w)
		}
		seen[w] = struct{}{}
	}
	return nil
}

// meaningOf returns the correct meaning for word in the original order.
func (q *MatchQuestion) meaningOf(word string) (string, bool) {
	for i, w := range q.Words {
		if w == word {
			return q.Meanings[i], true
		}
	}
	return "", false
}

func (q *MatchQuestion) hasMeaning(meaning string) bool {
	for _, m := range q.Meanings {
		if m == meaning {
			return true
		}
	}
	return false
}

// Timings are the fixed delays of the settle state machine.
type Timings struct {
	Answer        time.Duration // after a choice or spelling judgment
	PairRemoval   time.Duration // before a correctly paired word/meaning leaves its pool
	MatchComplete time.Duration // after a match question is resolved
}

// DefaultTimings mirror the pacing of the web client.
var DefaultTimings = Timings{
	Answer:        1500 * time.Millisecond,
	PairRemoval:   1000 * time.Millisecond,
	MatchComplete: 2000 * time.Millisecond,
}
