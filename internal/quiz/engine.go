// internal/quiz/engine.go
//
// Session engine for a single quiz run.
// Responsibilities:
//   - Build the ordered question list for a mode from a content snapshot.
//   - Judge choice, spelling and match submissions and keep the score.
//   - Drive the settle state machine: awaiting → settling → awaiting | completed.
//   - Own the MatchState of the current match question.
//
// Notes:
//   - Settling is a phase with a due time, not a callback. Due transitions are
//     applied whenever the session is next observed, so nothing can act on a
//     session after Close.
//   - All exported methods lock; a Session may be shared across goroutines.

package quiz

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/robalobadob/wordquest/internal/content"
)

// Option customizes a Session at Start.
type Option func(*Session)

// WithClock injects the time source used for settle delays.
func WithClock(c Clock) Option { return func(s *Session) { s.clock = c } }

// WithShuffler injects the permutation source for match pools.
func WithShuffler(sh Shuffler) Option { return func(s *Session) { s.shuffler = sh } }

// WithTimings overrides DefaultTimings.
func WithTimings(t Timings) Option { return func(s *Session) { s.timings = t } }

// WithLogger attaches a logger for phase transitions.
func WithLogger(l zerolog.Logger) Option { return func(s *Session) { s.log = l } }

// WithID fixes the session identifier instead of generating one.
func WithID(id string) Option { return func(s *Session) { s.id = id } }

// ChoiceResult is the judgment of a SubmitChoice call.
type ChoiceResult struct {
	IsCorrect    bool   `json:"isCorrect"`
	Explanation  string `json:"explanation,omitempty"`
	CorrectIndex int    `json:"correctIndex"`
}

// SpellingResult is the judgment of a SubmitSpelling call.
type SpellingResult struct {
	IsCorrect bool   `json:"isCorrect"`
	Expected  string `json:"expected"`
}

// Judgment is the pending result shown while a session settles.
type Judgment struct {
	IsCorrect bool   `json:"isCorrect"`
	Awarded   int    `json:"awarded"`
	Answer    string `json:"answer,omitempty"`
	Expected  string `json:"expected,omitempty"`
	// Explanation is set for choice questions that carry one.
	Explanation string `json:"explanation,omitempty"`
}

// Session holds the state of one quiz run.
type Session struct {
	mu sync.Mutex

	id        string
	mode      Mode
	questions []Question
	startedAt time.Time

	index       int
	score       int
	phase       Phase
	settleUntil time.Time
	pending     *Judgment
	match       *MatchState
	closed      bool

	clock    Clock
	shuffler Shuffler
	timings  Timings
	log      zerolog.Logger
}

// Start creates a session for mode over a read-only content snapshot.
func Start(mode Mode, ds content.Dataset, opts ...Option) (*Session, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	qs, err := BuildQuestions(mode, ds)
	if err != nil {
		return nil, err
	}
	if len(qs) == 0 {
		return nil, fmt.Errorf("%w: mode %q", ErrEmptyQuestionSet, mode)
	}

	s := &Session{
		mode:      mode,
		questions: qs,
		phase:     PhaseAwaiting,
		clock:     SystemClock,
		timings:   DefaultTimings,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	if s.shuffler == nil {
		s.shuffler = NewShuffler(0)
	}
	s.startedAt = s.clock.Now()
	s.log = s.log.With().Str("session", s.id).Str("mode", string(mode)).Logger()
	s.enterQuestion()
	s.log.Debug().Int("questions", len(qs)).Msg("session started")
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Mode returns the session's mode.
func (s *Session) Mode() Mode { return s.mode }

// Score returns the cumulative score after applying due transitions.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sync()
	return s.score
}

// Index returns the position of the current question.
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sync()
	return s.index
}

// Phase returns the state machine phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sync()
	return s.phase
}

// Completed reports whether the last question has settled.
func (s *Session) Completed() bool { return s.Phase() == PhaseCompleted }

// Pending returns the judgment currently settling, if any.
func (s *Session) Pending() (Judgment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sync()
	if s.pending == nil {
		return Judgment{}, false
	}
	return *s.pending, true
}

// CurrentQuestion returns the question awaiting (or settling) an answer.
// It reports false once the session has completed or been closed.
func (s *Session) CurrentQuestion() (Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false
	}
	s.sync()
	if s.phase == PhaseCompleted {
		return nil, false
	}
	return s.questions[s.index], true
}

// SubmitChoice judges an option index for vocabulary and grammar sessions.
func (s *Session) SubmitChoice(answerIndex int) (ChoiceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.acceptSubmission(); err != nil {
		return ChoiceResult{}, err
	}
	if !s.mode.choice() {
		return ChoiceResult{}, fmt.Errorf("%w: choice in %s session", ErrModeMismatch, s.mode)
	}
	q := s.questions[s.index].(*ChoiceQuestion)
	if answerIndex < 0 || answerIndex >= len(q.Options) {
		return ChoiceResult{}, fmt.Errorf("%w: %d of %d", ErrOptionOutOfRange, answerIndex, len(q.Options))
	}

	correct := answerIndex == q.Correct
	s.judge(correct, Judgment{
		Answer:      q.Options[answerIndex],
		Expected:    q.Options[q.Correct],
		Explanation: q.Explanation,
	}, s.timings.Answer)
	return ChoiceResult{IsCorrect: correct, Explanation: q.Explanation, CorrectIndex: q.Correct}, nil
}

// SubmitSpelling judges typed text for spelling sessions. Comparison ignores
// case only; surrounding whitespace makes an answer wrong.
func (s *Session) SubmitSpelling(text string) (SpellingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.acceptSubmission(); err != nil {
		return SpellingResult{}, err
	}
	if s.mode != ModeSpelling {
		return SpellingResult{}, fmt.Errorf("%w: spelling in %s session", ErrModeMismatch, s.mode)
	}
	q := s.questions[s.index].(*SpellingQuestion)

	correct := strings.ToLower(text) == strings.ToLower(q.Word)
	s.judge(correct, Judgment{Answer: text, Expected: q.Word}, s.timings.Answer)
	return SpellingResult{IsCorrect: correct, Expected: q.Word}, nil
}

// AttemptPairing forwards a drag-and-drop pairing to the current match
// question. Pairings are not submissions: they never enter Settling.
func (s *Session) AttemptPairing(word, meaning string) (PairingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.acceptSubmission(); err != nil {
		return PairingResult{}, err
	}
	if s.mode != ModeMatch {
		return PairingResult{}, fmt.Errorf("%w: pairing in %s session", ErrModeMismatch, s.mode)
	}
	res, err := s.match.AttemptPairing(word, meaning)
	if err != nil {
		return res, err
	}
	s.log.Debug().Str("word", word).Bool("correct", res.IsCorrect).Msg("pairing judged")
	return res, nil
}

// MatchAllCorrect reports the resolver's AllCorrect for the current question.
func (s *Session) MatchAllCorrect() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrSessionClosed
	}
	s.sync()
	if s.match == nil {
		return false, fmt.Errorf("%w: no active match question", ErrModeMismatch)
	}
	return s.match.AllCorrect(), nil
}

// SubmitMatchOutcome records the result of a resolved match question and
// awards match points when every pairing ended correct.
func (s *Session) SubmitMatchOutcome(allPairsCorrect bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.acceptSubmission(); err != nil {
		return err
	}
	if s.mode != ModeMatch {
		return fmt.Errorf("%w: match outcome in %s session", ErrModeMismatch, s.mode)
	}
	if !s.match.Resolved() {
		return ErrMatchUnresolved
	}
	s.judge(allPairsCorrect, Judgment{}, s.timings.MatchComplete)
	return nil
}

// Close discards the session. Pending transitions are dropped and every later
// call fails with ErrSessionClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.pending = nil
	s.match = nil
	s.log.Debug().Msg("session closed")
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// acceptSubmission applies due transitions and checks that the session can
// take an answer for the current question.
func (s *Session) acceptSubmission() error {
	if s.closed {
		return ErrSessionClosed
	}
	s.sync()
	switch s.phase {
	case PhaseCompleted:
		return ErrSessionCompleted
	case PhaseSettling:
		return ErrAlreadyAnswered
	}
	return nil
}

// judge updates the score and enters Settling for delay.
func (s *Session) judge(correct bool, j Judgment, delay time.Duration) {
	j.IsCorrect = correct
	if correct {
		j.Awarded = s.mode.Points()
		s.score += j.Awarded
	}
	s.pending = &j
	s.phase = PhaseSettling
	s.settleUntil = s.clock.Now().Add(delay)
	s.log.Debug().Int("index", s.index).Bool("correct", correct).Int("score", s.score).Msg("answer judged")
}

// sync applies a settle transition whose due time has passed.
func (s *Session) sync() {
	if s.closed || s.phase != PhaseSettling {
		return
	}
	if s.clock.Now().Before(s.settleUntil) {
		return
	}
	s.pending = nil
	if s.index >= len(s.questions)-1 {
		s.phase = PhaseCompleted
		s.match = nil
		s.log.Debug().Int("score", s.score).Msg("session completed")
		return
	}
	s.index++
	s.phase = PhaseAwaiting
	s.enterQuestion()
}

// enterQuestion prepares per-question state for the current index.
func (s *Session) enterQuestion() {
	s.match = nil
	if mq, ok := s.questions[s.index].(*MatchQuestion); ok {
		s.match = NewMatchState(mq, s.shuffler, s.clock, s.timings.PairRemoval)
	}
}
