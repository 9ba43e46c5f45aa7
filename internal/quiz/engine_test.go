package quiz

import (
	"errors"
	"testing"
	"time"

	"github.com/robalobadob/wordquest/internal/content"
)

func TestStartErrors(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		ds   content.Dataset
		want error
	}{
		{"unknown mode", Mode("trivia"), testDataset(), ErrUnknownMode},
		{"empty mode tag", Mode(""), testDataset(), ErrUnknownMode},
		{"empty vocabulary", ModeVocabulary, content.Dataset{}, ErrEmptyQuestionSet},
		{"empty match", ModeMatch, content.Dataset{Vocabulary: testDataset().Vocabulary}, ErrEmptyQuestionSet},
		{"correct out of range", ModeGrammar, content.Dataset{Grammar: []content.GrammarEntry{
			{Question: "q", Options: []string{"a", "b"}, Correct: 2},
		}}, ErrInvalidQuestion},
		{"duplicate match word", ModeMatch, content.Dataset{WordMatch: []content.MatchEntry{
			{Word: "cat", Meaning: "feline", Category: "a"},
			{Word: "cat", Meaning: "kitty", Category: "a"},
		}}, ErrInvalidQuestion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Start(tt.mode, tt.ds)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if s != nil {
				t.Error("expected no session on error")
			}
		})
	}
}

func TestStartGroupsMatchTriplesByCategory(t *testing.T) {
	s := startTest(t, ModeMatch, newFakeClock())

	if got := len(s.questions); got != 2 {
		t.Fatalf("expected 2 match questions, got %d", got)
	}
	animals := s.questions[0].(*MatchQuestion)
	feelings := s.questions[1].(*MatchQuestion)
	if animals.Category != "animals" || feelings.Category != "feelings" {
		t.Fatalf("unexpected category order: %q, %q", animals.Category, feelings.Category)
	}
	if animals.Words[0] != "cat" || animals.Words[1] != "dog" || animals.Meanings[1] != "canine" {
		t.Errorf("animals not grouped in order: %v / %v", animals.Words, animals.Meanings)
	}
}

func TestSubmitChoiceJudgesByIndex(t *testing.T) {
	for i := 0; i < 4; i++ {
		s := startTest(t, ModeVocabulary, newFakeClock())
		res, err := s.SubmitChoice(i)
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		want := i == 1
		if res.IsCorrect != want {
			t.Errorf("option %d: expected isCorrect=%v", i, want)
		}
		wantScore := 0
		if want {
			wantScore = 10
		}
		if got := s.Score(); got != wantScore {
			t.Errorf("option %d: expected score %d, got %d", i, wantScore, got)
		}
	}
}

func TestScenarioVocabularyCorrect(t *testing.T) {
	s := startTest(t, ModeVocabulary, newFakeClock())

	q, ok := s.CurrentQuestion()
	if !ok {
		t.Fatal("expected a current question")
	}
	if got := q.(*ChoiceQuestion).Prompt; got != "What does 'ubiquitous' mean?" {
		t.Errorf("unexpected prompt %q", got)
	}

	res, err := s.SubmitChoice(1)
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsCorrect || res.CorrectIndex != 1 {
		t.Errorf("expected correct judgment, got %+v", res)
	}
	if res.Explanation == "" {
		t.Error("expected explanation")
	}
	if s.Score() != 10 {
		t.Errorf("expected score 10, got %d", s.Score())
	}
}

func TestGrammarAwardsTenPoints(t *testing.T) {
	s := startTest(t, ModeGrammar, newFakeClock())
	if _, err := s.SubmitChoice(1); err != nil {
		t.Fatal(err)
	}
	if s.Score() != 10 {
		t.Errorf("expected 10, got %d", s.Score())
	}
}

func TestSubmitWhileSettlingIsRejected(t *testing.T) {
	clock := newFakeClock()
	s := startTest(t, ModeVocabulary, clock)

	if _, err := s.SubmitChoice(1); err != nil {
		t.Fatal(err)
	}
	clock.Advance(DefaultTimings.Answer - time.Millisecond)

	if _, err := s.SubmitChoice(1); !errors.Is(err, ErrAlreadyAnswered) {
		t.Fatalf("expected ErrAlreadyAnswered, got %v", err)
	}
	if s.Score() != 10 {
		t.Errorf("duplicate changed score to %d", s.Score())
	}
	if s.Index() != 0 {
		t.Errorf("duplicate moved index to %d", s.Index())
	}
	if p, ok := s.Pending(); !ok || !p.IsCorrect || p.Awarded != 10 {
		t.Errorf("expected pending correct judgment, got %+v %v", p, ok)
	}
}

func TestSettleAdvancesThenCompletes(t *testing.T) {
	clock := newFakeClock()
	s := startTest(t, ModeVocabulary, clock)

	if _, err := s.SubmitChoice(0); err != nil {
		t.Fatal(err)
	}
	clock.Advance(DefaultTimings.Answer - time.Millisecond)
	if s.Phase() != PhaseSettling || s.Index() != 0 {
		t.Fatalf("advanced early: phase=%s index=%d", s.Phase(), s.Index())
	}

	clock.Advance(time.Millisecond)
	if s.Phase() != PhaseAwaiting || s.Index() != 1 {
		t.Fatalf("expected awaiting at 1, got %s at %d", s.Phase(), s.Index())
	}
	if _, ok := s.Pending(); ok {
		t.Error("pending judgment should clear on advance")
	}

	if _, err := s.SubmitChoice(1); err != nil {
		t.Fatal(err)
	}
	if s.Completed() {
		t.Fatal("completed before the last settle elapsed")
	}
	clock.Advance(DefaultTimings.Answer)

	if !s.Completed() {
		t.Fatal("expected completion after last settle")
	}
	if s.Index() != 1 {
		t.Errorf("index moved past last question: %d", s.Index())
	}
	if _, ok := s.CurrentQuestion(); ok {
		t.Error("expected no current question once completed")
	}
	if _, err := s.SubmitChoice(1); !errors.Is(err, ErrSessionCompleted) {
		t.Errorf("expected ErrSessionCompleted, got %v", err)
	}
	if s.Score() != 10 {
		t.Errorf("expected final score 10, got %d", s.Score())
	}
}

func TestSpellingComparison(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"necessary", true},
		{"Necessary", true},
		{"NECESSARY", true},
		{"NeCeSsArY", true},
		{"neccessary", false},
		{"necessary ", false},
		{" necessary", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			s := startTest(t, ModeSpelling, newFakeClock())
			res, err := s.SubmitSpelling(tt.text)
			if err != nil {
				t.Fatal(err)
			}
			if res.IsCorrect != tt.want {
				t.Errorf("%q: expected isCorrect=%v", tt.text, tt.want)
			}
			if res.Expected != "necessary" {
				t.Errorf("expected word to be reported, got %q", res.Expected)
			}
			wantScore := 0
			if tt.want {
				wantScore = 15
			}
			if s.Score() != wantScore {
				t.Errorf("expected score %d, got %d", wantScore, s.Score())
			}
		})
	}
}

func TestScenarioSpelling(t *testing.T) {
	clock := newFakeClock()
	ds := content.Dataset{Spelling: []content.SpellingEntry{
		{Word: "necessary", Difficulty: "Medium"},
		{Word: "necessary", Difficulty: "Medium"},
	}}
	s, err := Start(ModeSpelling, ds, WithClock(clock))
	if err != nil {
		t.Fatal(err)
	}

	res, err := s.SubmitSpelling("neccessary")
	if err != nil || res.IsCorrect {
		t.Fatalf("expected incorrect judgment, got %+v %v", res, err)
	}
	clock.Advance(DefaultTimings.Answer)

	res, err = s.SubmitSpelling("Necessary")
	if err != nil || !res.IsCorrect {
		t.Fatalf("expected correct judgment, got %+v %v", res, err)
	}
	if s.Score() != 15 {
		t.Errorf("expected score 15, got %d", s.Score())
	}
}

func TestPreconditionViolations(t *testing.T) {
	s := startTest(t, ModeVocabulary, newFakeClock())

	if _, err := s.SubmitSpelling("x"); !errors.Is(err, ErrModeMismatch) {
		t.Errorf("spelling on vocabulary: %v", err)
	}
	if _, err := s.AttemptPairing("cat", "feline"); !errors.Is(err, ErrModeMismatch) {
		t.Errorf("pairing on vocabulary: %v", err)
	}
	if err := s.SubmitMatchOutcome(true); !errors.Is(err, ErrModeMismatch) {
		t.Errorf("match outcome on vocabulary: %v", err)
	}
	for _, i := range []int{-1, 4} {
		if _, err := s.SubmitChoice(i); !errors.Is(err, ErrOptionOutOfRange) {
			t.Errorf("option %d: %v", i, err)
		}
	}
	if s.Phase() != PhaseAwaiting {
		t.Errorf("violations must not change phase, got %s", s.Phase())
	}

	sp := startTest(t, ModeSpelling, newFakeClock())
	if _, err := sp.SubmitChoice(0); !errors.Is(err, ErrModeMismatch) {
		t.Errorf("choice on spelling: %v", err)
	}
}

func TestMatchSessionFlow(t *testing.T) {
	clock := newFakeClock()
	s := startTest(t, ModeMatch, clock)

	res, err := s.AttemptPairing("cat", "canine")
	if err != nil || res.IsCorrect {
		t.Fatalf("expected incorrect pairing, got %+v %v", res, err)
	}
	if err := s.SubmitMatchOutcome(true); !errors.Is(err, ErrMatchUnresolved) {
		t.Fatalf("expected ErrMatchUnresolved, got %v", err)
	}

	for _, p := range [][2]string{{"cat", "feline"}, {"dog", "canine"}} {
		if res, err := s.AttemptPairing(p[0], p[1]); err != nil || !res.IsCorrect {
			t.Fatalf("pair %v: %+v %v", p, res, err)
		}
	}
	if err := s.SubmitMatchOutcome(true); !errors.Is(err, ErrMatchUnresolved) {
		t.Fatalf("resolved before removal delay: %v", err)
	}
	clock.Advance(DefaultTimings.PairRemoval)

	all, err := s.MatchAllCorrect()
	if err != nil || !all {
		t.Fatalf("expected all correct, got %v %v", all, err)
	}
	if err := s.SubmitMatchOutcome(all); err != nil {
		t.Fatal(err)
	}
	if s.Score() != 12 {
		t.Errorf("expected 12, got %d", s.Score())
	}
	if err := s.SubmitMatchOutcome(all); !errors.Is(err, ErrAlreadyAnswered) {
		t.Errorf("expected duplicate outcome to be rejected, got %v", err)
	}

	clock.Advance(DefaultTimings.Answer)
	if s.Index() != 0 {
		t.Fatal("match settle must use the longer delay")
	}
	clock.Advance(DefaultTimings.MatchComplete - DefaultTimings.Answer)

	q, ok := s.CurrentQuestion()
	if !ok || q.(*MatchQuestion).Category != "feelings" {
		t.Fatalf("expected feelings question, got %v %v", q, ok)
	}
	v := s.View()
	if v.Match == nil || len(v.Match.Words) != 2 || len(v.Match.Pairings) != 0 {
		t.Errorf("expected a fresh board, got %+v", v.Match)
	}
}

func TestMatchOutcomeWithoutPerfectRound(t *testing.T) {
	clock := newFakeClock()
	s := startTest(t, ModeMatch, clock)
	s.AttemptPairing("cat", "feline")
	s.AttemptPairing("dog", "canine")
	clock.Advance(DefaultTimings.PairRemoval)

	if err := s.SubmitMatchOutcome(false); err != nil {
		t.Fatal(err)
	}
	if s.Score() != 0 {
		t.Errorf("expected no award, got %d", s.Score())
	}
}

func TestClosedSessionIgnoresDueTransitions(t *testing.T) {
	clock := newFakeClock()
	s := startTest(t, ModeVocabulary, clock)

	if _, err := s.SubmitChoice(1); err != nil {
		t.Fatal(err)
	}
	s.Close()
	clock.Advance(time.Hour)

	if s.Index() != 0 || s.Phase() != PhaseSettling {
		t.Errorf("closed session advanced: index=%d phase=%s", s.Index(), s.Phase())
	}
	if _, err := s.SubmitChoice(1); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed, got %v", err)
	}
	if _, ok := s.CurrentQuestion(); ok {
		t.Error("closed session should expose no question")
	}
	if !s.Closed() {
		t.Error("expected Closed() to report true")
	}
	s.Close()
}

func TestViewHidesAnswersAndTracksProgress(t *testing.T) {
	clock := newFakeClock()
	s := startTest(t, ModeVocabulary, clock)

	v := s.View()
	if v.Total != 2 || v.Progress != 50 || v.Phase != PhaseAwaiting {
		t.Fatalf("unexpected view: %+v", v)
	}
	if v.Question == nil || len(v.Question.Options) != 4 || v.Question.Kind != "choice" {
		t.Fatalf("unexpected question view: %+v", v.Question)
	}

	s.SubmitChoice(2)
	clock.Advance(500 * time.Millisecond)
	v = s.View()
	if v.Pending == nil || v.Pending.IsCorrect || v.Pending.Expected != "everywhere" {
		t.Errorf("unexpected pending: %+v", v.Pending)
	}
	if v.NextTransitionMs != 1000 {
		t.Errorf("expected 1000ms to next transition, got %d", v.NextTransitionMs)
	}

	clock.Advance(time.Second)
	s.SubmitChoice(1)
	clock.Advance(DefaultTimings.Answer)
	v = s.View()
	if !v.Completed || v.Question != nil || v.Score != 10 {
		t.Errorf("unexpected final view: %+v", v)
	}
}

func TestCatalogPoints(t *testing.T) {
	want := map[Mode]int{ModeVocabulary: 10, ModeSpelling: 15, ModeGrammar: 10, ModeMatch: 12}
	cat := Catalog()
	if len(cat) != len(want) {
		t.Fatalf("expected %d modes, got %d", len(want), len(cat))
	}
	for _, mi := range cat {
		if mi.Points != want[mi.Mode] || mi.Title == "" {
			t.Errorf("unexpected catalog entry %+v", mi)
		}
	}
}
