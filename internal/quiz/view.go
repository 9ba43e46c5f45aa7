package quiz

import "time"

// View is a render-ready snapshot of a session.
type View struct {
	ID        string  `json:"id"`
	Mode      Mode    `json:"mode"`
	Phase     Phase   `json:"phase"`
	Index     int     `json:"index"`
	Total     int     `json:"total"`
	Progress  float64 `json:"progress"` // percent, counts the current question
	Score     int     `json:"score"`
	Completed bool    `json:"completed"`

	Question *QuestionView `json:"question,omitempty"`
	Pending  *Judgment     `json:"pending,omitempty"`
	Match    *MatchView    `json:"match,omitempty"`

	// NextTransitionMs is how long until the view changes on its own.
	NextTransitionMs int64 `json:"nextTransitionMs,omitempty"`
}

// QuestionView omits answers.
type QuestionView struct {
	Kind     string   `json:"kind"`
	Prompt   string   `json:"prompt,omitempty"`
	Options  []string `json:"options,omitempty"`
	Hint     string   `json:"hint,omitempty"`
	Phonetic string   `json:"phonetic,omitempty"`
	Category string   `json:"category,omitempty"`
}

// MatchView exposes the board of the current match question.
type MatchView struct {
	Words      []PoolItem         `json:"words"`
	Meanings   []PoolItem         `json:"meanings"`
	Pairings   map[string]Pairing `json:"pairings"`
	Resolved   bool               `json:"resolved"`
	AllCorrect bool               `json:"allCorrect"`
}

// PoolItem is one draggable entry; Matched items are about to disappear.
type PoolItem struct {
	Text    string `json:"text"`
	Matched bool   `json:"matched,omitempty"`
}

// View renders the session after applying due transitions.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.sync()
	}

	v := View{
		ID:        s.id,
		Mode:      s.mode,
		Phase:     s.phase,
		Index:     s.index,
		Total:     len(s.questions),
		Progress:  float64(s.index+1) / float64(len(s.questions)) * 100,
		Score:     s.score,
		Completed: s.phase == PhaseCompleted,
	}
	if s.closed || v.Completed {
		return v
	}

	v.Question = questionView(s.questions[s.index])
	if s.pending != nil {
		p := *s.pending
		v.Pending = &p
	}

	now := s.clock.Now()
	var next time.Time
	if s.phase == PhaseSettling {
		next = s.settleUntil
	}
	if s.match != nil {
		v.Match = matchView(s.match)
		if t, ok := s.match.nextRemoval(); ok && (next.IsZero() || t.Before(next)) {
			next = t
		}
	}
	if !next.IsZero() && next.After(now) {
		v.NextTransitionMs = next.Sub(now).Milliseconds()
	}
	return v
}

func questionView(q Question) *QuestionView {
	switch q := q.(type) {
	case *ChoiceQuestion:
		return &QuestionView{Kind: q.Kind(), Prompt: q.Prompt, Options: append([]string(nil), q.Options...)}
	case *SpellingQuestion:
		return &QuestionView{Kind: q.Kind(), Prompt: q.Prompt, Hint: q.Hint, Phonetic: q.Phonetic}
	case *MatchQuestion:
		return &QuestionView{Kind: q.Kind(), Prompt: "Match each word with its meaning", Category: q.Category}
	}
	return nil
}

func matchView(m *MatchState) *MatchView {
	m.prune()
	return &MatchView{
		Words:      poolView(m.words),
		Meanings:   poolView(m.meanings),
		Pairings:   m.Pairings(),
		Resolved:   len(m.words) == 0 && len(m.meanings) == 0,
		AllCorrect: m.AllCorrect(),
	}
}

func poolView(pool []poolItem) []PoolItem {
	out := make([]PoolItem, len(pool))
	for i, it := range pool {
		out[i] = PoolItem{Text: it.text, Matched: it.matched}
	}
	return out
}
