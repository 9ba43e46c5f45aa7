package quiz

import (
	"fmt"

	"github.com/robalobadob/wordquest/internal/content"
)

// BuildQuestions turns a content snapshot into the ordered question list for
// mode. Match triples are collapsed into one question per category, in order
// of each category's first appearance.
func BuildQuestions(mode Mode, ds content.Dataset) ([]Question, error) {
	var out []Question
	switch mode {
	case ModeVocabulary:
		for _, v := range ds.Vocabulary {
			out = append(out, &ChoiceQuestion{
				Prompt:      fmt.Sprintf("What does '%s' mean?", v.Word),
				Options:     append([]string(nil), v.Options...),
				Correct:     v.Correct,
				Explanation: v.Definition,
			})
		}
	case ModeGrammar:
		for _, g := range ds.Grammar {
			out = append(out, &ChoiceQuestion{
				Prompt:      g.Question,
				Options:     append([]string(nil), g.Options...),
				Correct:     g.Correct,
				Explanation: g.Explanation,
			})
		}
	case ModeSpelling:
		for _, s := range ds.Spelling {
			out = append(out, &SpellingQuestion{
				Prompt:     fmt.Sprintf("Spell the word: '%s'", s.Word),
				Phonetic:   s.Phonetic,
				Hint:       "Difficulty: " + s.Difficulty,
				Word:       s.Word,
				Difficulty: s.Difficulty,
			})
		}
	case ModeMatch:
		byCategory := make(map[string]*MatchQuestion)
		for _, m := range ds.WordMatch {
			q, ok := byCategory[m.Category]
			if !ok {
				q = &MatchQuestion{Category: m.Category}
				byCategory[m.Category] = q
				out = append(out, q)
			}
			q.Words = append(q.Words, m.Word)
			q.Meanings = append(q.Meanings, m.Meaning)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	for i, q := range out {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
	}
	return out, nil
}
