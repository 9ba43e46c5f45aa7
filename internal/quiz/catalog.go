package quiz

// ModeInfo describes a mode for the game picker.
type ModeInfo struct {
	Mode        Mode   `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	Points      int    `json:"points"`
}

// Catalog lists every mode with its award per correct judgment.
func Catalog() []ModeInfo {
	info := map[Mode]ModeInfo{
		ModeVocabulary: {Title: "Vocabulary Quiz", Description: "Test your word knowledge with multiple choice questions", Difficulty: "Easy"},
		ModeSpelling:   {Title: "Spelling Bee", Description: "Spell words correctly after hearing them", Difficulty: "Medium"},
		ModeGrammar:    {Title: "Grammar Challenge", Description: "Fill in the blanks and correct grammar mistakes", Difficulty: "Hard"},
		ModeMatch:      {Title: "Word Match", Description: "Match words with their meanings by dragging", Difficulty: "Medium"},
	}
	out := make([]ModeInfo, 0, len(Modes))
	for _, m := range Modes {
		mi := info[m]
		mi.Mode = m
		mi.Points = m.Points()
		out = append(out, mi)
	}
	return out
}
