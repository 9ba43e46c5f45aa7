// internal/content/dataset.go
//
// Raw question records as supplied by a content source.
// The quiz engine turns a Dataset snapshot into questions at session start;
// this package only guarantees the records are well formed.
//
// JSON shape (matches the web client's data file):
//
//	{
//	  "vocabulary": [{"word","definition","options":[...],"correct"}],
//	  "spelling":   [{"word","phonetic","difficulty"}],
//	  "grammar":    [{"question","options":[...],"correct","explanation"}],
//	  "wordMatch":  [{"word","meaning","category"}]
//	}

package content

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Dataset is a read-only snapshot of every question record.
type Dataset struct {
	Vocabulary []VocabularyEntry `json:"vocabulary"`
	Spelling   []SpellingEntry   `json:"spelling"`
	Grammar    []GrammarEntry    `json:"grammar"`
	WordMatch  []MatchEntry      `json:"wordMatch"`
}

type VocabularyEntry struct {
	Word       string     `json:"word" db:"word"`
	Definition string     `json:"definition" db:"definition"`
	Options    StringList `json:"options" db:"options"`
	Correct    int        `json:"correct" db:"correct"`
}

type SpellingEntry struct {
	Word       string `json:"word" db:"word"`
	Phonetic   string `json:"phonetic" db:"phonetic"`
	Difficulty string `json:"difficulty" db:"difficulty"`
}

type GrammarEntry struct {
	Question    string     `json:"question" db:"question"`
	Options     StringList `json:"options" db:"options"`
	Correct     int        `json:"correct" db:"correct"`
	Explanation string     `json:"explanation" db:"explanation"`
}

// MatchEntry is one (word, meaning, category) triple.
type MatchEntry struct {
	Word     string `json:"word" db:"word"`
	Meaning  string `json:"meaning" db:"meaning"`
	Category string `json:"category" db:"category"`
}

// StringList is stored as a JSON array in SQL columns.
type StringList []string

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("content: cannot scan %T into StringList", src)
	}
	return json.Unmarshal(raw, (*[]string)(l))
}

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Size is the total number of records across all sections.
func (d Dataset) Size() int {
	return len(d.Vocabulary) + len(d.Spelling) + len(d.Grammar) + len(d.WordMatch)
}

// Validate reports every malformed record. Empty sections are allowed;
// the engine rejects a session whose mode ends up with no questions.
func (d Dataset) Validate() error {
	var errs []error
	for i, v := range d.Vocabulary {
		if strings.TrimSpace(v.Word) == "" {
			errs = append(errs, fmt.Errorf("vocabulary[%d]: empty word", i))
		}
		if err := checkOptions(v.Options, v.Correct); err != nil {
			errs = append(errs, fmt.Errorf("vocabulary[%d] %q: %w", i, v.Word, err))
		}
	}
	for i, s := range d.Spelling {
		if strings.TrimSpace(s.Word) == "" {
			errs = append(errs, fmt.Errorf("spelling[%d]: empty word", i))
		}
	}
	for i, g := range d.Grammar {
		if strings.TrimSpace(g.Question) == "" {
			errs = append(errs, fmt.Errorf("grammar[%d]: empty question", i))
		}
		if err := checkOptions(g.Options, g.Correct); err != nil {
			errs = append(errs, fmt.Errorf("grammar[%d]: %w", i, err))
		}
	}
	seen := make(map[string]struct{})
	for i, m := range d.WordMatch {
		if m.Word == "" || m.Meaning == "" || m.Category == "" {
			errs = append(errs, fmt.Errorf("wordMatch[%d]: incomplete triple", i))
			continue
		}
		key := m.Category + "\x00" + m.Word
		if _, dup := seen[key]; dup {
			errs = append(errs, fmt.Errorf("wordMatch[%d]: duplicate word %q in category %q", i, m.Word, m.Category))
		}
		seen[key] = struct{}{}
	}
	return errors.Join(errs...)
}

func checkOptions(opts []string, correct int) error {
	if len(opts) < 2 {
		return fmt.Errorf("need at least 2 options, got %d", len(opts))
	}
	if correct < 0 || correct >= len(opts) {
		return fmt.Errorf("correct index %d out of range", correct)
	}
	return nil
}
