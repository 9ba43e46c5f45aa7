package content

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet names and column layouts of a content workbook. Row 1 is a header.
//
//	vocabulary: word | definition | options (a|b|c) | correct
//	spelling:   word | phonetic | difficulty
//	grammar:    question | options (a|b|c) | correct | explanation
//	wordMatch:  word | meaning | category
const (
	SheetVocabulary = "vocabulary"
	SheetSpelling   = "spelling"
	SheetGrammar    = "grammar"
	SheetWordMatch  = "wordMatch"

	optionSep = "|"
)

// WorkbookSource reads an xlsx workbook. Missing sheets yield empty sections.
type WorkbookSource struct {
	Path string
}

func (w WorkbookSource) Name() string { return "xlsx:" + w.Path }

func (w WorkbookSource) Load(ctx context.Context) (Dataset, error) {
	f, err := excelize.OpenFile(w.Path)
	if err != nil {
		return Dataset{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := make(map[string]bool)
	for _, name := range f.GetSheetList() {
		sheets[name] = true
	}
	rows := func(sheet string) ([][]string, error) {
		if !sheets[sheet] {
			return nil, nil
		}
		all, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		if len(all) > 0 {
			all = all[1:]
		}
		return all, nil
	}

	var ds Dataset
	vocab, err := rows(SheetVocabulary)
	if err != nil {
		return Dataset{}, err
	}
	for i, r := range vocab {
		if blank(r) {
			continue
		}
		correct, err := atoi(cell(r, 3))
		if err != nil {
			return Dataset{}, fmt.Errorf("%s row %d: %w", SheetVocabulary, i+2, err)
		}
		ds.Vocabulary = append(ds.Vocabulary, VocabularyEntry{
			Word:       cell(r, 0),
			Definition: cell(r, 1),
			Options:    splitOptions(cell(r, 2)),
			Correct:    correct,
		})
	}

	spelling, err := rows(SheetSpelling)
	if err != nil {
		return Dataset{}, err
	}
	for _, r := range spelling {
		if blank(r) {
			continue
		}
		ds.Spelling = append(ds.Spelling, SpellingEntry{Word: cell(r, 0), Phonetic: cell(r, 1), Difficulty: cell(r, 2)})
	}

	grammar, err := rows(SheetGrammar)
	if err != nil {
		return Dataset{}, err
	}
	for i, r := range grammar {
		if blank(r) {
			continue
		}
		correct, err := atoi(cell(r, 2))
		if err != nil {
			return Dataset{}, fmt.Errorf("%s row %d: %w", SheetGrammar, i+2, err)
		}
		ds.Grammar = append(ds.Grammar, GrammarEntry{
			Question:    cell(r, 0),
			Options:     splitOptions(cell(r, 1)),
			Correct:     correct,
			Explanation: cell(r, 3),
		})
	}

	match, err := rows(SheetWordMatch)
	if err != nil {
		return Dataset{}, err
	}
	for _, r := range match {
		if blank(r) {
			continue
		}
		ds.WordMatch = append(ds.WordMatch, MatchEntry{Word: cell(r, 0), Meaning: cell(r, 1), Category: cell(r, 2)})
	}
	return ds, nil
}

// ExportWorkbook writes ds in the layout WorkbookSource reads.
func ExportWorkbook(path string, ds Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	write := func(sheet string, header []any, rows [][]any) error {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		for i, row := range append([][]any{header}, rows...) {
			addr, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet, addr, &row); err != nil {
				return err
			}
		}
		return nil
	}

	var vocab, spelling, grammar, match [][]any
	for _, v := range ds.Vocabulary {
		vocab = append(vocab, []any{v.Word, v.Definition, strings.Join(v.Options, optionSep), v.Correct})
	}
	for _, s := range ds.Spelling {
		spelling = append(spelling, []any{s.Word, s.Phonetic, s.Difficulty})
	}
	for _, g := range ds.Grammar {
		grammar = append(grammar, []any{g.Question, strings.Join(g.Options, optionSep), g.Correct, g.Explanation})
	}
	for _, m := range ds.WordMatch {
		match = append(match, []any{m.Word, m.Meaning, m.Category})
	}

	if err := write(SheetVocabulary, []any{"word", "definition", "options", "correct"}, vocab); err != nil {
		return err
	}
	if err := write(SheetSpelling, []any{"word", "phonetic", "difficulty"}, spelling); err != nil {
		return err
	}
	if err := write(SheetGrammar, []any{"question", "options", "correct", "explanation"}, grammar); err != nil {
		return err
	}
	if err := write(SheetWordMatch, []any{"word", "meaning", "category"}, match); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func atoi(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("correct index %q: %w", s, err)
	}
	return n, nil
}

func splitOptions(s string) StringList {
	var out StringList
	for _, o := range strings.Split(s, optionSep) {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
