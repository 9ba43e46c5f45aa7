package content

import (
	"context"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		ds      Dataset
		wantErr string
	}{
		{name: "empty dataset", ds: Dataset{}},
		{
			name: "valid records",
			ds: Dataset{
				Vocabulary: []VocabularyEntry{{Word: "terse", Options: StringList{"brief", "long"}, Correct: 0}},
				Spelling:   []SpellingEntry{{Word: "rhythm"}},
				WordMatch:  []MatchEntry{{Word: "glad", Meaning: "happy", Category: "feelings"}},
			},
		},
		{
			name:    "correct index out of range",
			ds:      Dataset{Grammar: []GrammarEntry{{Question: "Pick one", Options: StringList{"a", "b"}, Correct: 2}}},
			wantErr: "grammar[0]: correct index 2 out of range",
		},
		{
			name:    "too few options",
			ds:      Dataset{Vocabulary: []VocabularyEntry{{Word: "x", Options: StringList{"only"}}}},
			wantErr: "need at least 2 options",
		},
		{
			name:    "blank spelling word",
			ds:      Dataset{Spelling: []SpellingEntry{{Word: "  "}}},
			wantErr: "spelling[0]: empty word",
		},
		{
			name: "duplicate match word in a category",
			ds: Dataset{WordMatch: []MatchEntry{
				{Word: "glad", Meaning: "happy", Category: "feelings"},
				{Word: "glad", Meaning: "pleased", Category: "feelings"},
			}},
			wantErr: `duplicate word "glad"`,
		},
		{
			name:    "incomplete triple",
			ds:      Dataset{WordMatch: []MatchEntry{{Word: "glad", Category: "feelings"}}},
			wantErr: "incomplete triple",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ds.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestStringListScan(t *testing.T) {
	var l StringList
	if err := l.Scan(`["a","b"]`); err != nil {
		t.Fatal(err)
	}
	if len(l) != 2 || l[1] != "b" {
		t.Fatalf("got %v", l)
	}
	if err := l.Scan([]byte(`["c"]`)); err != nil || len(l) != 1 {
		t.Fatalf("scan bytes: %v %v", l, err)
	}
	if err := l.Scan(42); err == nil {
		t.Fatal("expected error scanning int")
	}
}

func TestEmbeddedDatasetIsValid(t *testing.T) {
	ds, err := EmbeddedSource{}.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if err := ds.Validate(); err != nil {
		t.Fatal(err)
	}
	if len(ds.Vocabulary) == 0 || len(ds.Spelling) == 0 || len(ds.Grammar) == 0 || len(ds.WordMatch) == 0 {
		t.Fatalf("embedded dataset has an empty section: %+v", ds)
	}
	if ds.Vocabulary[0].Word != "ubiquitous" {
		t.Errorf("first vocabulary word = %q", ds.Vocabulary[0].Word)
	}
}
