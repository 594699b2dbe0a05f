package manifest

import (
	"errors"
	"os"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"blank lines", "\n\n  \n", nil},
		{"single entry", "- agents/a.agent.marks\n", []string{"agents/a.agent.marks"}},
		{
			name: "order and duplicates kept",
			text: "- b\n- a\n- b\n",
			want: []string{"b", "a", "b"},
		},
		{
			name: "non-entry lines skipped",
			text: "# Root manifest\nagents:\n- agents/a.agent.marks\n* not an entry\n-missing-space\n",
			want: []string{"agents/a.agent.marks"},
		},
		{
			name: "surrounding whitespace trimmed",
			text: "   -    tools/t.tool.marks   \r\n\t- x\n",
			want: []string{"tools/t.tool.marks", "x"},
		},
		{"bare dash space", "- \n", []string{""}},
		{"bare dash", "-\n", nil},
		{"no trailing newline", "- last", []string{"last"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Parse() = %q, want %q", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("entry[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEntriesStopsEarly(t *testing.T) {
	var seen []string
	for e := range Entries("- a\n- b\n- c\n") {
		seen = append(seen, e)
		if e == "b" {
			break
		}
	}
	if len(seen) != 2 {
		t.Errorf("iterated %v, want to stop after b", seen)
	}
}

func TestReadFile(t *testing.T) {
	fs := memfs.New()
	if err := util.WriteFile(fs, ".mark/mark.mstp", []byte("- agents/a.agent.marks\n- notes.txt\n"), 0644); err != nil {
		t.Fatal(err)
	}

	entries, err := ReadFile(fs, ".mark/mark.mstp")
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if len(entries) != 2 || entries[0] != "agents/a.agent.marks" || entries[1] != "notes.txt" {
		t.Errorf("ReadFile() = %q", entries)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(memfs.New(), "missing.mstp")
	if err == nil {
		t.Fatal("expected error for missing manifest")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist, got: %v", err)
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		entry  string
		want   Category
		wantOK bool
	}{
		{"agents/a.agent.marks", Agent, true},
		{"agent.marks", Agent, true},
		{"tools/t.tool.marks", Tool, true},
		{"tools/t.tool.marks.bak", "", false},
		{"notes.txt", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := CategoryOf(tt.entry)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("CategoryOf(%q) = (%q, %v), want (%q, %v)", tt.entry, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSuffix(t *testing.T) {
	if Agent.Suffix() != "agent.marks" {
		t.Errorf("Agent.Suffix() = %q", Agent.Suffix())
	}
	if Tool.Suffix() != "tool.marks" {
		t.Errorf("Tool.Suffix() = %q", Tool.Suffix())
	}
}
