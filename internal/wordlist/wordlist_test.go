package wordlist

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/abhisek/spellz/internal/drill"
)

func TestDefault(t *testing.T) {
	words := Default()
	if len(words) < DefaultCount {
		t.Fatalf("bundled list has %d words", len(words))
	}
	if err := drill.ValidateWords(words); err != nil {
		t.Fatalf("bundled list invalid: %v", err)
	}
}

func TestParse(t *testing.T) {
	words, err := Parse(strings.NewReader("# animals\n  Cat\n\nDOG\n#skip\nowl\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"cat", "dog", "owl"}
	if !slices.Equal(words, want) {
		t.Fatalf("got %v, want %v", words, want)
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"only comments", "# nothing\n"},
		{"duplicate after case folding", "cat\nCAT\n"},
		{"digit", "c4t\n"},
		{"one distinct letter", "cat\naaa\n"},
		{"two words on a line", "ice cream\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			var we *drill.WordError
			if !errors.As(err, &we) {
				t.Fatalf("expected *drill.WordError, got %T (%v)", err, err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("moon\nstar\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	words, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(words, []string{"moon", "star"}) {
		t.Fatalf("got %v", words)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestPick(t *testing.T) {
	words := []string{"ant", "bee", "cow", "dog", "elk", "fox"}

	a := Pick(words, 4, 99)
	b := Pick(words, 4, 99)
	if !slices.Equal(a, b) {
		t.Fatalf("same seed picked %v then %v", a, b)
	}
	if len(a) != 4 {
		t.Fatalf("picked %d words", len(a))
	}
	for _, w := range a {
		if !slices.Contains(words, w) {
			t.Fatalf("picked unknown word %q", w)
		}
	}
	sorted := slices.Clone(a)
	slices.Sort(sorted)
	if len(slices.Compact(sorted)) != 4 {
		t.Fatalf("picked a word twice: %v", a)
	}

	all := Pick(words, 0, 1)
	if len(all) != len(words) {
		t.Fatalf("n=0 picked %d words", len(all))
	}
	if len(Pick(words, 50, 1)) != len(words) {
		t.Fatal("n larger than the list should pick every word")
	}
}
