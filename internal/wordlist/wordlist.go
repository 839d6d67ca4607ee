// Package wordlist supplies the words a drill is played over: the bundled
// list, a user file, or a themed list generated by a language model.
package wordlist

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/samber/lo"

	"github.com/abhisek/spellz/internal/drill"
)

//go:embed words.txt
var bundled string

// DefaultCount is how many words a run uses when nothing else is configured.
const DefaultCount = 6

// Default returns the bundled word list.
func Default() []string {
	words, err := Parse(strings.NewReader(bundled))
	if err != nil {
		panic(fmt.Sprintf("bundled word list: %v", err))
	}
	return words
}

// Parse reads one word per line. Blank lines and lines starting with # are
// skipped. The result is normalized and validated.
func Parse(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read words: %w", err)
	}

	words := lo.FilterMap(lines, func(line string, _ int) (string, bool) {
		w := drill.NormalizeWord(line)
		return w, w != "" && !strings.HasPrefix(w, "#")
	})
	if err := drill.ValidateWords(words); err != nil {
		return nil, err
	}
	return words, nil
}

// LoadFile parses the word file at path.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word file: %w", err)
	}
	defer f.Close()

	words, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}

// Pick returns n words of words in an order fixed by seed. A non-positive n,
// or one larger than the list, picks every word.
func Pick(words []string, n int, seed uint64) []string {
	if n <= 0 || n > len(words) {
		n = len(words)
	}
	r := rand.New(rand.NewPCG(seed, uint64(len(words))))
	return lo.Map(r.Perm(len(words))[:n], func(i int, _ int) string {
		return words[i]
	})
}
