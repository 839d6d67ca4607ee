package wordlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/abhisek/spellz/internal/drill"
	"github.com/abhisek/spellz/internal/llm"
)

const purposeWordList = "word-list"

// MaxGenerated caps the size of a generated list.
const MaxGenerated = 20

// WordListSchema is the response schema for themed word generation.
var WordListSchema = &llm.Schema{
	Name:        "spelling-words",
	Description: "A themed list of spelling words for children",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"words": map[string]any{
				"type":        "array",
				"minItems":    1,
				"maxItems":    MaxGenerated,
				"description": "Distinct single words, letters only, no spaces",
				"items": map[string]any{
					"type":    "string",
					"pattern": "^[A-Za-z]+$",
				},
			},
		},
		"required":             []any{"words"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You write spelling practice lists for children aged 6 to 10.
Return common, correctly spelled English words that fit the requested theme.
Each word is a single word of 3 to 9 letters with no spaces, hyphens or capitals.
Never repeat a word.`

// Generated is a word list produced by a model.
type Generated struct {
	Words []string
	Model string
	Usage llm.Usage
}

// Generator asks a language model for themed word lists.
type Generator struct {
	provider  llm.Provider
	logger    *zap.Logger
	maxTokens int
}

// NewGenerator creates a Generator. A nil logger discards.
func NewGenerator(provider llm.Provider, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{provider: provider, logger: logger, maxTokens: 512}
}

type wordsOutput struct {
	Words []string `json:"words"`
}

// Generate asks for n words about theme. Words the drill cannot use are
// dropped; the call fails only when none survive.
func (g *Generator) Generate(ctx context.Context, theme string, n int) (*Generated, error) {
	if n <= 0 || n > MaxGenerated {
		n = MaxGenerated
	}
	ctx = llm.WithPurpose(ctx, purposeWordList)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserPrompt(fmt.Sprintf("Theme: %s\nNumber of words: %d", theme, n)),
		Schema:      WordListSchema,
		MaxTokens:   g.maxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("generate word list: %w", err)
	}

	var out wordsOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse word list: %w", err)
	}

	words := lo.Uniq(drill.NormalizeWords(out.Words))
	words = lo.Filter(words, func(w string, _ int) bool {
		if err := drill.ValidateWords([]string{w}); err != nil {
			g.logger.Debug("dropping generated word", zap.String("word", w), zap.Error(err))
			return false
		}
		return true
	})
	if len(words) == 0 {
		return nil, errors.New("generated list has no usable words")
	}
	if len(words) > n {
		words = words[:n]
	}

	g.logger.Info("word list generated",
		zap.String("theme", theme),
		zap.Int("words", len(words)),
		zap.String("model", resp.Model),
	)
	return &Generated{Words: words, Model: resp.Model, Usage: resp.Usage}, nil
}

// Source says where a run's words come from. File wins over Theme; with
// neither, or when generation fails, the bundled list is used.
type Source struct {
	File  string
	Theme string
	Count int
	Seed  uint64
}

// Resolve loads the words for src and picks Count of them. gen may be nil
// when no model is configured.
func Resolve(ctx context.Context, src Source, gen *Generator, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	count := src.Count
	if count <= 0 {
		count = DefaultCount
	}

	switch {
	case src.File != "":
		words, err := LoadFile(src.File)
		if err != nil {
			return nil, err
		}
		return Pick(words, count, src.Seed), nil

	case src.Theme != "" && gen != nil:
		g, err := gen.Generate(ctx, src.Theme, count)
		if err == nil {
			return g.Words, nil
		}
		logger.Warn("word generation failed, using bundled list",
			zap.String("theme", src.Theme), zap.Error(err))

	case src.Theme != "":
		logger.Info("no language model configured, ignoring theme", zap.String("theme", src.Theme))
	}
	return Pick(Default(), count, src.Seed), nil
}
