package motivation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"streakboard/internal/habit"

	"google.golang.org/genai"
)

// MinBatch is the smallest number of complete items a generated batch must
// hold to be accepted.
const MinBatch = 7

var ErrInvalidBatch = errors.New("invalid motivation batch")

// Generator produces a fresh batch of motivations.
type Generator interface {
	Generate(ctx context.Context) ([]habit.Motivation, error)
}

const batchPrompt = `Generate 10 motivations for a student building daily discipline.
Every item must contain BOTH an authentic Bible verse and a motivational quote.

Mix discipline, perseverance, entrepreneurship and resilience themes.
Vary the Bible books and use each quote author at most twice.
Give full author names.

Respond with a JSON array only, no markdown:
[
  {
    "bibleVerse": {"text": "...", "reference": "Book 1:1"},
    "quote": {"text": "...", "author": "..."}
  }
]`

type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Generate(ctx context.Context) ([]habit.Motivation, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(batchPrompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	return ParseBatch(resp.Text())
}

// ParseBatch decodes a model response into a shuffled batch. Incomplete items
// are dropped; fewer than MinBatch survivors reject the whole batch.
func ParseBatch(text string) ([]habit.Motivation, error) {
	text = stripFences(text)

	var raw []habit.Motivation
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBatch, err)
	}
	if len(raw) < MinBatch {
		return nil, fmt.Errorf("%w: got %d items", ErrInvalidBatch, len(raw))
	}

	valid := make([]habit.Motivation, 0, len(raw))
	for _, m := range raw {
		if m.Complete() {
			m.Date = nil
			valid = append(valid, m)
		}
	}
	if len(valid) < MinBatch {
		return nil, fmt.Errorf("%w: only %d/%d items complete", ErrInvalidBatch, len(valid), len(raw))
	}

	rand.Shuffle(len(valid), func(i, j int) { valid[i], valid[j] = valid[j], valid[i] })
	return valid, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// Static serves shuffled copies of the built-in catalog. It stands in for a
// model when no API key is configured.
type Static struct{}

func (Static) Generate(context.Context) ([]habit.Motivation, error) {
	n := min(len(Verses), len(Quotes), 10)
	vs := rand.Perm(len(Verses))
	qs := rand.Perm(len(Quotes))

	out := make([]habit.Motivation, n)
	for i := range out {
		out[i] = habit.Motivation{BibleVerse: Verses[vs[i]], Quote: Quotes[qs[i]]}
	}
	return out, nil
}
