package motivation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"streakboard/internal/habit"
)

func item(i int) habit.Motivation {
	return habit.Motivation{
		BibleVerse: habit.Verse{Text: fmt.Sprintf("verse %d", i), Reference: fmt.Sprintf("Psalm %d", i)},
		Quote:      habit.Quote{Text: fmt.Sprintf("quote %d", i), Author: "Someone"},
	}
}

func TestDailyIsStablePerDate(t *testing.T) {
	morning := time.Date(2026, time.June, 3, 7, 0, 0, 0, time.UTC)
	evening := time.Date(2026, time.June, 3, 22, 30, 0, 0, time.UTC)

	a, b := Daily(morning), Daily(evening)
	if a.BibleVerse != b.BibleVerse || a.Quote != b.Quote {
		t.Fatalf("expected the same pick all day, got %+v and %+v", a, b)
	}
	if !a.Complete() || a.Date == nil || !a.Date.Equal(morning) {
		t.Fatalf("expected a complete dated motivation, got %+v", a)
	}
}

func TestNextServesQueueThenFallsBack(t *testing.T) {
	now := time.Date(2026, time.June, 3, 9, 0, 0, 0, time.UTC)
	doc := habit.New()
	doc.QuoteQueue = []habit.Motivation{item(1), item(2)}

	m, queued := Next(doc, now)
	if !queued || m.Quote.Text != "quote 1" || doc.QueuePosition != 1 {
		t.Fatalf("expected first queued item, got %+v at %d", m, doc.QueuePosition)
	}
	if m.Date == nil || !m.Date.Equal(now) {
		t.Fatal("expected served item to be dated")
	}
	if doc.QuoteQueue[0].Date != nil {
		t.Fatal("serving must not stamp the queued copy")
	}

	Next(doc, now)
	m, queued = Next(doc, now)
	if queued || doc.QueuePosition != 2 {
		t.Fatalf("expected static fallback once exhausted, got queued=%v pos=%d", queued, doc.QueuePosition)
	}
	if daily := Daily(now); m.Quote != daily.Quote {
		t.Fatalf("expected the daily pick, got %+v", m.Quote)
	}
}

func TestRefreshAndIsCurrent(t *testing.T) {
	now := time.Date(2026, time.June, 3, 9, 0, 0, 0, time.UTC)
	doc := habit.New()
	if IsCurrent(doc, now) {
		t.Fatal("expected no current motivation on a new document")
	}
	Refresh(doc, now)
	if !IsCurrent(doc, now) {
		t.Fatal("expected refreshed motivation to be current")
	}
	if IsCurrent(doc, now.AddDate(0, 0, 1)) {
		t.Fatal("expected motivation to expire the next day")
	}
}

func TestRefillKeepsUnservedEntries(t *testing.T) {
	doc := habit.New()
	doc.QuoteQueue = []habit.Motivation{item(1), item(2), item(3)}
	doc.QueuePosition = 2

	if !NeedsRefill(doc) {
		t.Fatal("expected a low queue to need a refill")
	}
	Refill(doc, []habit.Motivation{item(4), item(5)})

	if doc.QueuePosition != 0 || len(doc.QuoteQueue) != 3 {
		t.Fatalf("expected 3 entries from position 0, got %d from %d", len(doc.QuoteQueue), doc.QueuePosition)
	}
	if doc.QuoteQueue[0].Quote.Text != "quote 3" {
		t.Fatalf("expected the unserved entry first, got %q", doc.QuoteQueue[0].Quote.Text)
	}
}

func TestParseBatch(t *testing.T) {
	var b strings.Builder
	b.WriteString("```json\n[")
	for i := 0; i < 9; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"bibleVerse":{"text":"v%d","reference":"r%d"},"quote":{"text":"q%d","author":"a%d"}}`, i, i, i, i)
	}
	b.WriteString(`,{"bibleVerse":{"text":"v"},"quote":{"text":"q","author":"a"}}`)
	b.WriteString("]\n```")

	batch, err := ParseBatch(b.String())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(batch) != 9 {
		t.Fatalf("expected the incomplete item to be dropped, got %d", len(batch))
	}
}

func TestParseBatchRejects(t *testing.T) {
	cases := map[string]string{
		"not json":  "here are some quotes",
		"too short": `[{"bibleVerse":{"text":"v","reference":"r"},"quote":{"text":"q","author":"a"}}]`,
	}
	for name, in := range cases {
		if _, err := ParseBatch(in); !errors.Is(err, ErrInvalidBatch) {
			t.Errorf("%s: expected ErrInvalidBatch, got %v", name, err)
		}
	}

	incomplete := "[" + strings.Repeat(`{"bibleVerse":{"text":"v"},"quote":{"text":"q"}},`, 7) + `{}]`
	if _, err := ParseBatch(incomplete); !errors.Is(err, ErrInvalidBatch) {
		t.Fatalf("expected ErrInvalidBatch for incomplete items, got %v", err)
	}
}

func TestStaticGenerator(t *testing.T) {
	batch, err := Static{}.Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(batch) < MinBatch {
		t.Fatalf("expected at least %d items, got %d", MinBatch, len(batch))
	}
	for _, m := range batch {
		if !m.Complete() {
			t.Fatalf("incomplete item %+v", m)
		}
	}
}
