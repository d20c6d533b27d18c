package motivation

import (
	"math/rand/v2"
	"time"

	"streakboard/internal/habit"
)

// LowWater is the number of unserved queue entries at or below which a
// refill is requested.
const LowWater = 2

// Daily picks the static verse and quote for now's calendar date. Every call
// on the same date returns the same pair.
func Daily(now time.Time) habit.Motivation {
	y, m, d := now.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
	r := rand.New(rand.NewPCG(uint64(day), uint64(day)))

	return habit.Motivation{
		BibleVerse: Verses[r.IntN(len(Verses))],
		Quote:      Quotes[r.IntN(len(Quotes))],
		Date:       habit.Ptr(now),
	}
}

// Remaining is the number of queued motivations not served yet.
func Remaining(d *habit.Document) int {
	return len(d.QuoteQueue) - position(d)
}

func position(d *habit.Document) int {
	return min(max(d.QueuePosition, 0), len(d.QuoteQueue))
}

// NeedsRefill reports whether the queue is running low.
func NeedsRefill(d *habit.Document) bool {
	return Remaining(d) <= LowWater
}

// Next serves the next queued motivation, or the static daily pick when the
// queue is exhausted. The queue position advances only when the queue was
// used.
func Next(d *habit.Document, now time.Time) (habit.Motivation, bool) {
	if Remaining(d) == 0 {
		return Daily(now), false
	}
	pos := position(d)
	m := d.QuoteQueue[pos]
	d.QueuePosition = pos + 1
	m.Date = habit.Ptr(now)
	return m, true
}

// Refresh sets the document's daily motivation from Next.
func Refresh(d *habit.Document, now time.Time) habit.Motivation {
	m, _ := Next(d, now)
	d.DailyMotivation = &m
	return m
}

// IsCurrent reports whether the document already carries a motivation
// served on now's date.
func IsCurrent(d *habit.Document, now time.Time) bool {
	m := d.DailyMotivation
	if m == nil || m.Date == nil || m.Date.IsZero() {
		return false
	}
	return habit.SameDay(m.Date.Time, now, now.Location())
}

// Refill drops served entries and appends batch to what is left.
func Refill(d *habit.Document, batch []habit.Motivation) {
	left := append([]habit.Motivation{}, d.QuoteQueue[position(d):]...)
	d.QuoteQueue = append(left, batch...)
	d.QueuePosition = 0
}
