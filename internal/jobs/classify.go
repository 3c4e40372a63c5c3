package jobs

import (
	"sort"
	"time"
)

// Classification holds the two dashboard views derived from one snapshot.
type Classification struct {
	// Active holds rendering and queued jobs from every user, newest first.
	Active []Record
	// MineToday holds the operator's jobs submitted on today's calendar date,
	// newest first, regardless of category.
	MineToday []Record
}

// Classify partitions a snapshot into the farm-wide active view and the
// operator's jobs for today. today is the poll time; only its calendar date
// in its own location matters. The snapshot is not modified.
func Classify(snapshot Snapshot, operator string, today time.Time) Classification {
	var out Classification
	for _, rec := range snapshot {
		if Categorize(rec.Status).IsActive() {
			out.Active = append(out.Active, rec)
		}
		if SameUser(rec.User, operator) && SameDay(rec.Submitted, today) {
			out.MineToday = append(out.MineToday, rec)
		}
	}
	sortNewestFirst(out.Active)
	sortNewestFirst(out.MineToday)
	return out
}

// SameDay reports whether t falls on ref's calendar date, evaluated in ref's
// location.
func SameDay(t, ref time.Time) bool {
	ty, tm, td := t.In(ref.Location()).Date()
	ry, rm, rd := ref.Date()
	return ty == ry && tm == rm && td == rd
}

// Counts tallies records per category.
func Counts(records []Record) map[Category]int {
	counts := make(map[Category]int, 4)
	for _, rec := range records {
		counts[Categorize(rec.Status)]++
	}
	return counts
}

func sortNewestFirst(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Submitted.After(records[j].Submitted)
	})
}
