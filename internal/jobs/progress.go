package jobs

// Percent returns floor(100*completed/total) clamped to [0,100]. A job with no
// work units reports 0.
func Percent(completed, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed >= total {
		return 100
	}
	return int(int64(completed) * 100 / int64(total))
}

// Percent reports the record's completion percentage.
func (r Record) Percent() int {
	return Percent(r.CompletedUnits, r.TotalUnits)
}
