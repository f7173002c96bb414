package ridelog

// SelectEnrichment picks the rows that receive synthetic geodata: the
// earliest ride of each day, and for every break directive the earliest ride
// strictly after the break's end. The returned indices are ascending so the
// external-call sequence is deterministic.
func SelectEnrichment(recs []Record, ds []Directive) []int {
	marked := make(map[int]bool)

	firstOfDay := make(map[[3]int]int)
	for i := range recs {
		y, m, d := recs[i].Date.Date()
		key := [3]int{y, int(m), d}
		cur, ok := firstOfDay[key]
		if !ok || recs[i].StartAt().Before(recs[cur].StartAt()) {
			firstOfDay[key] = i
		}
	}
	for _, i := range firstOfDay {
		marked[i] = true
	}

	for _, dir := range ds {
		if !dir.HasBreak() {
			continue
		}
		best := -1
		for i := range recs {
			if !sameDate(recs[i].Date, dir.Date) {
				continue
			}
			if !recs[i].StartAt().After(dir.BreakEnd) {
				continue
			}
			if best == -1 || recs[i].StartAt().Before(recs[best].StartAt()) {
				best = i
			}
		}
		if best >= 0 {
			marked[best] = true
		}
	}

	out := make([]int, 0, len(marked))
	for i := range recs {
		if marked[i] {
			out = append(out, i)
		}
	}
	return out
}

// ComputeHours recomputes hours_worked for every record from its ride
// interval. Runs after all filtering, on enriched and untouched rows alike.
func ComputeHours(recs []Record) {
	for i := range recs {
		r := &recs[i]
		r.HoursWorked = r.EndAt().Sub(r.StartAt()).Hours()
	}
}
