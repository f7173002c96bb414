package ridelog

import "time"

// KnownDrivers returns the distinct folded driver names in file order.
func KnownDrivers(recs []Record) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range recs {
		key := NameKey(recs[i].Driver)
		if !seen[key] {
			seen[key] = true
			out = append(out, key)
		}
	}
	return out
}

// FilterDriver retains the rows whose folded driver name matches the target,
// preserving row order.
func FilterDriver(recs []Record, driver string) ([]Record, error) {
	target := NameKey(driver)
	var out []Record
	for i := range recs {
		if NameKey(recs[i].Driver) == target {
			out = append(out, recs[i])
		}
	}
	if len(out) == 0 {
		return nil, &NotFoundError{Driver: driver, Known: KnownDrivers(recs)}
	}
	return out, nil
}

// ValidateDirectives rejects malformed directives before any row is touched.
func ValidateDirectives(ds []Directive) error {
	for _, d := range ds {
		if !d.HasBreak() {
			continue
		}
		if !d.BreakEnd.After(d.BreakStart) {
			return &ValidationError{Message: "break end time must be after start time"}
		}
	}
	return nil
}

// ApplyDirectives drops off-day rows and break-overlapping rows. Directives
// apply independently per target date; exclusions accumulate left to right.
func ApplyDirectives(recs []Record, ds []Directive) []Record {
	for _, d := range ds {
		if d.OffDay {
			recs = dropDate(recs, d.Date)
		}
		if d.HasBreak() {
			recs = dropBreakOverlap(recs, d)
		}
	}
	return recs
}

func dropDate(recs []Record, date time.Time) []Record {
	out := recs[:0]
	for i := range recs {
		if !sameDate(recs[i].Date, date) {
			out = append(out, recs[i])
		}
	}
	return out
}

// dropBreakOverlap removes rows on the break's date whose ride interval
// overlaps the break interval (inclusive on both ends).
func dropBreakOverlap(recs []Record, d Directive) []Record {
	out := recs[:0]
	for i := range recs {
		r := &recs[i]
		overlaps := sameDate(r.Date, d.Date) &&
			!r.StartAt().After(d.BreakEnd) &&
			!r.EndAt().Before(d.BreakStart)
		if !overlaps {
			out = append(out, recs[i])
		}
	}
	return out
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
