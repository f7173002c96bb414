package ridelog_test

import (
	"testing"
	"time"

	"github.com/theoremus-urban-solutions/ridelog-filter/ridelog"
	"github.com/theoremus-urban-solutions/ridelog-filter/temporal"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := temporal.ParseDate(s)
	if err != nil {
		t.Fatalf("bad date fixture %q: %v", s, err)
	}
	return d
}

func mustTS(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := temporal.ParseTimestamp(s)
	if err != nil {
		t.Fatalf("bad timestamp fixture %q: %v", s, err)
	}
	return ts
}

// ride builds a record with time-only start/end on the given date, the way
// most real uploads arrive.
func ride(t *testing.T, idx int, driver, date, start, end string) ridelog.Record {
	t.Helper()
	parseClock := func(s string) time.Time {
		clock, err := time.Parse("15:04:05", s)
		if err != nil {
			t.Fatalf("bad clock fixture %q: %v", s, err)
		}
		return clock
	}
	return ridelog.Record{
		Index:  idx,
		Driver: driver,
		Date:   mustDate(t, date),
		Start:  parseClock(start),
		End:    parseClock(end),
	}
}

// maxFixture is the three-ride scenario used across the filter tests: two
// rides on 2024-01-05 and one on 2024-01-06, all one hour long.
func maxFixture(t *testing.T) []ridelog.Record {
	t.Helper()
	return []ridelog.Record{
		ride(t, 0, "Max", "2024-01-05", "08:00:00", "09:00:00"),
		ride(t, 1, "Max", "2024-01-05", "13:00:00", "14:00:00"),
		ride(t, 2, "Max", "2024-01-06", "08:00:00", "09:00:00"),
	}
}
