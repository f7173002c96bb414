package ridelog_test

import (
	"math"
	"testing"

	"github.com/theoremus-urban-solutions/ridelog-filter/ridelog"
)

func TestSelectEnrichment_FirstOfDay(t *testing.T) {
	recs := maxFixture(t)
	marked := ridelog.SelectEnrichment(recs, nil)
	if len(marked) != 2 {
		t.Fatalf("expected one marked row per day, got %v", marked)
	}
	if marked[0] != 0 || marked[1] != 2 {
		t.Errorf("expected rows 0 and 2 (08:00 on each date) marked, got %v", marked)
	}
}

func TestSelectEnrichment_TiesBreakByRowOrder(t *testing.T) {
	recs := []ridelog.Record{
		ride(t, 0, "Max", "2024-01-05", "08:00:00", "09:00:00"),
		ride(t, 1, "Max", "2024-01-05", "08:00:00", "10:00:00"),
	}
	marked := ridelog.SelectEnrichment(recs, nil)
	if len(marked) != 1 || marked[0] != 0 {
		t.Errorf("tie must resolve to the earlier row, got %v", marked)
	}
}

func TestSelectEnrichment_FirstAfterBreak(t *testing.T) {
	recs := []ridelog.Record{
		ride(t, 0, "Max", "2024-01-05", "08:00:00", "09:00:00"),
		ride(t, 1, "Max", "2024-01-05", "13:00:00", "14:00:00"),
		ride(t, 2, "Max", "2024-01-05", "15:00:00", "16:00:00"),
	}
	ds := []ridelog.Directive{{
		Date:       mustDate(t, "2024-01-05"),
		BreakStart: mustTS(t, "2024-01-05 11:00:00"),
		BreakEnd:   mustTS(t, "2024-01-05 12:00:00"),
	}}
	marked := ridelog.SelectEnrichment(recs, ds)
	if len(marked) != 2 || marked[0] != 0 || marked[1] != 1 {
		t.Errorf("expected first-of-day and first-after-break rows, got %v", marked)
	}
}

func TestSelectEnrichment_StrictlyAfterBreakEnd(t *testing.T) {
	recs := []ridelog.Record{
		ride(t, 0, "Max", "2024-01-05", "08:00:00", "09:00:00"),
		ride(t, 1, "Max", "2024-01-05", "12:00:00", "12:30:00"),
	}
	ds := []ridelog.Directive{{
		Date:       mustDate(t, "2024-01-05"),
		BreakStart: mustTS(t, "2024-01-05 11:00:00"),
		BreakEnd:   mustTS(t, "2024-01-05 12:00:00"),
	}}
	marked := ridelog.SelectEnrichment(recs, ds)
	// The 12:00 ride starts exactly at break end, not strictly after it.
	if len(marked) != 1 || marked[0] != 0 {
		t.Errorf("ride starting at break end must not be break-marked, got %v", marked)
	}
}

func TestSelectEnrichment_EmptySetIsValid(t *testing.T) {
	if marked := ridelog.SelectEnrichment(nil, nil); len(marked) != 0 {
		t.Errorf("expected empty mark set, got %v", marked)
	}
}

func TestComputeHours(t *testing.T) {
	recs := []ridelog.Record{
		ride(t, 0, "Max", "2024-01-05", "08:00:00", "09:00:00"),
		ride(t, 1, "Max", "2024-01-05", "13:00:00", "13:45:00"),
		// end before start passes through as negative hours
		ride(t, 2, "Max", "2024-01-05", "15:00:00", "14:00:00"),
	}
	ridelog.ComputeHours(recs)
	want := []float64{1.0, 0.75, -1.0}
	for i, w := range want {
		if math.Abs(recs[i].HoursWorked-w) > 1e-9 {
			t.Errorf("row %d: expected %.2f hours, got %.4f", i, w, recs[i].HoursWorked)
		}
	}
}
