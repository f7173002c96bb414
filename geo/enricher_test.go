package geo_test

import (
	"context"
	"errors"
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/theoremus-urban-solutions/ridelog-filter/geo"
	"github.com/theoremus-urban-solutions/ridelog-filter/ridelog"
	"github.com/theoremus-urban-solutions/ridelog-filter/temporal"
)

type fakeServices struct {
	reverseErr error
	forwardErr error
	routeErr   error
	routeKM    float64
	calls      []string
}

func (f *fakeServices) Reverse(_ context.Context, _ geo.Point) (string, error) {
	f.calls = append(f.calls, "reverse")
	if f.reverseErr != nil {
		return "", f.reverseErr
	}
	return "Gladbacher Strasse 189, 41747 Viersen, Germany", nil
}

func (f *fakeServices) Forward(_ context.Context, _ string) (geo.Point, error) {
	f.calls = append(f.calls, "forward")
	if f.forwardErr != nil {
		return geo.Point{}, f.forwardErr
	}
	return geo.Point{Lat: 51.22, Lon: 6.78}, nil
}

func (f *fakeServices) DrivingKM(_ context.Context, _, _ geo.Point) (float64, error) {
	f.calls = append(f.calls, "route")
	if f.routeErr != nil {
		return 0, f.routeErr
	}
	return f.routeKM, nil
}

type countingGate struct {
	waits int
}

func (g *countingGate) Wait() { g.waits++ }

func newTestEnricher(svc *fakeServices, gate geo.Limiter) *geo.Enricher {
	return &geo.Enricher{
		Sampler:   geo.NewSampler(viersen, 2, 10, rand.New(rand.NewSource(7))),
		Geocoder:  svc,
		Router:    svc,
		Gate:      gate,
		FarePerKM: 1.5,
	}
}

func testRecords(t *testing.T, destination string) []ridelog.Record {
	t.Helper()
	date, err := temporal.ParseDate("2024-01-05")
	if err != nil {
		t.Fatalf("bad fixture date: %v", err)
	}
	clock := func(s string) time.Time {
		c, err := time.Parse("15:04:05", s)
		if err != nil {
			t.Fatalf("bad fixture clock: %v", err)
		}
		return c
	}
	return []ridelog.Record{
		{Index: 0, Driver: "Max", Date: date, Start: clock("08:00:00"), End: clock("09:00:00"), Destination: destination},
		{Index: 1, Driver: "Max", Date: date, Start: clock("13:00:00"), End: clock("14:00:00")},
	}
}

var coordPattern = regexp.MustCompile(`^-?\d+\.\d{6} -?\d+\.\d{6}$`)

func TestPickupStamp_OverwritesMarkedRowsOnly(t *testing.T) {
	recs := testRecords(t, "")
	recs[0].Pickup = "Hauptstrasse 1"
	recs[1].Pickup = "Marktplatz"

	stamp := geo.PickupStamp{Address: "Gladbacher Strasse 189, 41747 Viersen, Germany"}
	stamp.Enrich(context.Background(), recs, []int{0})

	if recs[0].Pickup != "Gladbacher Strasse 189, 41747 Viersen, Germany" {
		t.Errorf("marked row's pickup not overwritten: %q", recs[0].Pickup)
	}
	if recs[1].Pickup != "Marktplatz" {
		t.Errorf("unmarked row's pickup changed: %q", recs[1].Pickup)
	}
	if recs[0].Geocoded != "" || recs[0].DistanceKM != nil || recs[0].Fare != nil {
		t.Error("stamp must not produce geospatial fields")
	}
}

func TestEnrich_PopulatesMarkedRows(t *testing.T) {
	svc := &fakeServices{routeKM: 12.3456}
	gate := &countingGate{}
	e := newTestEnricher(svc, gate)

	recs := testRecords(t, "Domplatz 1, Köln")
	e.Enrich(context.Background(), recs, []int{0})

	r := recs[0]
	if !coordPattern.MatchString(r.Geocoded) {
		t.Errorf("geocoded location %q not in '%%.6f %%.6f' form", r.Geocoded)
	}
	if r.Pickup != "Gladbacher Strasse 189, 41747 Viersen, Germany" {
		t.Errorf("pickup not set from reverse geocode: %q", r.Pickup)
	}
	if r.DistanceKM == nil || *r.DistanceKM != 12.346 {
		t.Errorf("expected distance rounded to 12.346, got %v", r.DistanceKM)
	}
	if r.Fare == nil || *r.Fare != 18.52 {
		t.Errorf("expected fare round(12.346*1.5, 2) = 18.52, got %v", r.Fare)
	}
	// reverse + forward + route, each behind the gate
	if gate.waits != 3 {
		t.Errorf("expected 3 gate waits, got %d", gate.waits)
	}
	if recs[1].Geocoded != "" || recs[1].Pickup != "" {
		t.Error("unmarked row was mutated")
	}
}

func TestEnrich_NoDestinationSkipsDistance(t *testing.T) {
	svc := &fakeServices{}
	gate := &countingGate{}
	e := newTestEnricher(svc, gate)

	recs := testRecords(t, "")
	e.Enrich(context.Background(), recs, []int{0})

	if recs[0].DistanceKM != nil || recs[0].Fare != nil {
		t.Error("distance and fare must stay null without a destination")
	}
	if gate.waits != 1 {
		t.Errorf("expected only the reverse-geocode wait, got %d", gate.waits)
	}
}

func TestEnrich_ReverseFailureDegradesToSentinel(t *testing.T) {
	svc := &fakeServices{reverseErr: errors.New("quota exceeded"), routeKM: 5}
	e := newTestEnricher(svc, geo.NoDelay{})

	recs := testRecords(t, "Domplatz 1, Köln")
	e.Enrich(context.Background(), recs, []int{0})

	if recs[0].Pickup != geo.AddressUnavailable {
		t.Errorf("expected sentinel pickup, got %q", recs[0].Pickup)
	}
	if recs[0].Geocoded == "" {
		t.Error("sampled coordinate must be kept even when the geocode fails")
	}
	// distance stage is independent of the reverse geocode
	if recs[0].DistanceKM == nil {
		t.Error("distance stage should still run after a reverse failure")
	}
}

func TestEnrich_ForwardFailureLeavesNulls(t *testing.T) {
	svc := &fakeServices{forwardErr: errors.New("no match")}
	e := newTestEnricher(svc, geo.NoDelay{})

	recs := testRecords(t, "Nirgendwo 99")
	e.Enrich(context.Background(), recs, []int{0})

	r := recs[0]
	if r.DistanceKM != nil || r.Fare != nil {
		t.Error("distance and fare must both be null after a forward-geocode failure")
	}
	if r.Pickup == "" || r.Geocoded == "" {
		t.Error("pickup and geocoded location must still be populated")
	}
}

func TestEnrich_RouteFailureLeavesNulls(t *testing.T) {
	svc := &fakeServices{routeErr: errors.New("no route")}
	e := newTestEnricher(svc, geo.NoDelay{})

	recs := testRecords(t, "Domplatz 1, Köln")
	e.Enrich(context.Background(), recs, []int{0})

	if recs[0].DistanceKM != nil || recs[0].Fare != nil {
		t.Error("distance and fare must both be null after a routing failure")
	}
}
