package geo

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/theoremus-urban-solutions/ridelog-filter/config"
	"github.com/theoremus-urban-solutions/ridelog-filter/ridelog"
)

// AddressUnavailable is written to the pickup field when the reverse geocode
// fails. The request itself never fails on upstream errors.
const AddressUnavailable = "address unavailable"

// PickupStamp is the enrichment of non-geospatial requests: it overwrites the
// marked rows' pickup location with the fixed base address. No external call
// is made.
type PickupStamp struct {
	Address string
}

func (p PickupStamp) Enrich(_ context.Context, recs []ridelog.Record, marked []int) {
	for _, i := range marked {
		recs[i].Pickup = p.Address
	}
}

// Enricher writes synthetic geodata into marked records: a sampled pickup
// coordinate, its reverse-geocoded address, and, when a destination address
// is present, the driving distance and derived fare.
type Enricher struct {
	Sampler   *Sampler
	Geocoder  Geocoder
	Router    Router
	Gate      Limiter
	FarePerKM float64
}

// NewEnricher builds an enricher from the geo configuration with a live
// client and a fresh time-seeded random source.
func NewEnricher(cfg config.GeoConfig) *Enricher {
	client := NewClient(cfg.GeocoderURL, cfg.RouterURL, time.Duration(cfg.TimeoutMS)*time.Millisecond)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Enricher{
		Sampler:   NewSampler(Point{Lat: cfg.BaseLat, Lon: cfg.BaseLon}, cfg.MinRadiusKM, cfg.MaxRadiusKM, rng),
		Geocoder:  client,
		Router:    client,
		Gate:      FixedDelay{Delay: time.Duration(cfg.RequestDelayMS) * time.Millisecond},
		FarePerKM: cfg.FarePerKM,
	}
}

// Enrich processes the marked records in increasing index order, strictly
// serialized behind the gate. Upstream failures degrade the row and move on.
func (e *Enricher) Enrich(ctx context.Context, recs []ridelog.Record, marked []int) {
	for _, i := range marked {
		r := &recs[i]
		p := e.Sampler.Sample()
		r.Geocoded = fmt.Sprintf("%.6f %.6f", p.Lat, p.Lon)

		e.Gate.Wait()
		addr, err := e.Geocoder.Reverse(ctx, p)
		if err != nil {
			log.Printf("reverse geocode failed for row %d: %v", r.Index, err)
			addr = AddressUnavailable
		}
		r.Pickup = addr

		if r.Destination == "" {
			continue
		}
		e.Gate.Wait()
		dest, err := e.Geocoder.Forward(ctx, r.Destination)
		if err != nil {
			log.Printf("forward geocode failed for row %d: %v", r.Index, err)
			continue
		}
		e.Gate.Wait()
		km, err := e.Router.DrivingKM(ctx, p, dest)
		if err != nil {
			log.Printf("distance lookup failed for row %d: %v", r.Index, err)
			continue
		}
		km = math.Round(km*1000) / 1000
		fare := math.Round(km*e.FarePerKM*100) / 100
		r.DistanceKM = &km
		r.Fare = &fare
	}
}
