package geo

import "time"

// Limiter gates external calls. The enricher waits on it before every
// geocoding or routing request.
type Limiter interface {
	Wait()
}

// FixedDelay sleeps a fixed interval before each call. The external service's
// rate limit is global, so calls are serialized behind one gate.
type FixedDelay struct {
	Delay time.Duration
}

func (g FixedDelay) Wait() { time.Sleep(g.Delay) }

// NoDelay is the null limiter for tests.
type NoDelay struct{}

func (NoDelay) Wait() {}
