// Package ridelog implements the row selection and enrichment pipeline at the
// core of the service: driver matching, off-day and break exclusion,
// first-ride detection, and derived-field recompute.
package ridelog

import "context"

// Enricher mutates the marked records with synthetic geodata. It must not
// fail the request: per-row upstream failures degrade that row's fields.
type Enricher interface {
	Enrich(ctx context.Context, recs []Record, marked []int)
}

// Options controls one pipeline run.
type Options struct {
	Driver     string
	Directives []Directive
}

// Run applies the full pipeline to the table in place: validate directives,
// match the driver, apply exclusions, select the marked rows and hand them to
// the enricher, recompute hours. The enricher decides what marked rows
// receive; a nil enricher leaves them untouched. The table afterwards holds
// only the surviving rows, in their original order.
func Run(ctx context.Context, t *Table, opts Options, enr Enricher) error {
	if err := ValidateDirectives(opts.Directives); err != nil {
		return err
	}
	recs, err := FilterDriver(t.Records, opts.Driver)
	if err != nil {
		return err
	}
	recs = ApplyDirectives(recs, opts.Directives)
	if len(recs) == 0 {
		return &NotFoundError{Driver: opts.Driver, AfterFilter: true}
	}
	t.Records = recs

	marked := SelectEnrichment(recs, opts.Directives)
	if enr != nil && len(marked) > 0 {
		enr.Enrich(ctx, recs, marked)
	}
	ComputeHours(recs)
	return nil
}
