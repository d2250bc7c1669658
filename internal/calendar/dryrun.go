package calendar

import (
	"context"
	"fmt"
	"io"
	"time"
)

// DryRunStore prints writes instead of performing them. Searches go to
// lookup when set, so a dry run against a real calendar still reports updates
// and skips; with no lookup every fixture reads as new.
type DryRunStore struct {
	out    io.Writer
	lookup EventStore
	n      int
}

// NewDryRunStore creates a dry-run store writing to out.
func NewDryRunStore(out io.Writer, lookup EventStore) *DryRunStore {
	return &DryRunStore{out: out, lookup: lookup}
}

func (d *DryRunStore) Search(ctx context.Context, title string, from, to time.Time) ([]Event, error) {
	if d.lookup == nil {
		return nil, nil
	}
	return d.lookup.Search(ctx, title, from, to)
}

func (d *DryRunStore) Insert(_ context.Context, e Event) (Event, error) {
	d.n++
	d.print("create", e)
	if e.ID == "" {
		e.ID = fmt.Sprintf("dry-run-%d", d.n)
	}
	return e, nil
}

func (d *DryRunStore) Update(_ context.Context, e Event) (Event, error) {
	d.n++
	d.print("update", e)
	return e, nil
}

func (d *DryRunStore) print(verb string, e Event) {
	fmt.Fprintf(d.out, "--- Would %s event ---\n", verb)
	fmt.Fprintf(d.out, "%s\n", e.Title)
	fmt.Fprintf(d.out, "Start: %s\n", e.Start.UTC().Format(time.RFC3339))
	fmt.Fprintf(d.out, "End:   %s\n", e.End.UTC().Format(time.RFC3339))
	if e.Description != "" {
		fmt.Fprintf(d.out, "%s\n", e.Description)
	}
	fmt.Fprintln(d.out)
}
