package calendar

import (
	"context"
	"time"

	"github.com/pfrederiksen/club-fixtures/internal/fixture"
	"github.com/pfrederiksen/club-fixtures/internal/logger"
	"github.com/pfrederiksen/club-fixtures/internal/metrics"
)

// Action is what Publish did with one fixture.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionSkipped Action = "skipped"
	ActionFailed  Action = "failed"
)

// matchWindow is how far either side of a kickoff an existing event is looked for.
const matchWindow = 24 * time.Hour

// Options tunes Publish.
type Options struct {
	Duration time.Duration
	Metrics  *metrics.Recorder
}

// Outcome reports one fixture's publication.
type Outcome struct {
	Action  Action    `json:"action"`
	EventID string    `json:"event_id,omitempty"`
	Title   string    `json:"title"`
	Kickoff time.Time `json:"kickoff"`
	Err     error     `json:"-"`
}

// Publish creates or updates one event per fixture in store. A failure on one
// fixture is recorded in its Outcome and does not stop the rest; the returned
// error is non-nil only when ctx ends before every fixture was handled.
func Publish(ctx context.Context, store EventStore, fixtures []fixture.Fixture, opts Options) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(fixtures))

	for _, f := range fixtures {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}

		out := publishOne(ctx, store, f, opts.Duration)
		opts.Metrics.RecordPublish(string(out.Action))

		fields := logger.Fields{
			"action":  string(out.Action),
			"title":   out.Title,
			"kickoff": out.Kickoff.Format(time.RFC3339),
		}
		if out.Err != nil {
			logger.Error("publishing fixture failed", fields, out.Err)
		} else {
			logger.Debug("published fixture", fields)
		}
		outcomes = append(outcomes, out)
	}

	return outcomes, nil
}

func publishOne(ctx context.Context, store EventStore, f fixture.Fixture, duration time.Duration) Outcome {
	want := FromFixture(f, duration)
	out := Outcome{Title: want.Title, Kickoff: want.Start}

	fail := func(err error) Outcome {
		out.Action = ActionFailed
		out.Err = err
		return out
	}

	from, to := want.Start.Add(-matchWindow), want.Start.Add(matchWindow)
	candidates, err := store.Search(ctx, want.Title, from, to)
	if err != nil {
		return fail(err)
	}

	existing, found := findExisting(candidates, want.Title, from, to)
	if !found {
		created, err := store.Insert(ctx, want)
		if err != nil {
			return fail(err)
		}
		out.Action = ActionCreated
		out.EventID = created.ID
		return out
	}

	out.EventID = existing.ID
	if existing.Start.Equal(want.Start) {
		out.Action = ActionSkipped
		return out
	}

	existing.Start = want.Start
	existing.End = want.End
	existing.Description = want.Description
	if want.URL != "" {
		existing.URL = want.URL
	}
	updated, err := store.Update(ctx, existing)
	if err != nil {
		return fail(err)
	}
	out.Action = ActionUpdated
	out.EventID = updated.ID
	return out
}

// findExisting returns the first candidate with exactly title starting in [from, to].
func findExisting(candidates []Event, title string, from, to time.Time) (Event, bool) {
	for _, e := range candidates {
		if e.Title != title {
			continue
		}
		if e.Start.Before(from) || e.Start.After(to) {
			continue
		}
		return e, true
	}
	return Event{}, false
}

// Summary counts outcomes per action.
func Summary(outcomes []Outcome) map[Action]int {
	counts := make(map[Action]int, 4)
	for _, o := range outcomes {
		counts[o.Action]++
	}
	return counts
}
