package calendar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleStore is an EventStore on one Google calendar.
type GoogleStore struct {
	svc        *gcal.Service
	calendarID string
}

// NewGoogleStore creates a store using an authorized client. Extra options
// (e.g. option.WithEndpoint) are passed to the API client.
func NewGoogleStore(ctx context.Context, client *http.Client, calendarID string, opts ...option.ClientOption) (*GoogleStore, error) {
	if calendarID == "" {
		calendarID = "primary"
	}
	opts = append([]option.ClientOption{option.WithHTTPClient(client)}, opts...)
	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating calendar service: %w", err)
	}
	return &GoogleStore{svc: svc, calendarID: calendarID}, nil
}

func (g *GoogleStore) Search(ctx context.Context, title string, from, to time.Time) ([]Event, error) {
	resp, err := g.svc.Events.List(g.calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		Q(title).
		SingleEvents(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}

	events := make([]Event, 0, len(resp.Items))
	for _, item := range resp.Items {
		e, ok := fromGoogle(item)
		if !ok {
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

func (g *GoogleStore) Insert(ctx context.Context, e Event) (Event, error) {
	created, err := g.svc.Events.Insert(g.calendarID, toGoogle(e)).Context(ctx).Do()
	if err != nil {
		return Event{}, fmt.Errorf("inserting event %q: %w", e.Title, err)
	}
	e.ID = created.Id
	return e, nil
}

// Update patches the start, end, description and source of an existing event.
// Anything else on the event, such as a location or reminders the user added,
// is left as it is.
func (g *GoogleStore) Update(ctx context.Context, e Event) (Event, error) {
	patch := &gcal.Event{
		Description: e.Description,
		Source:      googleSource(e.URL),
		Start:       &gcal.EventDateTime{DateTime: e.Start.UTC().Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: e.End.UTC().Format(time.RFC3339)},
	}
	updated, err := g.svc.Events.Patch(g.calendarID, e.ID, patch).Context(ctx).Do()
	if err != nil {
		return Event{}, fmt.Errorf("updating event %q: %w", e.Title, err)
	}
	e.ID = updated.Id
	return e, nil
}

func toGoogle(e Event) *gcal.Event {
	return &gcal.Event{
		Id:          e.ID,
		Summary:     e.Title,
		Description: e.Description,
		Source:      googleSource(e.URL),
		Start:       &gcal.EventDateTime{DateTime: e.Start.UTC().Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: e.End.UTC().Format(time.RFC3339)},
	}
}

func googleSource(url string) *gcal.EventSource {
	if url == "" {
		return nil
	}
	return &gcal.EventSource{Title: "Match page", Url: url}
}

// fromGoogle converts a timed event. All-day events have no DateTime and are skipped.
func fromGoogle(item *gcal.Event) (Event, bool) {
	if item == nil || item.Start == nil || item.Start.DateTime == "" {
		return Event{}, false
	}
	start, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return Event{}, false
	}

	e := Event{
		ID:          item.Id,
		Title:       item.Summary,
		Description: item.Description,
		Start:       start,
	}
	if item.End != nil && item.End.DateTime != "" {
		if end, err := time.Parse(time.RFC3339, item.End.DateTime); err == nil {
			e.End = end
		}
	}
	if item.Source != nil {
		e.URL = item.Source.Url
	}
	return e, true
}
