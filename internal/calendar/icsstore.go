package calendar

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrEventNotFound is returned when updating an event the store does not hold.
var ErrEventNotFound = errors.New("calendar event not found")

// ICSStore keeps events in a single .ics file. Every write rewrites the file.
type ICSStore struct {
	path string
	name string

	mu     sync.Mutex
	events []Event
	loaded bool
}

// NewICSStore returns a store over path. The file is read on first use; a
// missing file is an empty calendar.
func NewICSStore(path, calName string) *ICSStore {
	return &ICSStore{path: path, name: calName}
}

// Path returns the calendar file path.
func (s *ICSStore) Path() string {
	return s.path
}

func (s *ICSStore) load() error {
	if s.loaded {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.loaded = true
			return nil
		}
		return fmt.Errorf("reading calendar: %w", err)
	}

	events, err := ParseICS(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", s.path, err)
	}
	s.events = events
	s.loaded = true
	return nil
}

func (s *ICSStore) save() error {
	sorted := make([]Event, len(s.events))
	copy(sorted, s.events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	if err := os.WriteFile(s.path, []byte(GenerateICS(sorted, s.name)), 0644); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

// Events returns every stored event.
func (s *ICSStore) Events() ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, err
	}
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out, nil
}

// Search matches events whose title contains title, case-insensitively.
func (s *ICSStore) Search(_ context.Context, title string, from, to time.Time) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, err
	}

	needle := strings.ToLower(title)
	var found []Event
	for _, e := range s.events {
		if e.Start.Before(from) || e.Start.After(to) {
			continue
		}
		if strings.Contains(strings.ToLower(e.Title), needle) {
			found = append(found, e)
		}
	}
	return found, nil
}

func (s *ICSStore) Insert(_ context.Context, e Event) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return Event{}, err
	}
	if e.ID == "" {
		e.ID = EventUID(e.Title, e.Start)
	}
	s.events = append(s.events, e)
	if err := s.save(); err != nil {
		s.events = s.events[:len(s.events)-1]
		return Event{}, err
	}
	return e, nil
}

func (s *ICSStore) Update(_ context.Context, e Event) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return Event{}, err
	}
	for i := range s.events {
		if s.events[i].ID != e.ID {
			continue
		}
		prev := s.events[i]
		s.events[i] = e
		if err := s.save(); err != nil {
			s.events[i] = prev
			return Event{}, err
		}
		return e, nil
	}
	return Event{}, errors.Wrapf(ErrEventNotFound, "uid %q", e.ID)
}
