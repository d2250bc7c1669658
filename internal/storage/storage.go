package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"github.com/pfrederiksen/club-fixtures/internal/club"
)

const clubsFile = "clubs.json"

// Storage handles files in the data directory.
type Storage struct {
	dataDir string
	mu      sync.Mutex
}

// clubsDocument is the on-disk shape of clubs.json.
type clubsDocument struct {
	Clubs     []club.Club `json:"clubs"`
	UpdatedAt string      `json:"updated_at,omitempty"`
}

// New creates a new Storage instance, creating dataDir if needed.
func New(dataDir string) (*Storage, error) {
	dir, err := ExpandHome(dataDir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{dataDir: dir}, nil
}

// ExpandHome expands a leading ~/ to the user's home directory.
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

// Dir returns the resolved data directory.
func (s *Storage) Dir() string {
	return s.dataDir
}

// Path returns name joined to the data directory.
func (s *Storage) Path(name string) string {
	return filepath.Join(s.dataDir, name)
}

// ReadFile reads name from the data directory. A missing file returns nil, nil.
func (s *Storage) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// WriteFile writes data to name in the data directory with owner-only permissions.
func (s *Storage) WriteFile(name string, data []byte) error {
	if err := os.WriteFile(s.Path(name), data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// loadRegistry reads clubs.json. Callers hold s.mu.
func (s *Storage) loadRegistry() (club.Registry, error) {
	data, err := s.ReadFile(clubsFile)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return club.Registry{}, nil
	}

	var doc clubsDocument
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", clubsFile, err)
	}
	return club.Registry(doc.Clubs), nil
}

// saveRegistry writes clubs.json. Callers hold s.mu.
func (s *Storage) saveRegistry(r club.Registry) error {
	doc := clubsDocument{
		Clubs:     []club.Club(r),
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if doc.Clubs == nil {
		doc.Clubs = []club.Club{}
	}

	data, err := sonic.ConfigStd.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", clubsFile, err)
	}

	if err := os.WriteFile(s.Path(clubsFile), data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", clubsFile, err)
	}
	return nil
}

// ClubStore returns the club.Store backed by clubs.json.
func (s *Storage) ClubStore() club.Store {
	return &fileClubStore{s: s}
}

type fileClubStore struct {
	s *Storage
}

func (f *fileClubStore) List(_ context.Context) ([]club.Club, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	r, err := f.s.loadRegistry()
	if err != nil {
		return nil, err
	}
	return []club.Club(r), nil
}

func (f *fileClubStore) Add(_ context.Context, c club.Club) (club.Club, bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	r, err := f.s.loadRegistry()
	if err != nil {
		return club.Club{}, false, err
	}

	stored, created, err := r.Add(c)
	if err != nil || !created {
		return stored, false, err
	}
	if err := f.s.saveRegistry(r); err != nil {
		return club.Club{}, false, err
	}
	return stored, true, nil
}

func (f *fileClubStore) Refresh(_ context.Context, c club.Club) (club.Club, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	r, err := f.s.loadRegistry()
	if err != nil {
		return club.Club{}, err
	}

	updated, err := r.Refresh(c)
	if err != nil {
		return club.Club{}, err
	}
	if err := f.s.saveRegistry(r); err != nil {
		return club.Club{}, err
	}
	return updated, nil
}

func (f *fileClubStore) Remove(_ context.Context, key string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	r, err := f.s.loadRegistry()
	if err != nil {
		return err
	}
	if err := r.Remove(key); err != nil {
		return err
	}
	return f.s.saveRegistry(r)
}

func (f *fileClubStore) Get(_ context.Context, key string) (club.Club, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	r, err := f.s.loadRegistry()
	if err != nil {
		return club.Club{}, err
	}
	return r.Get(key)
}
