package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/pfrederiksen/club-fixtures/internal/club"
)

const uniqueViolation = "23505"

// Open connects to databaseURL with the lib/pq driver.
func Open(ctx context.Context, databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return db, nil
}

// ClubStore is a club.Store on the clubs table.
type ClubStore struct {
	db *sqlx.DB
}

var _ club.Store = (*ClubStore)(nil)

func NewClubStore(db *sqlx.DB) *ClubStore {
	return &ClubStore{db: db}
}

type clubRow struct {
	ID       int64         `db:"id"`
	Name     string        `db:"name"`
	URL      string        `db:"url"`
	League   string        `db:"league"`
	LogoURL  string        `db:"logo_url"`
	SourceID sql.NullInt64 `db:"source_id"`
}

func (r clubRow) toClub() club.Club {
	c := club.Club{Name: r.Name, URL: r.URL, League: r.League, LogoURL: r.LogoURL}
	if r.SourceID.Valid {
		id := int(r.SourceID.Int64)
		c.SourceID = &id
	}
	return c
}

func nullSourceID(c club.Club) sql.NullInt64 {
	if c.SourceID == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*c.SourceID), Valid: true}
}

const selectColumns = `SELECT id, name, url, league, logo_url, source_id FROM clubs`

func (s *ClubStore) List(ctx context.Context) ([]club.Club, error) {
	var rows []clubRow
	if err := s.db.SelectContext(ctx, &rows, selectColumns+` ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}

	clubs := make([]club.Club, 0, len(rows))
	for _, r := range rows {
		clubs = append(clubs, r.toClub())
	}
	return clubs, nil
}

// findSame returns the earliest club sharing c's name or non-empty URL.
func (s *ClubStore) findSame(ctx context.Context, c club.Club) (clubRow, bool, error) {
	var row clubRow
	err := s.db.GetContext(ctx, &row,
		selectColumns+` WHERE name = $1 OR ($2 <> '' AND url = $2) ORDER BY id LIMIT 1`,
		c.Name, c.URL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return clubRow{}, false, nil
	}
	if err != nil {
		return clubRow{}, false, fmt.Errorf("find club: %w", err)
	}
	return row, true, nil
}

func (s *ClubStore) Add(ctx context.Context, c club.Club) (club.Club, bool, error) {
	c = c.Normalize()
	if err := c.Validate(); err != nil {
		return club.Club{}, false, err
	}

	if existing, ok, err := s.findSame(ctx, c); err != nil {
		return club.Club{}, false, err
	} else if ok {
		return existing.toClub(), false, nil
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO clubs (name, url, league, logo_url, source_id) VALUES ($1, $2, $3, $4, $5)`,
		c.Name, c.URL, c.League, c.LogoURL, nullSourceID(c),
	)
	if err != nil {
		// A concurrent writer inserted the same club between the lookup and the insert.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			existing, ok, findErr := s.findSame(ctx, c)
			if findErr == nil && ok {
				return existing.toClub(), false, nil
			}
		}
		return club.Club{}, false, fmt.Errorf("insert club: %w", err)
	}
	return c, true, nil
}

func (s *ClubStore) Refresh(ctx context.Context, c club.Club) (club.Club, error) {
	c = c.Normalize()
	existing, ok, err := s.findSame(ctx, c)
	if err != nil {
		return club.Club{}, err
	}
	if !ok {
		return club.Club{}, crerr.Wrapf(club.ErrNotFound, "%q", c.Name)
	}

	updated := existing.toClub().WithRefresh(c)
	if err := updated.Validate(); err != nil {
		return club.Club{}, err
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE clubs SET url = $1, league = $2, logo_url = $3, source_id = $4, updated_at = NOW() WHERE id = $5`,
		updated.URL, updated.League, updated.LogoURL, nullSourceID(updated), existing.ID,
	)
	if err != nil {
		return club.Club{}, fmt.Errorf("update club: %w", err)
	}
	return updated, nil
}

func (s *ClubStore) Remove(ctx context.Context, key string) error {
	row, err := s.getRow(ctx, key)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM clubs WHERE id = $1`, row.ID); err != nil {
		return fmt.Errorf("delete club: %w", err)
	}
	return nil
}

func (s *ClubStore) Get(ctx context.Context, key string) (club.Club, error) {
	row, err := s.getRow(ctx, key)
	if err != nil {
		return club.Club{}, err
	}
	return row.toClub(), nil
}

func (s *ClubStore) getRow(ctx context.Context, key string) (clubRow, error) {
	var row clubRow
	err := s.db.GetContext(ctx, &row,
		selectColumns+` WHERE name = $1 OR ($1 <> '' AND url = $1) ORDER BY id LIMIT 1`,
		key,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return clubRow{}, crerr.Wrapf(club.ErrNotFound, "%q", key)
	}
	if err != nil {
		return clubRow{}, fmt.Errorf("get club: %w", err)
	}
	return row, nil
}
