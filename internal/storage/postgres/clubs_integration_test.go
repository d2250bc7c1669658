//go:build integration

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pfrederiksen/club-fixtures/internal/club"
)

type ClubStoreIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *tcpostgres.PostgresContainer
	connStr   string
	db        *sqlx.DB
}

func (s *ClubStoreIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := tcpostgres.Run(s.ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("club_fixtures"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)
	s.connStr = connStr

	mg, err := NewMigrator(connStr)
	s.Require().NoError(err)
	s.Require().NoError(mg.Up())
	s.Require().NoError(mg.Close())

	db, err := Open(s.ctx, connStr)
	s.Require().NoError(err)
	s.db = db
}

func (s *ClubStoreIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *ClubStoreIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM clubs")
}

func TestClubStoreIntegrationSuite(t *testing.T) {
	suite.Run(t, new(ClubStoreIntegrationSuite))
}

func (s *ClubStoreIntegrationSuite) TestMigratorVersion() {
	mg, err := NewMigrator(s.connStr)
	s.Require().NoError(err)
	defer mg.Close()

	version, dirty, ok, err := mg.Version()
	s.NoError(err)
	s.True(ok)
	s.False(dirty)
	s.Equal(uint(1), version)

	// Up again is a no-op.
	s.NoError(mg.Up())
}

func (s *ClubStoreIntegrationSuite) TestAddAndList() {
	store := NewClubStore(s.db)
	id := 131

	_, created, err := store.Add(s.ctx, club.Club{
		Name:     "FC Barcelona",
		URL:      "https://www.transfermarkt.com/fc-barcelona/startseite/verein/131",
		League:   "LaLiga",
		SourceID: &id,
	})
	s.Require().NoError(err)
	s.True(created)

	_, created, err = store.Add(s.ctx, club.Club{Name: "Real Madrid"})
	s.Require().NoError(err)
	s.True(created)

	clubs, err := store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(clubs, 2)
	s.Equal("FC Barcelona", clubs[0].Name)
	s.Equal("Real Madrid", clubs[1].Name)
	s.Require().NotNil(clubs[0].SourceID)
	s.Equal(131, *clubs[0].SourceID)
	s.Nil(clubs[1].SourceID)
}

func (s *ClubStoreIntegrationSuite) TestAddDuplicateReturnsExisting() {
	store := NewClubStore(s.db)
	url := "https://www.transfermarkt.com/fc-barcelona/startseite/verein/131"

	_, _, err := store.Add(s.ctx, club.Club{Name: "FC Barcelona", URL: url, League: "LaLiga"})
	s.Require().NoError(err)

	got, created, err := store.Add(s.ctx, club.Club{Name: "Barcelona", URL: url, League: "Other"})
	s.Require().NoError(err)
	s.False(created)
	s.Equal("FC Barcelona", got.Name)
	s.Equal("LaLiga", got.League)

	// Two clubs without URLs do not collide on the partial index.
	_, created, err = store.Add(s.ctx, club.Club{Name: "Real Madrid"})
	s.Require().NoError(err)
	s.True(created)
	_, created, err = store.Add(s.ctx, club.Club{Name: "Atletico Madrid"})
	s.Require().NoError(err)
	s.True(created)
}

func (s *ClubStoreIntegrationSuite) TestRefreshRemoveGet() {
	store := NewClubStore(s.db)

	_, _, err := store.Add(s.ctx, club.Club{Name: "FC Barcelona"})
	s.Require().NoError(err)

	updated, err := store.Refresh(s.ctx, club.Club{Name: "FC Barcelona", League: "LaLiga"})
	s.Require().NoError(err)
	s.Equal("LaLiga", updated.League)

	got, err := store.Get(s.ctx, "FC Barcelona")
	s.Require().NoError(err)
	s.Equal("LaLiga", got.League)

	s.Require().NoError(store.Remove(s.ctx, "FC Barcelona"))

	_, err = store.Get(s.ctx, "FC Barcelona")
	s.True(errors.Is(err, club.ErrNotFound))

	err = store.Remove(s.ctx, "FC Barcelona")
	s.True(errors.Is(err, club.ErrNotFound))
}
