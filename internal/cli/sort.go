package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/club-fixtures/internal/fixture"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByKickoff SortOrder = "kickoff"
	SortByClub    SortOrder = "club"
	SortByLeague  SortOrder = "league"
)

func parseSortOrder(s string) (SortOrder, error) {
	order := SortOrder(strings.ToLower(strings.TrimSpace(s)))
	switch order {
	case SortByKickoff, SortByClub, SortByLeague:
		return order, nil
	case "":
		return SortByKickoff, nil
	}
	return "", fmt.Errorf("invalid sort order: %s (must be 'kickoff', 'club' or 'league')", s)
}

// sortFixtures sorts fixtures in place. Ties keep kickoff order.
func sortFixtures(fixtures []fixture.Fixture, order SortOrder) {
	fixture.SortByKickoff(fixtures)

	switch order {
	case SortByClub:
		sort.SliceStable(fixtures, func(i, j int) bool {
			return strings.ToLower(fixtures[i].ClubName) < strings.ToLower(fixtures[j].ClubName)
		})
	case SortByLeague:
		sort.SliceStable(fixtures, func(i, j int) bool {
			return strings.ToLower(fixtures[i].League) < strings.ToLower(fixtures[j].League)
		})
	}
}
