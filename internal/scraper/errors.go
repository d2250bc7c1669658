package scraper

import "github.com/cockroachdb/errors"

var (
	// ErrPageStructure means the headline or fixture table is missing, which
	// indicates the source markup changed.
	ErrPageStructure = errors.New("unexpected page structure")
	// ErrNetwork marks transport failures and non-2xx responses.
	ErrNetwork = errors.New("source request failed")
	// ErrUnresolvableClub means no numeric id or URL slug could be found for a club.
	ErrUnresolvableClub = errors.New("club id or slug unresolvable")
)
