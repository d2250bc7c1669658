package main

import (
	// IANA zones for hosts without a zoneinfo database.
	_ "time/tzdata"

	"github.com/pfrederiksen/club-fixtures/internal/cli"
)

func main() {
	cli.Execute()
}
