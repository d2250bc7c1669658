// Package scraper fetches and parses club pages from transfermarkt.
//
// Three page kinds are read: the quick-search results page, a club profile
// page and a club's fixture list by date (spielplandatum). Fetching goes
// through a single Scraper whose FetchPolicy puts a courtesy delay and a
// browser user agent on every request. Parsing is split from fetching so the
// extractors run on any goquery document.
//
// Only fixture rows whose status link reads "Match preview" and whose kickoff
// time is confirmed are returned; played matches and placeholder times are
// dropped during extraction.
package scraper
