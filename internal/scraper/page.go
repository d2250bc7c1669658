package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	headlineSelector   = "div.data-header__headline-container h1"
	fixtureRowSelector = "div.responsive-table table tbody tr"

	minFixtureCells = 6
	statusCellIndex = 9
	dateCellIndex   = 1
	timeCellIndex   = 2
	venueCellIndex  = 3
	opponentIndex   = 6
)

// fixtureCells is the text pulled from one fixture row.
type fixtureCells struct {
	date        string
	time        string
	venue       string
	opponent    string
	statusTitle string
	statusHref  string
}

// cleanText collapses runs of whitespace and trims.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// findHeadline returns the club display name of a fixture page.
func findHeadline(doc *goquery.Document) (string, bool) {
	h1 := doc.Find(headlineSelector).First()
	if h1.Length() == 0 {
		return "", false
	}
	name := cleanText(h1.Text())
	return name, name != ""
}

// findFixtureRows returns the body rows of the fixture table.
func findFixtureRows(doc *goquery.Document) (*goquery.Selection, bool) {
	if doc.Find("div.responsive-table table tbody").Length() == 0 {
		return nil, false
	}
	return doc.Find(fixtureRowSelector), true
}

// competitionHeader reads a single-cell header row. The label is the image
// title, or the cell text when there is no titled image.
func competitionHeader(row *goquery.Selection) (string, bool) {
	cells := row.ChildrenFiltered("td")
	if cells.Length() != 1 {
		return "", false
	}
	cell := cells.First()
	if title, ok := cell.Find("img").First().Attr("title"); ok {
		if title = cleanText(title); title != "" {
			return title, true
		}
	}
	text := cleanText(cell.Text())
	return text, text != ""
}

// readFixtureCells reads a fixture row of at least six cells. The status cell
// is index 9, or the last cell on narrower rows.
func readFixtureCells(row *goquery.Selection) (fixtureCells, bool) {
	cells := row.ChildrenFiltered("td")
	n := cells.Length()
	if n < minFixtureCells {
		return fixtureCells{}, false
	}

	statusIdx := statusCellIndex
	if n <= statusCellIndex {
		statusIdx = n - 1
	}
	oppIdx := opponentIndex
	if oppIdx >= statusIdx {
		oppIdx = statusIdx - 1
	}

	status := cells.Eq(statusIdx).Find("a").First()
	title, _ := status.Attr("title")
	href, _ := status.Attr("href")

	opp := cells.Eq(oppIdx)
	opponent := cleanText(opp.Find("a").First().Text())
	if opponent == "" {
		opponent = cleanText(opp.Text())
	}

	return fixtureCells{
		date:        cleanText(cells.Eq(dateCellIndex).Text()),
		time:        cleanText(cells.Eq(timeCellIndex).Text()),
		venue:       cleanText(cells.Eq(venueCellIndex).Text()),
		opponent:    opponent,
		statusTitle: strings.TrimSpace(title),
		statusHref:  strings.TrimSpace(href),
	}, true
}
