package scraper

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/club-fixtures/internal/club"
	"github.com/pfrederiksen/club-fixtures/internal/logger"
	"github.com/pfrederiksen/club-fixtures/internal/metrics"
)

// DefaultMaxResults caps Search when maxResults is not positive.
const DefaultMaxResults = 10

// Search looks up clubs matching query. Every distinct club link on the
// quick-search page is visited in page order until maxResults clubs parse;
// profiles that fail to fetch or have no name are skipped.
func (s *Scraper) Search(ctx context.Context, query string, maxResults int) ([]club.Club, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	searchURL := s.baseURL + "/schnellsuche/ergebnis/schnellsuche?" + url.Values{"query": {query}}.Encode()
	doc, _, err := s.fetchDocument(ctx, metrics.PageSearch, searchURL)
	if err != nil {
		return nil, err
	}

	results := make([]club.Club, 0, maxResults)
	for _, link := range clubLinks(doc, s.baseURL) {
		if len(results) >= maxResults {
			break
		}

		c, ok, err := s.parseClubPage(ctx, link)
		if err != nil {
			logger.Warn("skipping club profile", logger.Fields{
				"url":   link,
				"error": err.Error(),
			})
			continue
		}
		if !ok {
			continue
		}
		results = append(results, c)
	}

	logger.Info("club search complete", logger.Fields{
		"query":   query,
		"results": len(results),
	})
	return results, nil
}

// clubLinks returns absolute, de-duplicated hrefs containing /verein/ in page order.
func clubLinks(doc *goquery.Document, base string) []string {
	seen := make(map[string]bool)
	links := make([]string, 0)

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !strings.Contains(href, "/verein/") {
			return
		}
		full := absolute(base, href)
		if seen[full] {
			return
		}
		seen[full] = true
		links = append(links, full)
	})

	return links
}

func (s *Scraper) parseClubPage(ctx context.Context, clubURL string) (club.Club, bool, error) {
	doc, _, err := s.fetchDocument(ctx, metrics.PageProfile, clubURL)
	if err != nil {
		return club.Club{}, false, err
	}
	c, ok := parseClubProfile(doc, clubURL, s.baseURL)
	return c, ok, nil
}

// parseClubProfile reads name, league and logo from a club profile page.
// ok is false when no name can be found.
func parseClubProfile(doc *goquery.Document, clubURL, base string) (club.Club, bool) {
	name := cleanText(doc.Find("h1").First().Text())
	if name == "" {
		if title := doc.Find("title").First().Text(); title != "" {
			name = strings.TrimSpace(strings.SplitN(title, "-", 2)[0])
		}
	}
	if name == "" {
		return club.Club{}, false
	}

	c := club.Club{
		Name:    name,
		URL:     clubURL,
		League:  profileLeague(doc),
		LogoURL: profileLogo(doc, name, base),
	}
	if id, ok := ResolveID(clubURL); ok {
		c.SourceID = &id
	}
	return c, true
}

func profileLeague(doc *goquery.Document) string {
	if league := cleanText(doc.Find("div.data-header__club-info span.data-header__club a").First().Text()); league != "" {
		return league
	}

	league := ""
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if strings.Contains(href, "/wettbewerb/") {
			league = cleanText(a.Text())
			return false
		}
		return true
	})
	return league
}

func imageSource(img *goquery.Selection) string {
	if src, _ := img.Attr("src"); strings.TrimSpace(src) != "" {
		return strings.TrimSpace(src)
	}
	src, _ := img.Attr("data-src")
	return strings.TrimSpace(src)
}

// profileLogo picks the first alt-tagged image whose alt mentions the club
// name, "logo" or "verein", falling back to the first alt-tagged image.
func profileLogo(doc *goquery.Document, name, base string) string {
	imgs := doc.Find("img[alt]")
	lowerName := strings.ToLower(name)

	logo := ""
	imgs.EachWithBreak(func(_ int, img *goquery.Selection) bool {
		src := imageSource(img)
		if src == "" {
			return true
		}
		alt, _ := img.Attr("alt")
		alt = strings.ToLower(strings.TrimSpace(alt))
		if strings.Contains(alt, lowerName) || strings.Contains(alt, "logo") || strings.Contains(alt, "verein") {
			logo = absolute(base, src)
			return false
		}
		return true
	})
	if logo != "" {
		return logo
	}

	if imgs.Length() > 0 {
		if src := imageSource(imgs.First()); src != "" {
			return absolute(base, src)
		}
	}
	return ""
}
