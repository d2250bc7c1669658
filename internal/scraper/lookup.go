package scraper

import (
	"context"
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"

	"github.com/pfrederiksen/club-fixtures/internal/club"
	"github.com/pfrederiksen/club-fixtures/internal/metrics"
)

var (
	clubIDPattern   = regexp.MustCompile(`/verein/(\d+)`)
	clubSlugPattern = regexp.MustCompile(`transfermarkt\.[^/]+/([^/]+)/(?:startseite|transfers)/verein/\d+`)
)

// ResolveID extracts the numeric club id from a URL such as
// .../verein/131 or .../verein/131/saison_id/2024.
func ResolveID(rawURL string) (int, bool) {
	m := clubIDPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return 0, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ResolveSlug extracts the club slug from a profile or transfers URL such as
// transfermarkt.com/fc-barcelona/startseite/verein/131.
func ResolveSlug(rawURL string) (string, bool) {
	m := clubSlugPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// canonicalURL returns the page's canonical link, or fallback.
func canonicalURL(doc *goquery.Document, fallback string) string {
	if href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok && href != "" {
		return href
	}
	return fallback
}

// resolveClub finds the id and slug used to address the club's fixture page.
// When the stored URL lacks either, the profile page is fetched once and the
// canonical URL is used instead.
func (s *Scraper) resolveClub(ctx context.Context, c club.Club) (int, string, error) {
	id, idOK := ResolveID(c.URL)
	if !idOK && c.SourceID != nil && *c.SourceID > 0 {
		id, idOK = *c.SourceID, true
	}
	slug, slugOK := ResolveSlug(c.URL)
	if idOK && slugOK {
		return id, slug, nil
	}

	if c.URL == "" {
		return 0, "", errors.Wrapf(ErrUnresolvableClub, "%q has no URL", c.Name)
	}

	doc, finalURL, err := s.fetchDocument(ctx, metrics.PageProfile, c.URL)
	if err != nil {
		return 0, "", err
	}
	canonical := canonicalURL(doc, finalURL)

	if !idOK {
		id, idOK = ResolveID(canonical)
	}
	if !slugOK {
		slug, slugOK = ResolveSlug(canonical)
	}
	if !idOK || !slugOK {
		return 0, "", errors.Wrapf(ErrUnresolvableClub, "%q (%s)", c.Name, canonical)
	}
	return id, slug, nil
}
