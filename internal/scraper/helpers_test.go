package scraper

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/PuerkitoBio/goquery"
)

const testAgent = "club-fixtures-test/1.0"

// fixtureRow renders a ten-cell fixture row the way the by-date list does.
func fixtureRow(date, clock, venue, opponent, status, href string) string {
	return fmt.Sprintf(`<tr>
		<td>1</td>
		<td>%s</td>
		<td>%s</td>
		<td>%s</td>
		<td>5</td>
		<td><img src="/crest.png" alt=""></td>
		<td><a href="/club/spielplan/verein/1">%s</a></td>
		<td>4-3-3</td>
		<td>-:-</td>
		<td><a title="%s" href="%s">view</a></td>
	</tr>`, date, clock, venue, opponent, status, href)
}

func headerRow(league string) string {
	return fmt.Sprintf(`<tr><td colspan="10"><img src="/logo.png" title="%s" alt="%s"></td></tr>`, league, league)
}

func fixturePage(display string, rows ...string) string {
	return fmt.Sprintf(`<html><body>
		<div class="data-header__headline-container"><h1>
			%s
		</h1></div>
		<div class="responsive-table"><table>
			<thead><tr><th>Matchday</th></tr></thead>
			<tbody>%s</tbody>
		</table></div>
	</body></html>`, display, strings.Join(rows, "\n"))
}

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing HTML: %v", err)
	}
	return doc
}

func mustWarsaw(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Warsaw")
	if err != nil {
		t.Fatal(err)
	}
	return loc
}

// newTestScraper returns a scraper pointed at server with no courtesy delay.
func newTestScraper(t *testing.T, server *httptest.Server) *Scraper {
	t.Helper()
	return New(Config{
		BaseURL:  server.URL,
		Policy:   NoDelayPolicy(testAgent),
		Backoff:  time.Millisecond,
		Location: mustWarsaw(t),
	})
}

// pages serves fixed HTML per path and 404 otherwise, counting hits.
type pages struct {
	mu    sync.Mutex
	t     *testing.T
	html  map[string]string
	codes map[string]int
	hits  map[string]int
}

func newPages(t *testing.T) *pages {
	return &pages{t: t, html: map[string]string{}, codes: map[string]int{}, hits: map[string]int{}}
}

func (p *pages) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if ua := r.Header.Get("User-Agent"); ua != testAgent {
		p.t.Errorf("User-Agent = %q, want %q", ua, testAgent)
	}
	if ref := r.Header.Get("Referer"); ref != Referer {
		p.t.Errorf("Referer = %q, want %q", ref, Referer)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.hits[r.URL.Path]++
	if code, ok := p.codes[r.URL.Path]; ok {
		w.WriteHeader(code)
		return
	}
	body, ok := p.html[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(body))
}

func (p *pages) hitCount(path string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hits[path]
}
