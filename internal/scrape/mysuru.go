package scrape

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/sahayak/stations-cli/internal/fetcher"
	"github.com/sahayak/stations-cli/internal/htmldoc"
	"github.com/sahayak/stations-cli/internal/model"
)

const (
	mysuruArea = "Mysuru"

	// Headings shorter than this are navigation chrome, not station names.
	minHeadingRunes = 5
)

// Mysuru scrapes the district portal's paginated police-station listing.
// Station entries are h2/h3 headings followed by loose paragraph, container,
// and link siblings carrying the address and phone.
type Mysuru struct {
	fetcher   fetcher.Fetcher
	baseURL   string
	pages     int
	pageDelay time.Duration
}

// NewMysuru creates the Mysuru district portal scraper. pages is the number
// of listing pages to walk; pageDelay is the pause observed between them.
func NewMysuru(f fetcher.Fetcher, baseURL string, pages int, pageDelay time.Duration) *Mysuru {
	return &Mysuru{
		fetcher:   f,
		baseURL:   strings.TrimRight(baseURL, "/"),
		pages:     pages,
		pageDelay: pageDelay,
	}
}

func (m *Mysuru) Name() string { return "mysuru" }

// Scrape walks the listing pages in order. A page that fails to fetch or
// parse is logged and skipped; the remaining pages are still visited.
func (m *Mysuru) Scrape(ctx context.Context) ([]model.Candidate, error) {
	log := zap.L().With(zap.String("scraper", m.Name()))

	var out []model.Candidate
	for page := 1; page <= m.pages; page++ {
		if page > 1 {
			if err := sleepCtx(ctx, m.pageDelay); err != nil {
				return out, err
			}
		}

		pageURL := m.pageURL(page)
		log.Info("fetching listing page", zap.String("url", pageURL))

		resp, err := m.fetcher.Get(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			log.Warn("page fetch failed, skipping",
				zap.String("url", pageURL),
				zap.Error(err),
			)
			continue
		}
		if !resp.OK() {
			log.Warn("page returned non-200, skipping",
				zap.String("url", pageURL),
				zap.Int("status", resp.StatusCode),
			)
			continue
		}

		doc, err := htmldoc.Parse(resp.Body)
		if err != nil {
			log.Warn("page parse failed, skipping",
				zap.String("url", pageURL),
				zap.Error(err),
			)
			continue
		}

		found := extractMysuruPage(doc)
		for _, c := range found {
			log.Info("found station", zap.String("name", c.Name))
		}
		out = append(out, found...)
	}

	return out, nil
}

func (m *Mysuru) pageURL(page int) string {
	if page == 1 {
		return m.baseURL + "/police-stations/"
	}
	return fmt.Sprintf("%s/police-stations/page/%d/", m.baseURL, page)
}

// extractMysuruPage scans every heading on the page and emits a candidate for
// each heading with an address or phone in its trailing siblings. Missing
// fields fall back to a synthesized address and the N/A phone marker.
func extractMysuruPage(doc *html.Node) []model.Candidate {
	var out []model.Candidate
	for _, heading := range htmldoc.FindAll(doc, "h2", "h3") {
		name := htmldoc.Text(heading)
		if utf8.RuneCountInString(name) < minHeadingRunes {
			continue
		}

		address, phone := scanSiblings(heading)
		if address == "" && phone == "" {
			continue
		}
		if address == "" {
			address = fmt.Sprintf("%s, Mysuru, Karnataka", name)
		}
		if phone == "" {
			phone = model.PhoneUnavailable
		}

		out = append(out, model.Candidate{
			Name:    name,
			Address: address,
			Phone:   phone,
			Area:    mysuruArea,
		})
	}
	return out
}

// scanSiblings walks the elements immediately following a station heading,
// stopping at the first sibling that is not a paragraph, container, or link.
// Field precedence: a tel: link always sets the phone; a map link sets the
// address only while unset; free text containing "road"/"street" fills an
// unset address; digit-bearing text fills an unset phone.
func scanSiblings(heading *html.Node) (address, phone string) {
	for sib := htmldoc.NextSiblingElement(heading); sib != nil; sib = htmldoc.NextSiblingElement(sib) {
		switch sib.Data {
		case "p", "div", "a":
		default:
			return address, phone
		}

		if sib.Data == "a" {
			href := htmldoc.Attr(sib, "href")
			switch {
			case strings.HasPrefix(href, "tel:"):
				phone = strings.TrimSpace(strings.TrimPrefix(href, "tel:"))
			case isMapLink(href):
				if q := mapQuery(href); q != "" && address == "" {
					address = q
				}
			}
		}

		text := htmldoc.Text(sib)
		if text == "" {
			continue
		}
		lower := strings.ToLower(text)
		switch {
		case address == "" && (strings.Contains(lower, "road") || strings.Contains(lower, "street")):
			address = text
		case phone == "" && strings.ContainsFunc(text, unicode.IsDigit):
			phone = text
		}
	}
	return address, phone
}

func isMapLink(href string) bool {
	return strings.Contains(href, "maps.google") || strings.Contains(href, "goo.gl")
}

// mapQuery pulls the "query" parameter out of a Google Maps share link.
func mapQuery(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return u.Query().Get("query")
}
