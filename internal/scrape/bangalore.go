package scrape

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sahayak/stations-cli/internal/fetcher"
	"github.com/sahayak/stations-cli/internal/htmldoc"
	"github.com/sahayak/stations-cli/internal/model"
)

// Names this short are table filler, not stations.
const minBangaloreNameRunes = 4

// Bangalore scrapes the tabular station directory for Bangalore city. The
// listing is a single page of tables: name, address, and an optional phone
// column.
type Bangalore struct {
	fetcher fetcher.Fetcher
	url     string
}

// NewBangalore creates the Bangalore directory scraper.
func NewBangalore(f fetcher.Fetcher, url string) *Bangalore {
	return &Bangalore{fetcher: f, url: url}
}

func (b *Bangalore) Name() string { return "bangalore" }

// Scrape fetches the single listing page and extracts every table row. Any
// fetch or parse failure aborts this source; whatever was collected so far is
// returned alongside the error.
func (b *Bangalore) Scrape(ctx context.Context) ([]model.Candidate, error) {
	log := zap.L().With(zap.String("scraper", b.Name()))
	log.Info("fetching listing", zap.String("url", b.url))

	resp, err := b.fetcher.Get(ctx, b.url)
	if err != nil {
		return nil, eris.Wrapf(err, "bangalore: fetch %s", b.url)
	}
	if !resp.OK() {
		return nil, eris.Errorf("bangalore: fetch %s: status %d", b.url, resp.StatusCode)
	}

	doc, err := htmldoc.Parse(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "bangalore: parse listing")
	}

	var out []model.Candidate
	for _, table := range htmldoc.FindAll(doc, "table") {
		rows := htmldoc.FindAll(table, "tr")
		if len(rows) < 2 {
			continue
		}
		// First row is the column header.
		for _, row := range rows[1:] {
			cells := htmldoc.FindAll(row, "td", "th")
			if len(cells) < 2 {
				continue
			}

			name := htmldoc.Text(cells[0])
			if utf8.RuneCountInString(name) < minBangaloreNameRunes {
				continue
			}
			address := htmldoc.Text(cells[1])

			phone := model.PhoneUnavailable
			if len(cells) > 2 {
				if t := htmldoc.Text(cells[2]); strings.ContainsFunc(t, unicode.IsDigit) {
					phone = t
				}
			}

			log.Info("found station", zap.String("name", name))
			out = append(out, model.Candidate{
				Name:    name,
				Address: address,
				Phone:   phone,
				Area:    ClassifyArea(name),
			})
		}
	}

	return out, nil
}
