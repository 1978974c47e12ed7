package feed

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/catalog-ingest-api/internal/tabular"
)

// HTMLTableSource extracts the first <table> of an HTML page into the same
// row shape a delimited feed produces. Page-shaped sources stay behind the
// Source interface instead of growing ad-hoc scrapers in the pipeline.
type HTMLTableSource struct {
	client *Client
	url    string
}

// NewHTMLTableSource creates a Source for an HTML page carrying a product table
func NewHTMLTableSource(client *Client, url string) *HTMLTableSource {
	return &HTMLTableSource{client: client, url: url}
}

// FetchTable implements Source
func (s *HTMLTableSource) FetchTable(ctx context.Context) (*tabular.Table, error) {
	html, err := s.client.Fetch(ctx, s.url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse feed page: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, tabular.ErrNoRows
	}

	var header []string
	table.Find("tr").First().Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		header = append(header, strings.TrimSpace(cell.Text()))
	})
	if len(header) == 0 {
		return nil, tabular.ErrNoRows
	}

	var rows []tabular.Row
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return // header row
		}
		row := make(tabular.Row, len(header))
		cells := tr.Find("td")
		for c, h := range header {
			if c < cells.Length() {
				row[h] = strings.TrimSpace(cells.Eq(c).Text())
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	})

	if len(rows) == 0 {
		return nil, tabular.ErrNoRows
	}
	return &tabular.Table{Header: header, Rows: rows}, nil
}
