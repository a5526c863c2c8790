package universe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// WikiURL is the constituent source page.
const WikiURL = "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies"

// Wikipedia rejects the default Go user agent.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Constituent is one raw row of the constituent table. Labels stay
// free-text here; normalization belongs to the staging contract.
type Constituent struct {
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Sector       string `json:"sector"`
	SubIndustry  string `json:"sub_industry"`
	Headquarters string `json:"headquarters"`
	CIK          string `json:"cik"`
}

// Scraper fetches and parses the constituent table.
type Scraper struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// ScraperOption configures a Scraper.
type ScraperOption func(*Scraper)

func NewScraper(opts ...ScraperOption) *Scraper {
	s := &Scraper{
		url: WikiURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithURL overrides the source page (tests).
func WithURL(u string) ScraperOption {
	return func(s *Scraper) { s.url = u }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ScraperOption {
	return func(s *Scraper) { s.logger = logger }
}

// Fetch downloads the page and returns every constituent row.
func (s *Scraper) Fetch(ctx context.Context) ([]Constituent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch constituents: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch constituents: status %d", resp.StatusCode)
	}

	rows, err := ParseConstituents(resp.Body)
	if err != nil {
		return nil, err
	}
	s.logger.Info("constituents scraped", "count", len(rows))
	return rows, nil
}

// ParseConstituents extracts rows from the first wikitable on the page.
// Column layout: symbol, security, sector, sub-industry, headquarters,
// date added, cik, founded. Dots in symbols become dashes, which is what
// the EOD API expects.
func ParseConstituents(r io.Reader) ([]Constituent, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	table := findWikitable(doc)
	if table == nil {
		return nil, fmt.Errorf("no wikitable found on page")
	}

	var out []Constituent
	for _, row := range tableRows(table) {
		cells := rowCells(row)
		if len(cells) < 7 {
			continue // header or malformed row
		}
		out = append(out, Constituent{
			Symbol:       strings.ReplaceAll(cells[0], ".", "-"),
			Name:         cells[1],
			Sector:       cells[2],
			SubIndustry:  cells[3],
			Headquarters: cells[4],
			CIK:          cells[6],
		})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("constituent table has no data rows")
	}
	return out, nil
}

func findWikitable(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "table" {
		for _, attr := range n.Attr {
			if attr.Key == "class" && strings.Contains(attr.Val, "wikitable") {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findWikitable(c); found != nil {
			return found
		}
	}
	return nil
}

func tableRows(table *html.Node) []*html.Node {
	var rows []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			rows = append(rows, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)
	return rows
}

// rowCells returns trimmed text content of each td in a row. Rows made of
// th cells (the header) come back empty.
func rowCells(row *html.Node) []string {
	var cells []string
	for c := row.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "td" {
			cells = append(cells, strings.TrimSpace(nodeText(c)))
		}
	}
	return cells
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}
