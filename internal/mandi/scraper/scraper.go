// Package scraper reads commodity prices from the Agmarknet search page.
package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"kisan_backend/internal/mandi/transport"
	"kisan_backend/platform/config"
	"kisan_backend/platform/logger"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

const maxPageBytes = 16 << 20

// ErrNoPriceTable is returned when a page has no table carrying every
// layout marker.
var ErrNoPriceTable = errors.New("no price table found")

// Scraper fetches and parses Agmarknet pages.
type Scraper struct {
	httpClient   *http.Client
	baseURL      string
	userAgent    string
	fetchTimeout time.Duration
	lookbackDays int
	layout       Layout
	now          func() time.Time
	log          *logger.Logger
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Scraper) { s.httpClient = c }
}

// WithClock replaces the clock used for the lookback window.
func WithClock(now func() time.Time) Option {
	return func(s *Scraper) { s.now = now }
}

// New creates a scraper for cfg using layout.
func New(cfg config.MandiConfig, layout Layout, log *logger.Logger, opts ...Option) *Scraper {
	s := &Scraper{
		httpClient:   &http.Client{},
		baseURL:      cfg.GetMandiBaseURL(),
		userAgent:    cfg.GetMandiUserAgent(),
		fetchTimeout: cfg.GetMandiFetchTimeout(),
		lookbackDays: cfg.GetMandiLookbackDays(),
		layout:       layout,
		now:          time.Now,
		log:          log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DateFormat is the date layout the site expects in query parameters.
func (s *Scraper) DateFormat() string {
	return s.layout.DateFormat
}

// ResolveIdentifiers reads the commodity and region option lists.
func (s *Scraper) ResolveIdentifiers(ctx context.Context) (Identifiers, error) {
	doc, err := s.fetch(ctx, s.baseURL)
	if err != nil {
		return Identifiers{}, err
	}

	crops, err := s.optionMap(doc, s.layout.CommoditySelect)
	if err != nil {
		return Identifiers{}, err
	}
	regions, err := s.optionMap(doc, s.layout.RegionSelect)
	if err != nil {
		return Identifiers{}, err
	}

	return Identifiers{Crops: crops, Regions: regions}, nil
}

func (s *Scraper) optionMap(doc *goquery.Document, selector string) (IDMap, error) {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return IDMap{}, fmt.Errorf("option list %q not found", selector)
	}

	var m IDMap
	sel.Find("option").Each(func(_ int, opt *goquery.Selection) {
		value, ok := opt.Attr("value")
		if !ok || value == s.layout.ExcludedOptionValue {
			return
		}
		name := strings.ToLower(strings.TrimSpace(opt.Text()))
		if name == "" {
			return
		}
		m.Set(name, value)
	})
	return m, nil
}

// FetchCropPrices walks every region in order and aggregates the modal
// prices of cropID. It never fails: regions that cannot be fetched or parsed
// are logged and skipped, and the summary fields stay nil when nothing parsed.
func (s *Scraper) FetchCropPrices(ctx context.Context, cropName, cropID, targetRegion string, regions IDMap) transport.PriceSummary {
	summary := transport.PriceSummary{Crop: cropName}
	log := s.log.WithContext(ctx)
	to := s.now()
	from := to.AddDate(0, 0, -s.lookbackDays)

	for _, region := range regions.Entries() {
		if ctx.Err() != nil {
			log.ScrapeSkipped(cropName, region.Name, ctx.Err().Error())
			break
		}

		table, err := s.priceTable(ctx, transport.PriceQuery{
			CropName:   cropName,
			CropID:     cropID,
			RegionName: region.Name,
			RegionID:   region.ID,
			DateFrom:   from.Format(s.layout.DateFormat),
			DateTo:     to.Format(s.layout.DateFormat),
		})
		if err != nil {
			log.ScrapeSkipped(cropName, region.Name, err.Error())
			continue
		}

		isTarget := strings.EqualFold(region.Name, targetRegion)
		parsed, skipped := 0, 0
		s.dataRows(table).Each(func(_ int, row *goquery.Selection) {
			cells := row.ChildrenFiltered("td")
			if cells.Length() < s.layout.Summary.MinColumns {
				return
			}
			price, err := strconv.Atoi(cellText(cells, s.layout.Summary.ModalPriceColumn))
			if err != nil {
				skipped++
				return
			}
			parsed++
			if summary.HighestPrice == nil || price > *summary.HighestPrice {
				summary.HighestPrice = intPtr(price)
			}
			if summary.LowestPrice == nil || price < *summary.LowestPrice {
				summary.LowestPrice = intPtr(price)
			}
			if isTarget {
				summary.CurrentPriceInUserState = intPtr(price)
			}
		})
		log.Debug("region scraped", "crop", cropName, "region", region.Name, "parsed", parsed, "skipped", skipped)
	}

	return summary
}

// FetchPriceTable returns every complete row of the price table for query.
func (s *Scraper) FetchPriceTable(ctx context.Context, query transport.PriceQuery) ([]transport.PriceRow, error) {
	table, err := s.priceTable(ctx, query)
	if err != nil {
		return nil, err
	}

	cols := s.layout.Rows.Columns
	rows := []transport.PriceRow{}
	s.dataRows(table).Each(func(_ int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("td")
		if cells.Length() < s.layout.Rows.MinColumns {
			return
		}
		rows = append(rows, transport.PriceRow{
			District:   cellText(cells, cols.District),
			Market:     cellText(cells, cols.Market),
			Commodity:  cellText(cells, cols.Commodity),
			Variety:    cellText(cells, cols.Variety),
			Grade:      cellText(cells, cols.Grade),
			MinPrice:   cellText(cells, cols.MinPrice),
			MaxPrice:   cellText(cells, cols.MaxPrice),
			ModalPrice: cellText(cells, cols.ModalPrice),
			Date:       cellText(cells, cols.Date),
		})
	})
	return rows, nil
}

func (s *Scraper) priceTable(ctx context.Context, query transport.PriceQuery) (*goquery.Selection, error) {
	doc, err := s.fetch(ctx, s.priceURL(query))
	if err != nil {
		return nil, err
	}

	var found *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		text := table.Text()
		for _, marker := range s.layout.TableMarkers {
			if !strings.Contains(text, marker) {
				return true
			}
		}
		found = table
		return false
	})
	if found == nil {
		return nil, ErrNoPriceTable
	}
	return found, nil
}

func (s *Scraper) dataRows(table *goquery.Selection) *goquery.Selection {
	rows := table.Find("tr")
	if s.layout.HeaderRows >= rows.Length() {
		return rows.Slice(0, 0)
	}
	return rows.Slice(s.layout.HeaderRows, goquery.ToEnd)
}

func (s *Scraper) priceURL(q transport.PriceQuery) string {
	params := url.Values{}
	params.Set("Tx_Commodity", q.CropID)
	params.Set("Tx_State", q.RegionID)
	params.Set("Tx_District", "0")
	params.Set("Tx_Market", "0")
	params.Set("DateFrom", q.DateFrom)
	params.Set("DateTo", q.DateTo)
	params.Set("Fr_Date", q.DateFrom)
	params.Set("To_Date", q.DateTo)
	params.Set("Tx_Trend", "0")
	params.Set("Tx_CommodityHead", q.CropName)
	params.Set("Tx_StateHead", q.RegionName)
	params.Set("Tx_DistrictHead", "--Select--")
	params.Set("Tx_MarketHead", "--Select--")
	return s.baseURL + "?" + params.Encode()
}

// fetch GETs pageURL under the per-fetch timeout and parses it as UTF-8 HTML.
func (s *Scraper) fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.WithContext(ctx).UpstreamCall("agmarknet", "get", time.Since(start), err)
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status %d", resp.StatusCode)
		s.log.WithContext(ctx).UpstreamCall("agmarknet", "get", time.Since(start), err)
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}
	s.log.WithContext(ctx).UpstreamCall("agmarknet", "get", time.Since(start), nil)

	return parseHTML(data, resp.Header.Get("Content-Type"))
}

func parseHTML(data []byte, contentType string) (*goquery.Document, error) {
	enc, _, _ := charset.DetermineEncoding(data, contentType)
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		decoded = data
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(decoded))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return doc, nil
}

func cellText(cells *goquery.Selection, index int) string {
	return strings.TrimSpace(cells.Eq(index).Text())
}

func intPtr(v int) *int {
	return &v
}
