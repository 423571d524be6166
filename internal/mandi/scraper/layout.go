package scraper

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed layout.yaml
var defaultLayout []byte

// Layout describes where the scraper finds things on the search page.
type Layout struct {
	CommoditySelect     string        `yaml:"commodity_select"`
	RegionSelect        string        `yaml:"region_select"`
	ExcludedOptionValue string        `yaml:"excluded_option_value"`
	TableMarkers        []string      `yaml:"table_markers"`
	HeaderRows          int           `yaml:"header_rows"`
	DateFormat          string        `yaml:"date_format"`
	Summary             SummaryLayout `yaml:"summary"`
	Rows                RowLayout     `yaml:"rows"`
}

// SummaryLayout locates the modal price used for aggregation.
type SummaryLayout struct {
	MinColumns       int `yaml:"min_columns"`
	ModalPriceColumn int `yaml:"modal_price_column"`
}

// RowLayout maps table cells to PriceRow fields.
type RowLayout struct {
	MinColumns int           `yaml:"min_columns"`
	Columns    ColumnIndices `yaml:"columns"`
}

// ColumnIndices holds zero-based cell positions.
type ColumnIndices struct {
	District   int `yaml:"district"`
	Market     int `yaml:"market"`
	Commodity  int `yaml:"commodity"`
	Variety    int `yaml:"variety"`
	Grade      int `yaml:"grade"`
	MinPrice   int `yaml:"min_price"`
	MaxPrice   int `yaml:"max_price"`
	ModalPrice int `yaml:"modal_price"`
	Date       int `yaml:"date"`
}

// DefaultLayout returns the embedded layout.
func DefaultLayout() Layout {
	layout, err := parseLayout(defaultLayout, Layout{})
	if err != nil {
		panic(fmt.Sprintf("embedded layout: %v", err))
	}
	return layout
}

// LoadLayout returns the embedded layout, overlaid with the YAML file at path
// when path is not empty.
func LoadLayout(path string) (Layout, error) {
	layout := DefaultLayout()
	if path == "" {
		return layout, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout file: %w", err)
	}
	return parseLayout(data, layout)
}

func parseLayout(data []byte, base Layout) (Layout, error) {
	if err := yaml.Unmarshal(data, &base); err != nil {
		return Layout{}, fmt.Errorf("parse layout: %w", err)
	}
	if err := base.validate(); err != nil {
		return Layout{}, err
	}
	return base, nil
}

func (l Layout) validate() error {
	switch {
	case l.CommoditySelect == "" || l.RegionSelect == "":
		return fmt.Errorf("layout: option list selectors are required")
	case len(l.TableMarkers) == 0:
		return fmt.Errorf("layout: at least one table marker is required")
	case l.HeaderRows < 0:
		return fmt.Errorf("layout: header_rows must not be negative")
	case l.DateFormat == "":
		return fmt.Errorf("layout: date_format is required")
	case l.Summary.ModalPriceColumn < 0 || l.Summary.ModalPriceColumn >= l.Summary.MinColumns:
		return fmt.Errorf("layout: summary modal_price_column must be below min_columns")
	case l.Rows.Columns.max() >= l.Rows.MinColumns:
		return fmt.Errorf("layout: row columns must be below min_columns")
	}
	return nil
}

func (c ColumnIndices) max() int {
	highest := 0
	for _, v := range []int{c.District, c.Market, c.Commodity, c.Variety, c.Grade, c.MinPrice, c.MaxPrice, c.ModalPrice, c.Date} {
		if v > highest {
			highest = v
		}
	}
	return highest
}
