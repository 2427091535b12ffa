package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"enrichprj/internal/model"
)

// Header aliases, matched case-insensitively.
var columnAliases = map[string][]string{
	"url":           {"referral link", "url", "affiliate_url", "affiliate link"},
	"platform":      {"platform"},
	"commission":    {"commission"},
	"end_date":      {"end date"},
	"discount":      {"discount"},
	"brand":         {"brand"},
	"price":         {"price"},
	"internal_link": {"affilate_page_internal_link", "affiliate_page_internal_link"},
}

// CSVReader yields one SourceRecord per affiliate CSV row.
type CSVReader struct {
	r    *csv.Reader
	cols map[string]int

	// Skipped holds the physical line of every row that failed to parse.
	Skipped []int
}

func NewCSVReader(r io.Reader) (*CSVReader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	cols := map[string]int{}
	for field, aliases := range columnAliases {
		for _, a := range aliases {
			if i, ok := index[a]; ok {
				cols[field] = i
				break
			}
		}
	}
	if _, ok := cols["url"]; !ok {
		return nil, fmt.Errorf("%w: csv has no referral link column", model.ErrInvalidSourceRecord)
	}
	return &CSVReader{r: cr, cols: cols}, nil
}

// Next returns io.EOF after the last row. Rows without a URL are skipped,
// and so are rows that fail to parse; those land in Skipped.
func (c *CSVReader) Next() (model.SourceRecord, error) {
	for {
		row, err := c.r.Read()
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			c.Skipped = append(c.Skipped, perr.StartLine)
			continue
		}
		if err != nil {
			return model.SourceRecord{}, err
		}
		line, _ := c.r.FieldPos(0)
		rec := model.SourceRecord{
			Line:          line,
			URL:           c.field(row, "url"),
			Platform:      c.field(row, "platform"),
			Brand:         c.field(row, "brand"),
			PriceRaw:      c.field(row, "price"),
			CommissionRaw: c.field(row, "commission"),
			EndDateRaw:    c.field(row, "end_date"),
			DiscountRaw:   c.field(row, "discount"),
			InternalLink:  c.field(row, "internal_link"),
		}
		if rec.URL == "" {
			continue
		}
		return rec, nil
	}
}

func (c *CSVReader) field(row []string, name string) string {
	i, ok := c.cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ReadURLList reads one URL per line; blank lines and # comments are ignored.
func ReadURLList(r io.Reader) ([]model.SourceRecord, error) {
	var out []model.SourceRecord
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, model.SourceRecord{Line: line, URL: s})
	}
	return out, sc.Err()
}

// ReadFile loads every record from path: .csv files go through the
// CSVReader, anything else is treated as a URL list. skipped lists the
// lines of CSV rows that could not be parsed.
func ReadFile(path string) (recs []model.SourceRecord, skipped []int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		recs, err = ReadURLList(f)
		return recs, nil, err
	}

	cr, err := NewCSVReader(f)
	if err != nil {
		return nil, nil, err
	}
	for {
		rec, err := cr.Next()
		if errors.Is(err, io.EOF) {
			return recs, cr.Skipped, nil
		}
		if err != nil {
			return recs, cr.Skipped, fmt.Errorf("read %s: %w", path, err)
		}
		recs = append(recs, rec)
	}
}
