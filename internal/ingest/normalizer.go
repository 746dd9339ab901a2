package ingest

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joogo-hq/joogo-backend/internal/domain"
)

// Header aliases recognized per canonical field. Matching is case- and
// separator-insensitive; Korean source files use the localized names.
var fieldAliases = map[string][]string{
	"sale_date": {"sale_date", "date", "sales_date", "날짜", "판매일", "일자"},
	"sku":       {"sku", "item", "product_code", "상품코드", "품목코드", "스큐"},
	"category":  {"category", "카테고리"},
	"region":    {"region", "country", "market", "지역"},
	"channel":   {"channel", "source", "채널"},
	"revenue":   {"revenue", "amount", "sales", "매출", "매출액"},
	"qty":       {"qty", "quantity", "units", "수량", "판매수량"},
	"stock":     {"stock", "stock_on_hand", "재고", "재고수량"},
	"name":      {"name", "product_name", "상품명"},
	"option":    {"option", "option_name", "옵션명"},
	"barcode":   {"barcode", "바코드"},
}

var headerSanitizer = strings.NewReplacer(" ", "", "_", "", ".", "", "-", "", "/", "")

// dateColumnRe matches wide-layout stock-take headers like 20250101.
var dateColumnRe = regexp.MustCompile(`^\d{8}$`)

func normalizeHeader(name string) string {
	return headerSanitizer.Replace(strings.TrimSpace(strings.ToLower(name)))
}

// aliasIndex maps every sanitized alias to its canonical field name.
var aliasIndex = func() map[string]string {
	idx := make(map[string]string)
	for canonical, aliases := range fieldAliases {
		for _, a := range aliases {
			idx[normalizeHeader(a)] = canonical
		}
	}
	return idx
}()

// NormalizeDate converts a raw date cell to YYYY-MM-DD. It accepts `.`, `/`
// and `-` separators and unpadded month/day components, and truncates any
// trailing time component. Unparseable input yields "", never a panic.
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	// Truncate "2025-01-01 13:00" / "2025-01-01T13:00" style inputs.
	if i := strings.IndexAny(s, " T"); i > 0 {
		s = s[:i]
	}

	s = strings.ReplaceAll(s, ".", "-")
	s = strings.ReplaceAll(s, "/", "-")

	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return ""
	}
	for i, p := range parts {
		if p == "" {
			return ""
		}
		if i > 0 && len(p) == 1 {
			parts[i] = "0" + p
		}
	}

	candidate := strings.Join(parts, "-")
	if _, err := time.Parse("2006-01-02", candidate); err != nil {
		return ""
	}
	return candidate
}

// normalizeDateKey converts a YYYYMMDD wide-column header to YYYY-MM-DD.
func normalizeDateKey(col string) string {
	t, err := time.Parse("20060102", col)
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// ParseNumber coerces a raw cell into a float. Thousands separators (commas
// and spaces) are stripped before parsing. It returns nil (not 0, not NaN)
// when the value cannot be parsed, so callers can tell "absent" from "zero".
func ParseNumber(value interface{}) *float64 {
	switch v := value.(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return &v
	case float32:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return &f
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		s = strings.ReplaceAll(s, ",", "")
		s = strings.ReplaceAll(s, " ", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return &f
	default:
		f := ParseNumber(fmt.Sprintf("%v", v))
		return f
	}
}

func stringValue(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", s))
	}
}

// canonicalFields re-keys a raw row by canonical field name. Unrecognized
// headers are kept under their sanitized name so the price resolver can still
// see localized price columns.
func canonicalFields(raw map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(raw))
	for k, v := range raw {
		key := normalizeHeader(k)
		if canonical, ok := aliasIndex[key]; ok {
			key = canonical
		}
		if _, exists := out[key]; !exists {
			out[key] = v
		}
	}
	return out
}

// NormalizeRow converts one heterogeneous input row into an IngestRow.
// It returns nil only when both the date and the SKU are absent; every other
// field has a default. Revenue and qty clamp to 0 when missing or negative.
func NormalizeRow(raw map[string]interface{}) *domain.IngestRow {
	fields := canonicalFields(raw)

	saleDate := NormalizeDate(stringValue(fields["sale_date"]))
	sku := stringValue(fields["sku"])
	if saleDate == "" && sku == "" {
		return nil
	}

	row := &domain.IngestRow{
		SaleDate:   saleDate,
		SKU:        sku,
		Category:   stringValue(fields["category"]),
		Region:     stringValue(fields["region"]),
		Channel:    stringValue(fields["channel"]),
		Name:       stringValue(fields["name"]),
		OptionName: stringValue(fields["option"]),
		Barcode:    stringValue(fields["barcode"]),
	}

	if v := ParseNumber(fields["revenue"]); v != nil && *v > 0 {
		row.Revenue = *v
	}
	if v := ParseNumber(fields["qty"]); v != nil && *v > 0 {
		row.Qty = *v
	}
	if v := ParseNumber(fields["stock"]); v != nil {
		row.StockOnHand = v
	}

	return row
}

// Layout describes the column shape of an input file. It is detected once per
// file from the header row: wide stock-take files carry zero or more YYYYMMDD
// columns holding per-day quantities next to the basic column set.
type Layout struct {
	BasicColumns []string
	DateColumns  map[string]string // header -> YYYY-MM-DD
}

// IsWide reports whether the file carries per-day quantity columns.
func (l Layout) IsWide() bool {
	return len(l.DateColumns) > 0
}

// DetectLayout classifies header columns into the basic set and the 8-digit
// date series.
func DetectLayout(header []string) Layout {
	layout := Layout{DateColumns: make(map[string]string)}
	for _, col := range header {
		trimmed := strings.TrimSpace(col)
		if dateColumnRe.MatchString(trimmed) {
			if key := normalizeDateKey(trimmed); key != "" {
				layout.DateColumns[trimmed] = key
				continue
			}
		}
		layout.BasicColumns = append(layout.BasicColumns, trimmed)
	}
	return layout
}

// RowFromRecord builds a raw field map from a CSV record, splitting the wide
// date columns into the DailyQty side-structure. A nil return means the row
// carried neither a date nor a SKU.
func RowFromRecord(layout Layout, header []string, record []string) *domain.IngestRow {
	raw := make(map[string]interface{}, len(header))
	var daily map[string]float64

	for i, col := range header {
		if i >= len(record) {
			break
		}
		cell := record[i]
		trimmed := strings.TrimSpace(col)
		if key, ok := layout.DateColumns[trimmed]; ok {
			if v := ParseNumber(cell); v != nil {
				if daily == nil {
					daily = make(map[string]float64)
				}
				daily[key] = *v
			}
			continue
		}
		raw[trimmed] = cell
	}

	// Wide rows have no per-row date; a SKU alone is enough to keep them.
	row := NormalizeRow(raw)
	if row == nil {
		return nil
	}
	row.DailyQty = daily
	return row
}
