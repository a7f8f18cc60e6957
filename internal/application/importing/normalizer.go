package importing

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	domain "github.com/mohammadpnp/backoffice-import/internal/domain/importing"
)

const (
	// Day 25569 of the spreadsheet calendar is 1970-01-01.
	unixEpochSerial = 25569
	maxDateSerial   = 2958465
)

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
}

type NormalizeResult struct {
	Records        []domain.CandidateRecord
	UnknownHeaders []string
	MissingHeaders []string
}

// Normalize projects raw rows onto the schema. It never fails: anything it cannot interpret is left
// absent for the validator to report.
func Normalize(schema domain.Schema, table Table) NormalizeResult {
	columns, unknown := matchHeaders(schema, table.Headers)

	result := NormalizeResult{
		Records:        make([]domain.CandidateRecord, 0, len(table.Rows)),
		UnknownHeaders: unknown,
	}
	for _, f := range schema.Fields {
		if _, ok := columns[f.Name]; !ok && f.Required {
			result.MissingHeaders = append(result.MissingHeaders, f.Name)
		}
	}

	for _, row := range table.Rows {
		record := domain.CandidateRecord{
			RowIndex: row.Index,
			Values:   make(map[string]domain.Value, len(schema.Fields)),
			Raw:      make(map[string]string, len(schema.Fields)),
		}
		for _, f := range schema.Fields {
			header, ok := columns[f.Name]
			if !ok {
				continue
			}
			raw := strings.TrimSpace(row.Cells[header])
			if raw == "" {
				continue
			}
			record.Raw[f.Name] = raw
			if v, ok := normalizeCell(f, raw); ok {
				record.Values[f.Name] = v
			}
		}
		result.Records = append(result.Records, record)
	}

	return result
}

// matchHeaders maps field name -> header as written in the file. The first matching column wins.
func matchHeaders(schema domain.Schema, headers []string) (map[string]string, []string) {
	byKey := make(map[string]string, len(schema.Fields)*2)
	for _, f := range schema.Fields {
		byKey[HeaderKey(f.Name)] = f.Name
		for _, alias := range f.Aliases {
			byKey[HeaderKey(alias)] = f.Name
		}
	}

	columns := make(map[string]string, len(schema.Fields))
	unknown := make([]string, 0)
	for _, header := range headers {
		if header == "" {
			continue
		}
		name, ok := byKey[HeaderKey(header)]
		if !ok {
			unknown = append(unknown, header)
			continue
		}
		if _, taken := columns[name]; !taken {
			columns[name] = header
		}
	}
	return columns, unknown
}

// HeaderKey folds case, accents and separators so "Função", "FUNCAO" and "funcao" compare equal.
func HeaderKey(header string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, header)
	if err != nil {
		folded = header
	}
	folded = strings.ToLower(folded)
	folded = strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', '.', '/':
			return ' '
		}
		return r
	}, folded)
	return strings.Join(strings.Fields(folded), "_")
}

func normalizeCell(f domain.Field, raw string) (domain.Value, bool) {
	switch f.Kind {
	case domain.KindDate:
		t, ok := ParseDate(raw)
		if !ok {
			return domain.Value{}, false
		}
		return domain.DateValue(t), true
	case domain.KindNumber:
		d, ok := ParseNumber(raw)
		if !ok {
			return domain.Value{}, false
		}
		return domain.NumberValue(d), true
	default:
		text := raw
		if f.Transform != nil {
			text = strings.TrimSpace(f.Transform(text))
		}
		if member, ok := f.EnumValue(text); ok {
			text = member
		}
		if text == "" {
			return domain.Value{}, false
		}
		return domain.TextValue(text), true
	}
}

// ParseDate accepts text dates and spreadsheet serial numbers. Serials at or below zero are rejected.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		return dateFromSerial(serial)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func dateFromSerial(serial float64) (time.Time, bool) {
	if math.IsNaN(serial) || serial <= 0 || serial > maxDateSerial {
		return time.Time{}, false
	}
	days := int(math.Floor(serial)) - unixEpochSerial
	return time.Unix(0, 0).UTC().AddDate(0, 0, days), true
}

// ParseNumber accepts "1234.5", "1234,5", "1.234,56" and "1,234.56".
func ParseNumber(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "R$")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Decimal{}, false
	}

	comma := strings.LastIndex(s, ",")
	dot := strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && dot >= 0 && comma > dot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case comma >= 0 && dot >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case comma >= 0:
		if strings.Count(s, ",") > 1 {
			return decimal.Decimal{}, false
		}
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
