package quoteConverter

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"
)

// Locale tells how numeric strings are written by a source.
type Locale int

const (
	// LocaleEnglish: "1,234.50"
	LocaleEnglish Locale = iota
	// LocaleFrench: "1 234,50"; a value without comma keeps "." as decimal point
	LocaleFrench
)

var missingMarkers = map[string]struct{}{
	"":     {},
	"-":    {},
	"--":   {},
	"n/a":  {},
	"na":   {},
	"nan":  {},
	"inf":  {},
	"-inf": {},
	"null": {},
	"none": {},
}

// ParseDecimal coerces a loosely typed value into a decimal. Missing, empty,
// unparsable and non-finite values give an invalid NullDecimal.
func ParseDecimal(v any, locale Locale) decimal.NullDecimal {
	switch val := v.(type) {
	case nil:
		return decimal.NullDecimal{}
	case decimal.Decimal:
		return decimal.NewNullDecimal(val)
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return decimal.NullDecimal{}
		}
		return decimal.NewNullDecimal(decimal.NewFromFloat(val))
	case float32:
		return ParseDecimal(float64(val), locale)
	case int:
		return decimal.NewNullDecimal(decimal.NewFromInt(int64(val)))
	case int64:
		return decimal.NewNullDecimal(decimal.NewFromInt(val))
	case json.Number:
		return parseDecimalString(string(val), LocaleEnglish)
	case string:
		return parseDecimalString(val, locale)
	case bool:
		return decimal.NullDecimal{}
	default:
		return parseDecimalString(fmt.Sprint(val), locale)
	}
}

func parseDecimalString(s string, locale Locale) decimal.NullDecimal {
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimSuffix(s, "%")
	if _, ok := missingMarkers[strings.ToLower(s)]; ok {
		return decimal.NullDecimal{}
	}

	switch locale {
	case LocaleFrench:
		if strings.Contains(s, ",") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		}
	default:
		s = strings.ReplaceAll(s, ",", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// ParseInt coerces like ParseDecimal and rounds to the nearest integer.
func ParseInt(v any, locale Locale) null.Int {
	d := ParseDecimal(v, locale)
	if !d.Valid {
		return null.Int{}
	}
	return null.IntFrom(d.Decimal.Round(0).IntPart())
}

// ParseString returns the trimmed text of v; empty and missing values are null.
func ParseString(v any) null.String {
	var s string
	switch val := v.(type) {
	case nil:
		return null.String{}
	case string:
		s = val
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return null.String{}
		}
		s = fmt.Sprint(val)
	default:
		s = fmt.Sprint(val)
	}

	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// ParseDate formats recognized timestamps as YYYY-MM-DD and keeps any other text as is.
func ParseDate(v any) null.String {
	s := ParseString(v)
	if !s.Valid {
		return s
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s.String); err == nil {
			return null.StringFrom(t.Format(time.DateOnly))
		}
	}
	return s
}
