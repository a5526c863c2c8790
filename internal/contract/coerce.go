package contract

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// pricePlaces is the fixed scale of every price column. Changing it breaks
// bit-reproducibility against previously staged rows.
const pricePlaces = 4

// numericString renders a raw JSON value as its decimal string form.
// Decoders feeding this package must use json.Decoder.UseNumber so numbers
// arrive as their original token rather than a float64.
func numericString(v any) (string, error) {
	switch n := v.(type) {
	case json.Number:
		return n.String(), nil
	case string:
		return strings.TrimSpace(n), nil
	case float64:
		// Only reached for values decoded without UseNumber.
		return strconv.FormatFloat(n, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(n), nil
	case int64:
		return strconv.FormatInt(n, 10), nil
	default:
		return "", fmt.Errorf("not a numeric value (%T)", v)
	}
}

// coercePrice converts a raw value to a decimal quantized to 4 fractional
// digits with ties rounded half-up (away from zero), matching the numeric
// precision contract of the staged data.
func coercePrice(field string, v any) (decimal.Decimal, error) {
	s, err := numericString(v)
	if err != nil {
		return decimal.Decimal{}, invalidField(field, err.Error())
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, invalidField(field, fmt.Sprintf("cannot parse %q as decimal", s))
	}
	return d.Round(pricePlaces), nil
}

// coerceVolume converts a raw value to a non-negative integer. Fractional
// inputs are truncated toward zero; negative volumes are rejected.
func coerceVolume(field string, v any) (int64, error) {
	s, err := numericString(v)
	if err != nil {
		return 0, invalidField(field, err.Error())
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0, invalidField(field, fmt.Sprintf("cannot parse %q as integer", s))
		}
		n = int64(f)
	}
	if n < 0 {
		return 0, invalidField(field, fmt.Sprintf("negative volume %d", n))
	}
	return n, nil
}

func stringField(src map[string]any, field string) (string, error) {
	v, ok := src[field]
	if !ok {
		return "", missingField(field)
	}
	s, ok := v.(string)
	if !ok {
		return "", invalidField(field, fmt.Sprintf("expected string, got %T", v))
	}
	return s, nil
}

// coerceDate parses an ISO calendar date (2006-01-02).
func coerceDate(field string, v any) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, invalidField(field, fmt.Sprintf("expected date string, got %T", v))
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, invalidField(field, fmt.Sprintf("cannot parse %q as date", s))
	}
	return t, nil
}

// coerceTimestamp parses an ISO-8601 timestamp and normalizes it to UTC.
func coerceTimestamp(field string, v any) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, invalidField(field, fmt.Sprintf("expected timestamp string, got %T", v))
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, invalidField(field, fmt.Sprintf("cannot parse %q as timestamp", s))
	}
	return t.UTC(), nil
}
