package workorder

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	domain "github.com/maintenance/backend/internal/domain/workorder"
	"github.com/shopspring/decimal"
)

// Messages reported for payload type and presence problems
const (
	MsgRequired      = "This field is required."
	MsgBlank         = "This field may not be blank."
	MsgNotString     = "Not a valid string."
	MsgNotNumber     = "A valid number is required."
	MsgDateFormat    = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD, DD/MM/YYYY."
	MsgNoData        = "No data provided."
	MsgEmptyList     = "This list may not be empty."
	MsgNumberTooLong = "String value too large."
	msgNotListFormat = "Expected a list of items but got type %q."
	msgNotDictFormat = "Invalid data. Expected a dictionary, but got %s."

	msgMaxWholeDigitsFormat   = "Ensure that there are no more than %d digits before the decimal point."
	msgMaxDecimalPlacesFormat = "Ensure that there are no more than %d decimal places."
)

// Bounds on accepted numbers. Odometer readings and material quantities
// fit comfortably; anything larger cannot be printed in a table cell.
const (
	maxNumberLength  = 1000
	MaxWholeDigits   = 12
	MaxDecimalPlaces = 3
)

// dateLayouts are tried in order; the first is canonical. The unpadded
// day-first form also accepts two-digit day and month.
var dateLayouts = []string{domain.DateLayout, domain.DisplayDateLayout, "2/1/2006"}

// payloadReader pulls typed values out of a decoded JSON object and
// records type and presence errors against their field paths.
type payloadReader struct {
	errs *domain.ValidationError
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func indexPath(prefix string, i int) string {
	return prefix + "[" + strconv.Itoa(i) + "]"
}

// str reads a string. Numbers are accepted and kept in their JSON text form.
// Surrounding whitespace is trimmed.
func (r *payloadReader) str(obj map[string]any, key, prefix string, required bool) string {
	path := joinPath(prefix, key)
	raw, ok := obj[key]
	if !ok || raw == nil {
		if required {
			r.errs.Add(path, MsgRequired)
		}
		return ""
	}

	var s string
	switch v := raw.(type) {
	case string:
		s = v
	case json.Number:
		s = v.String()
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		s = strconv.Itoa(v)
	default:
		r.errs.Add(path, MsgNotString)
		return ""
	}

	s = strings.TrimSpace(stripControl(s))
	if s == "" && required {
		r.errs.Add(path, MsgBlank)
	}
	return s
}

// stripControl drops control characters other than line feeds and tabs
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r != '\n' && r != '\t' && unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// number reads a decimal from a JSON number or a numeric string.
// An absent, null or blank optional value yields nil.
func (r *payloadReader) number(obj map[string]any, key, prefix string, required bool) *decimal.Decimal {
	path := joinPath(prefix, key)
	raw, ok := obj[key]
	if !ok || raw == nil {
		if required {
			r.errs.Add(path, MsgRequired)
		}
		return nil
	}

	var (
		d   decimal.Decimal
		err error
	)
	switch v := raw.(type) {
	case json.Number:
		if len(v) > maxNumberLength {
			r.errs.Add(path, MsgNumberTooLong)
			return nil
		}
		d, err = decimal.NewFromString(v.String())
	case float64:
		d = decimal.NewFromFloat(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			if required {
				r.errs.Add(path, MsgRequired)
			}
			return nil
		}
		if len(s) > maxNumberLength {
			r.errs.Add(path, MsgNumberTooLong)
			return nil
		}
		d, err = decimal.NewFromString(s)
	default:
		err = fmt.Errorf("unsupported type %T", raw)
	}
	if err != nil {
		r.errs.Add(path, MsgNotNumber)
		return nil
	}
	if msg := checkPrecision(d); msg != "" {
		r.errs.Add(path, msg)
		return nil
	}
	return &d
}

// checkPrecision bounds the digits before and after the decimal point.
// Trailing fractional zeros do not count. It never expands the exponent.
func checkPrecision(d decimal.Decimal) string {
	coef := strings.TrimLeft(d.Coefficient().String(), "-")
	exp := int64(d.Exponent())
	if coef == "0" {
		return ""
	}
	for exp < 0 && strings.HasSuffix(coef, "0") {
		coef = coef[:len(coef)-1]
		exp++
	}
	if whole := int64(len(coef)) + exp; whole > MaxWholeDigits {
		return fmt.Sprintf(msgMaxWholeDigitsFormat, MaxWholeDigits)
	}
	if -exp > MaxDecimalPlaces {
		return fmt.Sprintf(msgMaxDecimalPlacesFormat, MaxDecimalPlaces)
	}
	return ""
}

// date reads a calendar date in either accepted layout
func (r *payloadReader) date(obj map[string]any, key, prefix string) time.Time {
	path := joinPath(prefix, key)
	raw, ok := obj[key]
	if !ok || raw == nil {
		r.errs.Add(path, MsgRequired)
		return time.Time{}
	}

	switch v := raw.(type) {
	case time.Time:
		y, m, d := v.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			r.errs.Add(path, MsgRequired)
			return time.Time{}
		}
		if t, ok := ParseDate(s); ok {
			return t
		}
	}
	r.errs.Add(path, MsgDateFormat)
	return time.Time{}
}

// objects reads a list of JSON objects. Non-object items are reported at
// their indexed path and skipped.
func (r *payloadReader) objects(obj map[string]any, key, prefix string, required bool) []map[string]any {
	path := joinPath(prefix, key)
	raw, ok := obj[key]
	if !ok || raw == nil {
		if required {
			r.errs.Add(path, MsgRequired)
		}
		return nil
	}

	items, ok := raw.([]any)
	if !ok {
		r.errs.Add(path, fmt.Sprintf(msgNotListFormat, jsonTypeName(raw)))
		return nil
	}

	out := make([]map[string]any, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			r.errs.Add(indexPath(path, i), fmt.Sprintf(msgNotDictFormat, jsonTypeName(item)))
			continue
		}
		out[i] = m
	}
	return out
}

// ParseDate accepts YYYY-MM-DD or DD/MM/YYYY and returns the date at UTC midnight
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "str"
	case bool:
		return "bool"
	case json.Number, float64, int:
		return "number"
	case []any:
		return "list"
	case map[string]any:
		return "dict"
	default:
		return fmt.Sprintf("%T", v)
	}
}
