// Package validation turns raw form input into typed values and collects
// every rule violation in one pass.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/diewo77/go-facturas/i18n"
	"github.com/shopspring/decimal"
)

// Violation is a broken rule on one field. Item fields are named
// items[<index>].<field>.
type Violation struct {
	Field string `json:"field"`
	Code  string `json:"code"`
}

// Violations is the ordered list of broken rules. It implements error so it
// can travel through error returns.
type Violations []Violation

func (v Violations) Empty() bool { return len(v) == 0 }

func (v *Violations) Add(field, code string) {
	*v = append(*v, Violation{Field: field, Code: code})
}

// Has reports whether field broke the rule identified by code.
func (v Violations) Has(field, code string) bool {
	for _, x := range v {
		if x.Field == field && x.Code == code {
			return true
		}
	}
	return false
}

func (v Violations) Error() string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = x.Field + ": " + x.Code
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Messages renders one human readable message per violation.
func (v Violations) Messages(lang string) []string {
	out := make([]string, 0, len(v))
	for _, x := range v {
		out = append(out, label(lang, x.Field)+" "+i18n.T(lang, x.Code))
	}
	return out
}

var itemField = regexp.MustCompile(`^items\[(\d+)\]\.(\w+)$`)

func label(lang, field string) string {
	if m := itemField.FindStringSubmatch(field); m != nil {
		n, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("%s (%s %d)", i18n.T(lang, "field."+m[2]), i18n.T(lang, "item"), n+1)
	}
	return i18n.T(lang, "field."+field)
}

// Basic validators

func Required(field, value string, v *Violations) bool {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "required")
		return false
	}
	return true
}

// MaxMagnitude bounds every decimal field. Stored amounts are REAL columns,
// so anything past float64 range would come back as an infinity.
var MaxMagnitude = decimal.New(1, 12)

// Decimal parses value; blank, non-numeric and oversized input are reported.
func Decimal(field, value string, v *Violations) (decimal.Decimal, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		v.Add(field, "required")
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		v.Add(field, "invalid_number")
		return decimal.Zero, false
	}
	if d.Abs().GreaterThan(MaxMagnitude) {
		v.Add(field, "too_large")
		return decimal.Zero, false
	}
	return d, true
}

// Integer parses value as a base 10 integer.
func Integer(field, value string, v *Violations) (int64, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		v.Add(field, "required")
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		v.Add(field, "invalid_integer")
		return 0, false
	}
	return n, true
}

func PositiveDecimal(field string, val decimal.Decimal, v *Violations) {
	if !val.IsPositive() {
		v.Add(field, "must_be_positive")
	}
}

func RangeDecimal(field string, val, minVal, maxVal decimal.Decimal, v *Violations) {
	if val.LessThan(minVal) || val.GreaterThan(maxVal) {
		v.Add(field, "out_of_range")
	}
}

func RangeInt(field string, val, minVal, maxVal int64, v *Violations) {
	if val < minVal || val > maxVal {
		v.Add(field, "out_of_range")
	}
}

func Pattern(field, value string, re *regexp.Regexp, v *Violations) {
	if !re.MatchString(value) {
		v.Add(field, "invalid_format")
	}
}
