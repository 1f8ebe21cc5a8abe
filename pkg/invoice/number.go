// pkg/invoice/number.go

package invoice

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// leadingNumber matches the numeric prefix a form field is read as.
var leadingNumber = regexp.MustCompile(`^([+-]?)(\d*)(?:\.(\d*))?(?:[eE]([+-]?\d+))?`)

// Number is a user supplied numeric input. Anything that does not parse is zero.
type Number struct {
	d decimal.Decimal
}

// NewNumber builds a Number from a float.
func NewNumber(f float64) Number {
	return Number{d: decimal.NewFromFloat(f)}
}

// ParseNumber reads the leading number of s, ignoring leading whitespace and
// anything after the number. It returns zero when s does not start with a number.
func ParseNumber(s string) Number {
	return Number{d: parseDecimal(s)}
}

func parseDecimal(s string) decimal.Decimal {
	s = strings.TrimLeft(s, " \t\n\r\f\v ")
	m := leadingNumber.FindStringSubmatch(s)
	if m == nil {
		return decimal.Zero
	}
	sign, whole, frac, exp := m[1], m[2], m[3], m[4]
	if whole == "" && frac == "" {
		return decimal.Zero
	}
	if whole == "" {
		whole = "0"
	}
	canonical := sign + whole
	if frac != "" {
		canonical += "." + frac
	}
	if exp != "" {
		canonical += "e" + exp
	}
	d, err := decimal.NewFromString(canonical)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Decimal returns the exact value.
func (n Number) Decimal() decimal.Decimal { return n.d }

// String renders the number the way it was understood, e.g. "2" or "1.5".
func (n Number) String() string { return n.d.String() }

// IsZero reports whether the value is zero.
func (n Number) IsZero() bool { return n.d.IsZero() }

// MarshalJSON writes a bare JSON number.
func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.d.String()), nil
}

// UnmarshalJSON accepts numbers and strings. Any other JSON value is zero.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0:
		n.d = decimal.Zero
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			n.d = decimal.Zero
			return nil
		}
		n.d = parseDecimal(s)
	default:
		n.d = parseDecimal(string(data))
		if !isJSONNumber(data) {
			n.d = decimal.Zero
		}
	}
	return nil
}

func isJSONNumber(data []byte) bool {
	c := data[0]
	return c == '-' || (c >= '0' && c <= '9')
}

// UnmarshalYAML reads any scalar through ParseNumber. Non scalars are zero.
func (n *Number) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		n.d = decimal.Zero
		return nil
	}
	n.d = parseDecimal(value.Value)
	return nil
}
