package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Product is a single inventory entry as served by the products resource.
// Fields the backend adds beyond these four are ignored.
type Product struct {
	ID       ProductID `json:"id"`
	Name     string    `json:"name"`
	Quantity int       `json:"quantity"`
	Price    float64   `json:"price"`
}

// ProductInput is the creation payload. It never carries an id.
// A nil Quantity or Price marks a value that did not parse and is sent as null.
type ProductInput struct {
	Name     string   `json:"name"`
	Quantity *int     `json:"quantity"`
	Price    *float64 `json:"price"`
}

// ProductID is the server-assigned identifier. The client treats it as an
// opaque token: it accepts numbers or strings and hands them back unchanged.
type ProductID string

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (id *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode product id: %w", err)
		}
		*id = ProductID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode product id: %w", err)
	}
	*id = ProductID(n.String())
	return nil
}

// MarshalJSON writes numeric ids as numbers and everything else as strings.
func (id ProductID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ProductID) String() string {
	return string(id)
}

var (
	leadingInt     = regexp.MustCompile(`^[+-]?\d+`)
	leadingDecimal = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
)

// ParseQuantity parses the leading integer of a form value, so "3.7" is 3
// and "10abc" is 10. It returns nil when the value does not start with one;
// no further validation happens on the client.
func ParseQuantity(s string) *int {
	m := leadingInt.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &n
}

// ParsePrice parses the leading decimal of a form value ("0.5abc" is 0.5),
// returning nil when there is none.
func ParsePrice(s string) *float64 {
	m := leadingDecimal.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if m == "" {
		return nil
	}
	d, err := decimal.NewFromString(strings.TrimSuffix(m, "."))
	if err != nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}

// FormatPrice renders a price with exactly two fraction digits, rounding
// half away from zero on the decimal value (9.999 -> "10.00").
func FormatPrice(price float64) string {
	return decimal.NewFromFloat(price).StringFixed(2)
}
