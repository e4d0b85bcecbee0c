// Package money implements fixed-point monetary amounts.
//
// Amounts are stored as integer cents so that totals never pass through
// floating point. The decimal string form ("9.50") is the wire format.
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cents is a monetary amount in cents (1/100 of the currency unit).
type Cents int64

// Parse converts a decimal string like "2.50", "12", or "0.05" into Cents.
// At most two fractional digits are accepted; anything else is an error.
// Float syntax such as exponents is rejected.
func Parse(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("money: empty amount")
	}

	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}

	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("money: too many decimal places in %q", s)
	}
	// Pad "5" -> "50" so "2.5" means 2.50.
	for len(frac) < 2 {
		frac += "0"
	}

	// Only bare digits past this point: ParseInt would also accept a
	// sign inside the fraction, turning "2.-5" into 1.95.
	if !allDigits(whole) || !allDigits(frac) {
		return 0, fmt.Errorf("money: invalid amount %q", s)
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || w > (math.MaxInt64-99)/100 {
		return 0, fmt.Errorf("money: amount %q out of range", s)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("money: invalid amount %q", s)
	}

	c := w*100 + f
	if neg {
		c = -c
	}
	return Cents(c), nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MustParse is Parse that panics on error. For tests and constants.
func MustParse(s string) Cents {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Mul returns the amount multiplied by a quantity.
func (c Cents) Mul(qty int32) Cents {
	return c * Cents(qty)
}

// String formats the amount as a decimal string with two fractional digits.
func (c Cents) String() string {
	n := int64(c)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return fmt.Sprintf("%s%d.%02d", sign, n/100, n%100)
}

// MarshalJSON encodes the amount as a decimal string.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(c.String())), nil
}

// UnmarshalJSON decodes a decimal string into the amount.
func (c *Cents) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("money: amount must be a JSON string: %w", err)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
