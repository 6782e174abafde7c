// Package currency converts native-currency amounts into a user's
// display currency using a rate table. A missing rate is reported
// distinctly so callers exclude the amount from totals instead of
// guessing.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Converter holds an in-memory rate table keyed by "SOURCE/TARGET".
type Converter struct {
	rates map[string]decimal.Decimal
}

func NewConverter() *Converter {
	return &Converter{rates: make(map[string]decimal.Decimal)}
}

// AddRate records the rate multiplying a source-currency amount into the
// target currency.
func (c *Converter) AddRate(source, target string, rate decimal.Decimal) {
	c.rates[pairKey(source, target)] = rate
}

// ToDisplay converts amount from the source currency into the display
// currency. The identity conversion never consults the table. Returns
// ok=false when no rate is available in either direction; the amount is
// then unconvertible and must not be folded into totals.
func (c *Converter) ToDisplay(amount decimal.Decimal, source, display string) (decimal.Decimal, bool) {
	if strings.EqualFold(source, display) {
		return amount, true
	}

	if rate, ok := c.rates[pairKey(source, display)]; ok {
		return amount.Mul(rate), true
	}

	// A stored inverse rate serves equally well.
	if rate, ok := c.rates[pairKey(display, source)]; ok && !rate.IsZero() {
		return amount.Div(rate), true
	}

	return decimal.Zero, false
}

func pairKey(source, target string) string {
	return strings.ToUpper(source) + "/" + strings.ToUpper(target)
}
