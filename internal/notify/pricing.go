package notify

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCategory is assumed when no pricing category is configured.
const DefaultCategory = "utility"

// ErrUnknownCategory is returned in strict mode for a category with no
// configured rate.
var ErrUnknownCategory = errors.New("unknown pricing category")

// Snapshot is a session-scoped, read-only copy of the pricing
// configuration. It is taken once at startup and passed explicitly; nothing
// reads pricing state ambiently.
type Snapshot struct {
	Currency        string
	Rates           map[string]float64
	DefaultCategory string
	// Strict makes an unknown category an error instead of a zero rate.
	Strict bool
}

// Category returns the effective default category, lowercased.
func (s Snapshot) Category() string {
	c := strings.ToLower(strings.TrimSpace(s.DefaultCategory))
	if c == "" {
		c = DefaultCategory
	}
	return c
}

// UnitPrice resolves the per-message rate for a category. An empty category
// falls back to the snapshot default, then to "utility". A category with no
// configured rate costs zero unless the snapshot is strict.
func (s Snapshot) UnitPrice(category string) (float64, error) {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" {
		c = strings.ToLower(s.DefaultCategory)
	}
	if c == "" {
		c = DefaultCategory
	}
	rate, ok := s.Rates[c]
	if !ok {
		if s.Strict {
			return 0, fmt.Errorf("%w: %s", ErrUnknownCategory, c)
		}
		return 0, nil
	}
	return rate, nil
}

// Estimate is the one cost formula, shared by the dry-run preview and the
// post-send reconciliation.
func Estimate(unitPrice float64, count int) float64 {
	if count < 0 {
		count = 0
	}
	return unitPrice * float64(count)
}

// FormatAmount renders an amount in the snapshot currency, rounded to two
// decimals. Valid ISO codes go through the locale-aware formatter; anything
// else falls back to a literal code-prefixed fixed-point form.
func (s Snapshot) FormatAmount(amount float64) string {
	rounded := math.Round(amount*100) / 100
	unit, err := currency.ParseISO(s.Currency)
	if err != nil {
		return fmt.Sprintf("%s %.2f", s.Currency, rounded)
	}
	p := message.NewPrinter(language.English)
	return p.Sprintf("%v", currency.NarrowSymbol(unit.Amount(rounded)))
}
