package analyzer

import (
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mcncl/cstyper/internal/models"
)

// Layouts recognised as a date with a time of day. Every layout carries a
// time part so that plain dates fall through to dateOnlyLayouts.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	time.RFC1123,
	time.RFC1123Z,
}

var dateOnlyLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// decimalRegex matches invariant-culture decimal text: optional sign,
// digits with optional comma group separators and an optional fraction.
// Exponents are not accepted.
var decimalRegex = regexp.MustCompile(`^[+-]?(\d[\d,]*(\.\d*)?|\.\d+)$`)

// maxDecimal is the largest integral magnitude a C# decimal can hold.
var maxDecimal, _ = new(big.Int).SetString("79228162514264337593543950335", 10)

// classifyString picks the most specific primitive for a JSON string. The
// checks run in a fixed order and the first match wins.
func classifyString(s string) models.PrimitiveKind {
	switch {
	case isGUID(s):
		return models.Guid
	case matchesLayout(s, dateTimeLayouts):
		return models.DateTime
	case matchesLayout(s, dateOnlyLayouts):
		return models.DateOnly
	case isDecimal(s):
		return models.Decimal
	}
	return models.Text
}

func isGUID(s string) bool {
	_, err := uuid.Parse(strings.TrimSpace(s))
	return err == nil
}

func matchesLayout(s string, layouts []string) bool {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func isDecimal(s string) bool {
	s = strings.TrimSpace(s)
	if !decimalRegex.MatchString(s) {
		return false
	}
	digits := strings.TrimLeft(strings.ReplaceAll(s, ",", ""), "+-")
	intPart, _, _ := strings.Cut(digits, ".")
	if intPart == "" {
		return true
	}
	n, ok := new(big.Int).SetString(intPart, 10)
	return ok && n.Cmp(maxDecimal) <= 0
}

// classifyNumber maps a JSON number to Integer or Decimal.
func classifyNumber(v models.JSONValue) models.PrimitiveKind {
	if v.IsInteger() {
		return models.Integer
	}
	return models.Decimal
}
