package booking

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/voyagent/voyagent/internal/models"
)

// priceStrip removes the decoration found on backend price tags: currency
// symbols, thousands separators, whitespace.
var priceStrip = strings.NewReplacer("₹", "", "$", "", ",", "", " ", "", " ", "")

// ExtractPrice parses a raw price tag ("₹8,500", "300.0") into a numeric
// amount. Tags that do not reduce to a number are an error, not a zero.
func ExtractPrice(m models.Money) (float64, error) {
	cleaned := priceStrip.Replace(strings.TrimSpace(m.String()))
	if cleaned == "" {
		return 0, fmt.Errorf("empty price tag")
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable price tag %q", m.String())
	}
	return v, nil
}

// MinorUnits converts a major-unit amount to the provider's minor units
// (paise for INR).
func MinorUnits(amount float64) int64 {
	return int64(amount*100 + 0.5)
}
